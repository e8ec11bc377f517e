package main

import (
	"fmt"
	"log"
	"os"

	"quizbook/internal/config"
	"quizbook/internal/database"
	"quizbook/internal/logger"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var migrator database.Migrator
	var closeDB func() error

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply or revert the quizbook schema",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if err := logger.Initialize(cfg.Logger); err != nil {
				return err
			}
			db, err := database.Connect(cfg.DB, cfg.GetDSN())
			if err != nil {
				return err
			}
			closeDB = db.Close
			migrator, err = database.NewMigrator(db)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if closeDB != nil {
				closeDB()
			}
			logger.Sync()
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := migrator.Up(cmd.Context()); err != nil {
				return err
			}
			log.Println("Migrations applied successfully!")
			return nil
		},
	})

	var all bool
	down := &cobra.Command{
		Use:   "down",
		Short: "Revert the latest migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := migrator.Down(cmd.Context(), all); err != nil {
				return err
			}
			if all {
				log.Println("Successfully rolled back all migrations")
			} else {
				log.Println("Successfully rolled back 1 migration(s)")
			}
			return nil
		},
	}
	down.Flags().BoolVar(&all, "all", false, "revert every migration")
	root.AddCommand(down)

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, dirty, err := migrator.Version(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("version=%d dirty=%t\n", v, dirty)
			return nil
		},
	})

	return root
}
