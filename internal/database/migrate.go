package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"quizbook/database"
	"quizbook/internal/config"
	"quizbook/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/sijms/go-ora/v2/network"
	"go.uber.org/zap"
)

// Migrator applies the embedded schema migrations.
type Migrator interface {
	// Up applies all pending migrations.
	Up(ctx context.Context) error
	// Down reverts the latest migration, or all of them.
	Down(ctx context.Context, all bool) error
	// Version returns the current version; 0 means nothing is applied.
	Version(ctx context.Context) (version uint, dirty bool, err error)
}

// NewMigrator picks the migrator for the driver db was opened with.
func NewMigrator(db *sqlx.DB) (Migrator, error) {
	switch db.DriverName() {
	case config.DriverOracle:
		sub, err := fs.Sub(database.Migrations, database.OracleDir)
		if err != nil {
			return nil, err
		}
		return &oracleMigrator{db: db, files: sub}, nil
	case config.DriverPostgres:
		return newPostgresMigrator(db.DB)
	default:
		return nil, fmt.Errorf("no migrator for driver %q", db.DriverName())
	}
}

type postgresMigrator struct {
	m *migrate.Migrate
}

func newPostgresMigrator(db *sql.DB) (*postgresMigrator, error) {
	source, err := iofs.New(database.Migrations, database.PostgresDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	driver, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	m.Log = migrateLogger{}
	return &postgresMigrator{m: m}, nil
}

func (p *postgresMigrator) Up(ctx context.Context) error {
	if err := p.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (p *postgresMigrator) Down(ctx context.Context, all bool) error {
	var err error
	if all {
		err = p.m.Down()
	} else {
		err = p.m.Steps(-1)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (p *postgresMigrator) Version(ctx context.Context) (uint, bool, error) {
	v, dirty, err := p.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...interface{}) {
	logger.Get().Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (migrateLogger) Verbose() bool { return false }

// oracleMigrator runs the embedded Oracle scripts statement by statement and
// records the version in schema_migrations, mirroring golang-migrate's table.
type oracleMigrator struct {
	db    *sqlx.DB
	files fs.FS
}

type migrationFile struct {
	version uint
	name    string
}

const oracleNameAlreadyUsed = 955

func (o *oracleMigrator) ensureTable(ctx context.Context) error {
	_, err := o.db.ExecContext(ctx, `CREATE TABLE schema_migrations (version NUMBER(19) NOT NULL, dirty NUMBER(1) NOT NULL)`)
	var oraErr *network.OracleError
	if errors.As(err, &oraErr) && oraErr.ErrCode == oracleNameAlreadyUsed {
		return nil
	}
	return err
}

func (o *oracleMigrator) Version(ctx context.Context) (uint, bool, error) {
	if err := o.ensureTable(ctx); err != nil {
		return 0, false, err
	}
	var row struct {
		Version int64 `db:"version"`
		Dirty   int   `db:"dirty"`
	}
	err := o.db.GetContext(ctx, &row, `SELECT version "version", dirty "dirty" FROM schema_migrations`)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return uint(row.Version), row.Dirty != 0, nil
}

func (o *oracleMigrator) setVersion(ctx context.Context, version uint, dirty bool) error {
	if _, err := o.db.ExecContext(ctx, `DELETE FROM schema_migrations`); err != nil {
		return err
	}
	if version == 0 {
		return nil
	}
	d := 0
	if dirty {
		d = 1
	}
	_, err := o.db.ExecContext(ctx, o.db.Rebind(`INSERT INTO schema_migrations (version, dirty) VALUES (?, ?)`), version, d)
	return err
}

func (o *oracleMigrator) Up(ctx context.Context) error {
	current, dirty, err := o.Version(ctx)
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("database is dirty at version %d; fix it manually", current)
	}
	files, err := listMigrations(o.files, ".up.sql")
	if err != nil {
		return err
	}
	for _, f := range files {
		if f.version <= current {
			continue
		}
		if err := o.apply(ctx, f, f.version); err != nil {
			return err
		}
	}
	return nil
}

func (o *oracleMigrator) Down(ctx context.Context, all bool) error {
	current, dirty, err := o.Version(ctx)
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("database is dirty at version %d; fix it manually", current)
	}
	files, err := listMigrations(o.files, ".down.sql")
	if err != nil {
		return err
	}
	for i := len(files) - 1; i >= 0; i-- {
		f := files[i]
		if f.version > current {
			continue
		}
		var previous uint
		if i > 0 {
			previous = files[i-1].version
		}
		if err := o.apply(ctx, f, previous); err != nil {
			return err
		}
		if !all {
			return nil
		}
	}
	return nil
}

// apply runs one script and moves the recorded version to target. The row
// stays dirty if a statement fails.
func (o *oracleMigrator) apply(ctx context.Context, f migrationFile, target uint) error {
	content, err := fs.ReadFile(o.files, f.name)
	if err != nil {
		return fmt.Errorf("could not read migration file %s: %w", f.name, err)
	}
	if err := o.setVersion(ctx, f.version, true); err != nil {
		return err
	}
	for _, stmt := range splitStatements(string(content)) {
		if _, err := o.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not execute migration %s: %w", f.name, err)
		}
	}
	if err := o.setVersion(ctx, target, false); err != nil {
		return err
	}
	logger.Get().Info("Executed migration", zap.String("file", f.name))
	return nil
}

func listMigrations(files fs.FS, suffix string) ([]migrationFile, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, fmt.Errorf("could not read migrations directory: %w", err)
	}
	var out []migrationFile
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, suffix) {
			continue
		}
		prefix, _, ok := strings.Cut(path.Base(name), "_")
		if !ok {
			return nil, fmt.Errorf("migration %s has no version prefix", name)
		}
		v, err := strconv.ParseUint(prefix, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("migration %s: bad version: %w", name, err)
		}
		out = append(out, migrationFile{version: uint(v), name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}

// splitStatements splits a script on semicolons that end a line. Oracle
// rejects a trailing semicolon in a single statement. Comment-only chunks
// are dropped.
func splitStatements(script string) []string {
	var stmts []string
	var current strings.Builder
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
		if strings.HasSuffix(trimmed, ";") {
			stmt := strings.TrimSuffix(strings.TrimSpace(current.String()), ";")
			if strings.TrimSpace(stmt) != "" {
				stmts = append(stmts, stmt)
			}
			current.Reset()
		}
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		stmts = append(stmts, rest)
	}
	return stmts
}
