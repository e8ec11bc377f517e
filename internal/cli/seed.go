package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"quizbook/internal/domain"
	"quizbook/internal/logger"
	"quizbook/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultSeedDir = "configs/seed_data"

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import every quiz YAML file in a directory",
		Long: `Loads *.yaml and *.yml files in name order. All files are parsed and
validated before the first write, so a broken file leaves the database
untouched. Re-running is safe: quizzes are matched by slug and updated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			quizzes, err := loadSeedDir(dir)
			if err != nil {
				return err
			}
			ctx, deps, err := opts.session(cmd.Context())
			if err != nil {
				return err
			}
			defer deps.Close()
			return seedQuizzes(ctx, deps.Reader, deps.Editor, quizzes, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", defaultSeedDir, "directory holding quiz YAML files")
	return cmd
}

type seedFile struct {
	name string
	quiz *domain.Quiz
}

func loadSeedDir(dir string) ([]seedFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed directory: %w", err)
	}
	var files []seedFile
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		quiz, err := readQuizFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if err := quiz.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		files = append(files, seedFile{name: e.Name(), quiz: quiz})
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no quiz files found in %s", dir)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].name < files[j].name })
	return files, nil
}

func seedQuizzes(ctx context.Context, reader service.QuizReaderService, editor service.QuizEditorService, files []seedFile, out io.Writer) error {
	log := logger.Get()
	for _, f := range files {
		result, err := importQuiz(ctx, reader, editor, f.quiz)
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		log.Info("Seeded quiz", zap.String("file", f.name), zap.String("slug", result.Slug))
		if err := printResult(out, result); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "seeded %d quizzes\n", len(files))
	return nil
}
