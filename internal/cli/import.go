package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"quizbook/internal/domain"
	"quizbook/internal/service"
	"quizbook/internal/util"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Create or update a quiz from a YAML file",
		Long: `Reads a quiz tree from YAML. A quiz with an id, or whose slug already
exists, is updated in place; anything else is created.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			quiz, err := readQuizFile(file)
			if err != nil {
				return err
			}
			ctx, deps, err := opts.session(cmd.Context())
			if err != nil {
				return err
			}
			defer deps.Close()

			result, err := importQuiz(ctx, deps.Reader, deps.Editor, quiz)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "quiz YAML file (- for stdin)")
	cmd.MarkFlagRequired("file")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a quiz YAML file without touching the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			quiz, err := readQuizFile(file)
			if err != nil {
				return err
			}
			if err := quiz.Validate(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d pages, %d theory blocks)\n", file, len(quiz.Pages), len(quiz.TheoryBlocks))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "quiz YAML file (- for stdin)")
	cmd.MarkFlagRequired("file")
	return cmd
}

func readQuizFile(file string) (*domain.Quiz, error) {
	var r io.Reader
	if file == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return decodeQuiz(r)
}

func decodeQuiz(r io.Reader) (*domain.Quiz, error) {
	var quiz domain.Quiz
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&quiz); err != nil {
		return nil, fmt.Errorf("failed to parse quiz YAML: %w", err)
	}
	return &quiz, nil
}

// importQuiz updates the quiz addressed by id or slug, or creates it.
func importQuiz(ctx context.Context, reader service.QuizReaderService, editor service.QuizEditorService, quiz *domain.Quiz) (*service.SaveResult, error) {
	if quiz.ID != "" {
		return editor.UpdateQuiz(ctx, quiz.ID, quiz)
	}
	if quiz.Slug != "" {
		quiz.Slug = util.Slugify(quiz.Slug)
		existing, err := reader.GetQuizBySlug(ctx, quiz.Slug)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return editor.UpdateQuiz(ctx, existing.ID, quiz)
		}
	}
	return editor.CreateQuiz(ctx, quiz)
}

func printResult(w io.Writer, r *service.SaveResult) error {
	_, err := fmt.Fprintf(w,
		"quiz %s (%s)\n  pages:         +%d ~%d -%d\n  questions:     +%d ~%d -%d\n  options:       +%d ~%d -%d\n  theory blocks: +%d ~%d -%d\n",
		r.Slug, r.QuizID,
		r.Pages.Inserted, r.Pages.Updated, r.Pages.Deleted,
		r.Questions.Inserted, r.Questions.Updated, r.Questions.Deleted,
		r.Options.Inserted, r.Options.Updated, r.Options.Deleted,
		r.TheoryBlocks.Inserted, r.TheoryBlocks.Updated, r.TheoryBlocks.Deleted,
	)
	if err != nil {
		return err
	}
	for _, p := range r.RemovedAssets {
		fmt.Fprintf(w, "  removed asset %s\n", p)
	}
	for _, ae := range r.AssetErrors {
		fmt.Fprintf(w, "  failed to remove asset %s: %s\n", ae.Path, ae.Error)
	}
	return nil
}
