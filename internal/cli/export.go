package cli

import (
	"io"

	"quizbook/internal/domain"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <slug>",
		Short: "Write a quiz as YAML to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, deps, err := opts.session(cmd.Context())
			if err != nil {
				return err
			}
			defer deps.Close()

			quiz, err := deps.Reader.GetQuizBySlug(ctx, args[0])
			if err != nil {
				return err
			}
			if quiz == nil {
				return domain.NewQuizNotFoundError(args[0])
			}
			return encodeQuiz(cmd.OutOrStdout(), quiz)
		},
	}
}

func encodeQuiz(w io.Writer, quiz *domain.Quiz) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(quiz); err != nil {
		return err
	}
	return enc.Close()
}
