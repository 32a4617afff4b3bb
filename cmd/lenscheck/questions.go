package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/lenscheck/internal/config"
	"github.com/dshills/lenscheck/internal/lens"
	"github.com/dshills/lenscheck/internal/session"
)

type questionsFlags struct {
	count int
	seed  uint64
	phase int
}

func newQuestionsCmd(cfg *config.Config) *cobra.Command {
	f := &questionsFlags{}

	cmd := &cobra.Command{
		Use:   "questions [lens]",
		Short: "Print a lens questionnaire to answer by hand",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := cfg.DefaultLens
			if len(args) == 1 {
				name = args[0]
			}
			return runQuestions(cmd.OutOrStdout(), name, f)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&f.count, "count", cfg.QuestionCount, "Number of questions")
	flags.Uint64Var(&f.seed, "seed", 0, "Shuffle seed (0 keeps the bank order)")
	flags.IntVar(&f.phase, "phase", 0, "Only questions up to this phase (universal lens)")

	return cmd
}

func runQuestions(w io.Writer, name string, f *questionsFlags) error {
	l, err := lens.LoadBuiltin(name)
	if err != nil {
		return exitError(3, "failed to load lens: %v", err)
	}
	if f.count <= 0 {
		f.count = session.DefaultQuestionCount
	}

	qs := l.Questions(f.phase)
	if f.seed != 0 {
		qs = session.Shuffle(qs, f.seed)
	}
	if len(qs) > f.count {
		qs = qs[:f.count]
	}
	fmt.Fprint(w, lens.FormatQuestionnaire(l, qs))
	return nil
}
