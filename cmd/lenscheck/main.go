package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/lenscheck/internal/config"
)

var version = "0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(3)
	}

	root := &cobra.Command{
		Use:           "lenscheck",
		Short:         "Score self-assessment questionnaires through a lens and find the smallest lever",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(newScoreCmd(cfg))
	root.AddCommand(newTakeCmd(cfg))
	root.AddCommand(newLensesCmd())
	root.AddCommand(newQuestionsCmd(cfg))
	root.AddCommand(newHistoryCmd(cfg))
	root.AddCommand(newServeCmd(cfg))
	root.AddCommand(newMCPCmd(cfg))

	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func exitError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}
