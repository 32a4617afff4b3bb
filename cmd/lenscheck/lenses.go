package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/lenscheck/internal/lens"
	"github.com/dshills/lenscheck/internal/schema"
)

func newLensesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lenses",
		Short: "List the built-in lenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLenses(cmd.OutOrStdout())
		},
	}
}

func runLenses(w io.Writer) error {
	names, err := lens.List()
	if err != nil {
		return fmt.Errorf("failed to list lenses: %w", err)
	}
	for _, name := range names {
		l, err := lens.LoadBuiltin(name)
		if err != nil {
			return exitError(3, "failed to load lens %s: %v", name, err)
		}
		if errs := schema.ValidateBank(l); len(errs) > 0 {
			return exitError(5, "lens %s is invalid: %s", name, errs[0])
		}
		fmt.Fprintf(w, "%-14s %-16s %2d questions\n", l.Name, l.Title, len(l.Bank))
	}
	return nil
}
