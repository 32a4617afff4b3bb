package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/lenscheck/internal/config"
	"github.com/dshills/lenscheck/internal/history"
	"github.com/dshills/lenscheck/internal/lens"
)

func newHistoryCmd(cfg *config.Config) *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect saved runs",
	}
	cmd.PersistentFlags().StringVar(&dataDir, "data-dir", cfg.DataDir, "History directory")

	var (
		lensName string
		limit    int
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List saved runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(cmd.Context(), cmd.OutOrStdout(), dataDir, lensName, limit)
		},
	}
	list.Flags().StringVar(&lensName, "lens", "", "Only runs for this lens")
	list.Flags().IntVar(&limit, "limit", history.DefaultListLimit, "Maximum runs to show")

	show := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryShow(cmd.Context(), cmd.OutOrStdout(), dataDir, args[0])
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}

func runHistoryList(ctx context.Context, w io.Writer, dataDir, lensName string, limit int) error {
	store, err := history.Open(dataDir)
	if err != nil {
		return exitError(3, "failed to open history: %v", err)
	}
	defer store.Close()

	if lensName != "" {
		lensName = lens.Normalize(lensName)
	}
	runs, err := store.List(orBackground(ctx), lensName, limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No saved runs.")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(w, "%s  %s  %-14s %6.1f%%  %s\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Lens, r.Overall, r.Zone)
	}
	return nil
}

func runHistoryShow(ctx context.Context, w io.Writer, dataDir, id string) error {
	store, err := history.Open(dataDir)
	if err != nil {
		return exitError(3, "failed to open history: %v", err)
	}
	defer store.Close()

	run, err := store.Get(orBackground(ctx), id)
	if errors.Is(err, history.ErrNotFound) {
		return exitError(3, "run %s not found", id)
	}
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
