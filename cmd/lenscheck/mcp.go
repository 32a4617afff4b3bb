package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/lenscheck/internal/config"
	"github.com/dshills/lenscheck/internal/history"
	"github.com/dshills/lenscheck/internal/mcptools"
)

func newMCPCmd(cfg *config.Config) *cobra.Command {
	var (
		dataDir   string
		noHistory bool
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve lens tools to an MCP client over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps := mcptools.Deps{
				Version:     version,
				DefaultLens: cfg.DefaultLens,
				DefaultRank: cfg.RankMode,
			}
			if !noHistory {
				s, err := history.Open(dataDir)
				if err != nil {
					return exitError(3, "failed to open history: %v", err)
				}
				defer s.Close()
				deps.Store = s
			}
			return mcptools.Serve(deps)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&dataDir, "data-dir", cfg.DataDir, "History directory")
	flags.BoolVar(&noHistory, "no-history", false, "Do not save scored runs")

	return cmd
}
