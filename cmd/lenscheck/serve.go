package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/lenscheck/internal/api"
	"github.com/dshills/lenscheck/internal/assess"
	"github.com/dshills/lenscheck/internal/config"
	"github.com/dshills/lenscheck/internal/history"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	var (
		addr      string
		dataDir   string
		noHistory bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scoring API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var store *history.Store
			if !noHistory {
				s, err := history.Open(dataDir)
				if err != nil {
					return exitError(3, "failed to open history: %v", err)
				}
				defer s.Close()
				store = s
			}
			return runServe(addr, store, cfg.RankMode)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&addr, "addr", cfg.Addr, "Listen address")
	flags.StringVar(&dataDir, "data-dir", cfg.DataDir, "History directory")
	flags.BoolVar(&noHistory, "no-history", false, "Do not save scored runs")

	return cmd
}

func runServe(addr string, store *history.Store, rank assess.RankMode) error {
	logger := log.New(os.Stderr, "", log.LstdFlags)
	router := api.NewRouter(&api.Container{
		Store:       store,
		Version:     version,
		DefaultRank: rank,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-quit:
	}
	logger.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Println("Server exited")
	return nil
}
