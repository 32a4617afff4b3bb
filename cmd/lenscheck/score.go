package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/lenscheck/internal/answers"
	"github.com/dshills/lenscheck/internal/assess"
	"github.com/dshills/lenscheck/internal/config"
	"github.com/dshills/lenscheck/internal/export"
	"github.com/dshills/lenscheck/internal/history"
	"github.com/dshills/lenscheck/internal/lens"
	"github.com/dshills/lenscheck/internal/render"
	"github.com/dshills/lenscheck/internal/schema"
)

type scoreFlags struct {
	lens        string
	defaultLens string
	format      string
	out         string
	rank        string
	exportOut   string
	failOn      string
	save        bool
	dataDir     string
	verbose     bool
	stdout      io.Writer
}

func newScoreCmd(cfg *config.Config) *cobra.Command {
	f := &scoreFlags{defaultLens: cfg.DefaultLens}

	cmd := &cobra.Command{
		Use:   "score <answers-file>",
		Short: "Score an answer sheet and produce a readout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.stdout = cmd.OutOrStdout()
			return runScore(args[0], f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.lens, "lens", "", "Lens name (default: the sheet's lens, then $LENSCHECK_DEFAULT_LENS)")
	flags.StringVar(&f.format, "format", "md", "Output format: json or md")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.StringVar(&f.rank, "rank", string(cfg.RankMode), "Ranking mode: favorability or drivers")
	flags.StringVar(&f.exportOut, "export-out", "", "Write a YAML snapshot of the run")
	flags.StringVar(&f.failOn, "fail-on", "", "Exit non-zero if the overall zone is at or below this zone (red, yellow, green)")
	flags.BoolVar(&f.save, "save", false, "Save the run to history")
	flags.StringVar(&f.dataDir, "data-dir", cfg.DataDir, "History directory")
	flags.BoolVar(&f.verbose, "verbose", false, "Print processing steps to stderr")

	return cmd
}

func runScore(path string, f *scoreFlags) error {
	logger := log.New(os.Stderr, "", 0)
	verbose := func(msg string, args ...any) {
		if f.verbose {
			logger.Printf(msg, args...)
		}
	}

	var failZone assess.Zone
	if f.failOn != "" {
		z, ok := assess.ParseZone(f.failOn)
		if !ok {
			return exitError(3, "unknown --fail-on zone: %s", f.failOn)
		}
		failZone = z
	}

	mode, ok := assess.ParseRankMode(f.rank)
	if !ok {
		return exitError(3, "unknown rank mode: %s", f.rank)
	}

	// 1. Load answers
	verbose("Loading answers: %s", path)
	sheet, err := answers.Load(path)
	if err != nil {
		return exitError(3, "failed to load answers: %v", err)
	}
	verbose("Loaded %d answers", len(sheet.Answers))

	// 2. Resolve lens
	name := firstNonEmpty(f.lens, sheet.Lens, f.defaultLens, config.DefaultLens)
	verbose("Loading lens: %s", name)
	l, err := lens.LoadBuiltin(name)
	if err != nil {
		return exitError(3, "failed to load lens: %v", err)
	}

	// 3. Validate and score
	rep, err := render.Build(l, sheet.Answers, mode, render.Input{
		AnswersFile: filepath.Base(path),
		AnswersHash: sheet.Hash,
	}, version)
	if errors.Is(err, assess.ErrAnswerOutOfRange) {
		fmt.Fprintln(os.Stderr, "Answer validation errors:")
		for _, e := range schema.ValidateAnswers(l.Bank, sheet.Answers) {
			fmt.Fprintf(os.Stderr, "  %s\n", e)
		}
		return exitError(5, "answers failed validation")
	}
	if err != nil {
		return fmt.Errorf("failed to score: %w", err)
	}
	for _, e := range schema.ValidateAnswers(l.Bank, sheet.Answers) {
		verbose("Ignoring %s", e)
	}
	verbose("Scored %d of %d questions", rep.Answered, len(l.Bank))

	// 4. Output
	var output string
	switch f.format {
	case "json":
		data, err := render.JSON(rep)
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		output = string(data) + "\n"
	case "md":
		output = render.Markdown(rep)
	default:
		return exitError(3, "unknown format: %s", f.format)
	}

	if f.out != "" {
		verbose("Writing output to %s", f.out)
		if err := os.WriteFile(f.out, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		fmt.Fprint(stdoutOf(f.stdout), output)
	}

	// 5. Export snapshot
	if f.exportOut != "" {
		verbose("Writing snapshot to %s", f.exportOut)
		if err := export.WriteFile(export.FromReport(rep, sheet.Answers), f.exportOut); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
	}

	// 6. History
	if f.save {
		if err := saveRun(f.dataDir, history.NewRun(rep, sheet.Answers, "cli"), verbose); err != nil {
			return err
		}
	}

	// 7. Exit code based on --fail-on
	if failZone != "" && zoneMeetsThreshold(rep.OverallZone, failZone) {
		return exitError(2, "overall zone %s meets fail threshold %s", rep.OverallZone, failZone)
	}

	return nil
}

func saveRun(dataDir string, run *history.Run, verbose func(string, ...any)) error {
	if len(run.Variables) == 0 {
		verbose("Nothing to save")
		return nil
	}
	store, err := history.Open(dataDir)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	if err := store.Save(context.Background(), run); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	verbose("Saved run %s to %s", run.ID, dataDir)
	return nil
}

// zoneMeetsThreshold reports whether an overall zone is the threshold zone
// or a worse one. Runs without a zone never meet a threshold.
func zoneMeetsThreshold(zone, threshold assess.Zone) bool {
	return zone.AtOrBelow(threshold)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func stdoutOf(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
