package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/lenscheck/internal/assess"
	"github.com/dshills/lenscheck/internal/config"
	"github.com/dshills/lenscheck/internal/export"
	"github.com/dshills/lenscheck/internal/history"
	"github.com/dshills/lenscheck/internal/lens"
	"github.com/dshills/lenscheck/internal/render"
	"github.com/dshills/lenscheck/internal/session"
)

type takeFlags struct {
	count     int
	seed      uint64
	rank      string
	exportOut string
	save      bool
	dataDir   string
	verbose   bool
}

func newTakeCmd(cfg *config.Config) *cobra.Command {
	f := &takeFlags{}

	cmd := &cobra.Command{
		Use:   "take [lens]",
		Short: "Answer a lens questionnaire interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := cfg.DefaultLens
			if len(args) == 1 {
				name = args[0]
			}
			if !cmd.Flags().Changed("seed") {
				f.seed = uint64(time.Now().UnixNano())
			}
			return runTake(name, f, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&f.count, "count", cfg.QuestionCount, "Number of questions")
	flags.Uint64Var(&f.seed, "seed", 0, "Shuffle seed (default: random)")
	flags.StringVar(&f.rank, "rank", string(cfg.RankMode), "Ranking mode: favorability or drivers")
	flags.StringVar(&f.exportOut, "export-out", "", "Write a YAML snapshot of the run")
	flags.BoolVar(&f.save, "save", false, "Save the run to history")
	flags.StringVar(&f.dataDir, "data-dir", cfg.DataDir, "History directory")
	flags.BoolVar(&f.verbose, "verbose", false, "Print processing steps to stderr")

	return cmd
}

const takeHelp = "Answer 0-4, [b]ack, [s]kip, [r]estart, [q]uit and score."

func runTake(name string, f *takeFlags, in io.Reader, out io.Writer) error {
	logger := log.New(os.Stderr, "", 0)
	verbose := func(msg string, args ...any) {
		if f.verbose {
			logger.Printf(msg, args...)
		}
	}

	mode, ok := assess.ParseRankMode(f.rank)
	if !ok {
		return exitError(3, "unknown rank mode: %s", f.rank)
	}
	l, err := lens.LoadBuiltin(name)
	if err != nil {
		return exitError(3, "failed to load lens: %v", err)
	}

	s := session.New(l)
	s.Start(f.count, f.seed)
	verbose("Started %s with %d questions (seed %d)", l.Name, len(s.Active), f.seed)

	fmt.Fprintf(out, "## %s\n\n", l.Title)
	if intro := strings.TrimSpace(l.Intro); intro != "" {
		fmt.Fprintf(out, "%s\n\n", intro)
	}
	for i := assess.MinAnswer; i <= assess.MaxAnswer; i++ {
		fmt.Fprintf(out, "  %d: %s\n", i, lens.ScaleLabels[i])
	}
	fmt.Fprintf(out, "\n%s\n", takeHelp)

	sc := bufio.NewScanner(in)
loop:
	for {
		q, prev, answered, err := s.Current()
		if err != nil {
			return fmt.Errorf("session: %w", err)
		}
		fmt.Fprintf(out, "\n[%d/%d] %s\n", s.Index+1, len(s.Active), q.Text)
		if answered {
			fmt.Fprintf(out, "(current: %d) ", prev)
		}
		fmt.Fprint(out, "> ")

		if !sc.Scan() {
			break
		}
		input := strings.ToLower(strings.TrimSpace(sc.Text()))
		switch input {
		case "q":
			break loop
		case "b":
			s.Back()
			continue
		case "s", "":
			if s.Index == len(s.Active)-1 {
				break loop
			}
			s.Next()
			continue
		case "r":
			s.Restart(f.seed + 1)
			f.seed++
			verbose("Restarted with seed %d", f.seed)
			continue
		}

		n, err := strconv.Atoi(input)
		if err != nil {
			fmt.Fprintln(out, takeHelp)
			continue
		}
		if err := s.Answer(q.ID, n); err != nil {
			fmt.Fprintf(out, "Answer must be between %d and %d.\n", assess.MinAnswer, assess.MaxAnswer)
			continue
		}
		if s.Index == len(s.Active)-1 {
			break
		}
		s.Next()
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading answers: %w", err)
	}

	res, err := s.Finish()
	if err != nil {
		return fmt.Errorf("finishing run: %w", err)
	}
	rep := render.FromResult(l, res, s.Answers, mode, render.Input{}, version)
	fmt.Fprint(out, "\n"+render.Markdown(rep))

	if f.exportOut != "" {
		verbose("Writing snapshot to %s", f.exportOut)
		if err := export.WriteFile(export.FromReport(rep, s.Answers), f.exportOut); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
	}
	if f.save {
		return saveRun(f.dataDir, history.NewRun(rep, s.Answers, "take"), verbose)
	}
	return nil
}
