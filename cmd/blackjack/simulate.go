package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cardsim/blackjack/internal/analysis"
	"github.com/cardsim/blackjack/internal/config"
	"github.com/cardsim/blackjack/internal/game"
	"github.com/cardsim/blackjack/internal/history"
	"github.com/cardsim/blackjack/internal/simulator"
	"github.com/cardsim/blackjack/internal/tui"
)

type SimulateCmd struct {
	Rounds  int    `default:"1000" help:"Number of rounds to simulate"`
	Seed    int64  `default:"0" help:"RNG seed (0 for random)"`
	Config  string `default:"blackjack.hcl" help:"Table configuration file" type:"path"`
	History string `help:"Append round records to this JSONL file" type:"path"`
	Summary string `help:"Write the JSON summary report to this file" type:"path"`
	TUI     bool   `help:"Show a live view of the run"`
	Verbose bool   `help:"Verbose logging"`
}

func (c *SimulateCmd) Run() error {
	logger := newLogger(c.Verbose)

	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	participants, closeProviders, err := buildParticipants(cfg, c.Seed, logger)
	if err != nil {
		return err
	}
	defer closeProviders()

	var writer history.Writer = history.NoOpWriter{}
	if c.History != "" {
		w, err := history.NewJSONLWriter(c.History)
		if err != nil {
			return err
		}
		writer = w
	}

	simCfg := simulator.Config{
		Rounds:  c.Rounds,
		Seed:    c.Seed,
		Rules:   cfg.GameRules(),
		History: writer,
		Logger:  logger,
	}

	logger.Info("starting simulation",
		"rounds", c.Rounds, "seed", c.Seed, "players", len(participants))

	var stats *analysis.Stats
	if c.TUI {
		stats, err = c.runWithTUI(simCfg, participants)
	} else {
		stats, err = simulator.New(simCfg, participants).Run(context.Background())
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		writer.Close()
		return err
	}

	if err := writer.Close(); err != nil {
		return err
	}

	fmt.Printf("\nseed: %d\n\n", c.Seed)
	stats.WriteReport(os.Stdout)

	if c.Summary != "" {
		if err := history.WriteSummaryAtomic(c.Summary, stats.Summarize()); err != nil {
			return err
		}
		fmt.Printf("\nsummary written to %s\n", c.Summary)
	}

	return nil
}

// runWithTUI runs the simulator and the live viewer concurrently. Quitting
// the viewer cancels the run; the partial statistics are still reported.
func (c *SimulateCmd) runWithTUI(simCfg simulator.Config, participants []*game.Participant) (*analysis.Stats, error) {
	records := make(chan *game.RoundRecord, 64)
	simCfg.Records = records

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stats *analysis.Stats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = simulator.New(simCfg, participants).Run(ctx)
		return err
	})
	g.Go(func() error {
		defer cancel()
		return tui.Run(records, c.Rounds)
	})

	return stats, g.Wait()
}
