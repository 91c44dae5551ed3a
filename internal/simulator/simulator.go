// Package simulator drives many rounds of blackjack and aggregates the
// results.
package simulator

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/cardsim/blackjack/internal/analysis"
	"github.com/cardsim/blackjack/internal/game"
	"github.com/cardsim/blackjack/internal/history"
	"github.com/cardsim/blackjack/internal/randutil"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds  int
	Seed    int64
	Rules   game.Rules
	History history.Writer
	Logger  *log.Logger

	// Records, when non-nil, receives every round record as it is
	// produced and is closed when the run ends. Live displays consume it.
	Records chan<- *game.RoundRecord
}

// Simulator runs blackjack round simulations
type Simulator struct {
	config       Config
	participants []*game.Participant
}

// New creates a simulator over the given participants. Chip balances on
// the participants carry across every round of the run.
func New(config Config, participants []*game.Participant) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.History == nil {
		config.History = history.NoOpWriter{}
	}
	return &Simulator{config: config, participants: participants}
}

// Run plays the configured number of rounds and returns the aggregate
// statistics. Each round is played on its own table seeded from the
// master seed, so round n can be replayed in isolation with the same
// seed. The run stops early when the context is cancelled or when no
// participant can afford a bet.
func (s *Simulator) Run(ctx context.Context) (*analysis.Stats, error) {
	if s.config.Records != nil {
		defer close(s.config.Records)
	}

	stats := analysis.New()

	for round := 1; round <= s.config.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("simulation cancelled at round %d: %w", round, err)
		}

		rec, err := s.playRound(round)
		if err != nil {
			return stats, fmt.Errorf("round %d: %w", round, err)
		}

		stats.Add(rec)
		if err := s.config.History.Append(rec); err != nil {
			return stats, fmt.Errorf("persist round %d: %w", round, err)
		}

		if s.config.Records != nil {
			select {
			case s.config.Records <- rec:
			case <-ctx.Done():
				return stats, fmt.Errorf("simulation cancelled at round %d: %w", round, ctx.Err())
			}
		}

		if !s.anyCanBet() {
			s.config.Logger.Info("all participants are out of chips, stopping",
				"round", round, "planned", s.config.Rounds)
			break
		}
	}

	return stats, nil
}

// playRound plays round n on a fresh table seeded from the master seed
func (s *Simulator) playRound(round int) (*game.RoundRecord, error) {
	rng := randutil.New(randutil.Derive(s.config.Seed, round))

	table, err := game.NewTable(rng, s.config.Rules, s.participants, s.config.Logger,
		game.WithStartingRound(round-1))
	if err != nil {
		return nil, err
	}
	return table.PlayRound()
}

// anyCanBet reports whether at least one participant can still afford an
// offered bet denomination.
func (s *Simulator) anyCanBet() bool {
	for _, p := range s.participants {
		if p.Chips < s.config.Rules.MinActiveChips {
			continue
		}
		for _, b := range s.config.Rules.BetSizes {
			if b > 0 && b <= p.Chips {
				return true
			}
		}
	}
	return false
}
