package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/cardsim/blackjack/internal/config"
	"github.com/cardsim/blackjack/internal/game"
	"github.com/cardsim/blackjack/internal/randutil"
	"github.com/cardsim/blackjack/internal/strategy"
)

// buildParticipants wires each configured player to its decision provider.
// Each automated provider gets its own RNG derived from the master seed,
// so adding a player does not perturb the others' decision streams. The
// returned closer shuts down any remote connections.
func buildParticipants(cfg *config.File, seed int64, logger *log.Logger) ([]*game.Participant, func(), error) {
	var participants []*game.Participant
	var closers []io.Closer

	closeAll := func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				logger.Warn("closing provider", "err", err)
			}
		}
	}

	for i, p := range cfg.Players {
		provider, err := newProvider(p, randutil.Derive(seed, -(i + 1)), logger)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("player %s: %w", p.Name, err)
		}
		if c, ok := provider.(io.Closer); ok {
			closers = append(closers, c)
		}
		participants = append(participants, game.NewParticipant(p.Name, i+1, p.Chips, provider))
	}

	return participants, closeAll, nil
}

func newProvider(p config.PlayerConfig, seed int64, logger *log.Logger) (game.DecisionProvider, error) {
	switch p.Strategy {
	case config.StrategyBasic:
		return strategy.NewBasic(randutil.New(seed)), nil
	case config.StrategyNaive:
		return strategy.NewNaive(randutil.New(seed)), nil
	case config.StrategyHuman:
		return strategy.NewHuman(os.Stdin, os.Stdout), nil
	case config.StrategyRemote:
		return strategy.Dial(p.URL, logger.WithPrefix(p.Name))
	default:
		return nil, fmt.Errorf("unknown strategy %q", p.Strategy)
	}
}
