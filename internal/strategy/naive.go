// Package strategy provides the decision providers that sit behind a table
// seat: random, chart-driven, interactive and remote. Every provider absorbs
// its own failures and answers with a safe default, so the round engine
// never has to handle a provider error.
package strategy

import (
	rand "math/rand/v2"

	"github.com/cardsim/blackjack/internal/deck"
	"github.com/cardsim/blackjack/internal/game"
)

// Naive picks uniformly among the decisions the hand allows and flips a
// coin on insurance. It is the baseline the chart players are measured
// against.
type Naive struct {
	rng *rand.Rand
}

// NewNaive creates a naive provider driven by the given RNG
func NewNaive(rng *rand.Rand) *Naive {
	return &Naive{rng: rng}
}

// ChooseBet picks a random offered denomination
func (n *Naive) ChooseBet(available []int) int {
	if len(available) == 0 {
		return 0
	}
	return available[n.rng.IntN(len(available))]
}

// Decide picks uniformly among the hand's possible decisions
func (n *Naive) Decide(hand *game.Hand, upcard deck.Card, ctx *game.Context) game.Decision {
	ds := game.PossibleDecisions(hand)
	if len(ds) == 0 {
		return game.Stand
	}
	return ds[n.rng.IntN(len(ds))]
}

// DecideInsurance flips a coin
func (n *Naive) DecideInsurance(ctx *game.Context) bool {
	return n.rng.IntN(2) == 0
}
