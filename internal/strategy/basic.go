package strategy

import (
	rand "math/rand/v2"

	"github.com/cardsim/blackjack/internal/deck"
	"github.com/cardsim/blackjack/internal/game"
)

// insuranceThreshold is the hole-card ten probability above which taking
// insurance has positive expectation at 2:1.
const insuranceThreshold = 0.3

// Basic plays the standard basic-strategy chart: pair rules first, then
// soft totals, then hard totals, with late surrender on hard 16 against a
// strong upcard. The RNG only drives the chart's mixed pair decisions.
type Basic struct {
	rng *rand.Rand
}

// NewBasic creates a basic-strategy provider
func NewBasic(rng *rand.Rand) *Basic {
	return &Basic{rng: rng}
}

// ChooseBet always takes the minimum offered denomination
func (b *Basic) ChooseBet(available []int) int {
	if len(available) == 0 {
		return 0
	}
	return available[0]
}

// DecideInsurance takes insurance only when the dealer's hole card is
// ten-valued often enough to make the 2:1 side bet worthwhile.
func (b *Basic) DecideInsurance(ctx *game.Context) bool {
	if ctx == nil {
		return false
	}
	return ctx.HoleCardTenProb >= insuranceThreshold
}

// Decide applies the chart to the hand against the dealer's upcard
func (b *Basic) Decide(hand *game.Hand, upcard deck.Card, ctx *game.Context) game.Decision {
	ds := game.PossibleDecisions(hand)
	if len(ds) == 0 {
		return game.Stand
	}

	canDouble := contains(ds, game.DoubleDown)
	canSurrender := contains(ds, game.Surrender)
	dealer := upcard.Value()
	value := hand.Value()

	if contains(ds, game.Split) {
		if d, ok := b.pairDecision(hand.Cards[0].Rank, dealer); ok {
			return d
		}
	}

	if hand.IsSoft() && len(hand.Cards) >= 2 {
		if d, ok := softDecision(value, dealer, canDouble); ok {
			return d
		}
	}

	return hardDecision(value, dealer, canDouble, canSurrender)
}

// pairDecision resolves a splittable pair. The false return means the pair
// plays out as its total instead.
func (b *Basic) pairDecision(rank deck.Rank, dealer int) (game.Decision, bool) {
	switch {
	case rank == deck.Ace || rank == deck.Eight:
		// Always split aces and eights.
		return game.Split, true
	case rank.IsTenValued():
		return game.Stand, true
	case rank == deck.Nine:
		// Split nines except against 7, ten or ace.
		if dealer == 7 || dealer >= 10 {
			return game.Stand, true
		}
		return game.Split, true
	case rank == deck.Seven:
		if dealer <= 7 {
			return game.Split, true
		}
		// Mixed spot: splitting and hitting are close in value.
		if b.rng.IntN(2) == 0 {
			return game.Split, true
		}
		return game.Hit, true
	case rank == deck.Six:
		if dealer <= 6 {
			return game.Split, true
		}
		return game.Hit, true
	case rank == deck.Two || rank == deck.Three:
		if dealer >= 4 && dealer <= 7 {
			return game.Split, true
		}
		return game.Hit, true
	default:
		// Fours and fives play as their hard total.
		return game.Stand, false
	}
}

// softDecision resolves a soft total. The false return defers to the hard
// total logic.
func softDecision(value, dealer int, canDouble bool) (game.Decision, bool) {
	switch {
	case value >= 19:
		return game.Stand, true
	case value == 18:
		if dealer >= 3 && dealer <= 6 && canDouble {
			return game.DoubleDown, true
		}
		if dealer == 2 || dealer == 7 || dealer == 8 {
			return game.Stand, true
		}
		return game.Hit, true
	case value == 17:
		if dealer >= 3 && dealer <= 6 && canDouble {
			return game.DoubleDown, true
		}
		return game.Hit, true
	case value == 16 || value == 15:
		if dealer >= 4 && dealer <= 6 && canDouble {
			return game.DoubleDown, true
		}
		return game.Hit, true
	case value == 14 || value == 13:
		if dealer >= 5 && dealer <= 6 && canDouble {
			return game.DoubleDown, true
		}
		return game.Hit, true
	default:
		return game.Stand, false
	}
}

func hardDecision(value, dealer int, canDouble, canSurrender bool) game.Decision {
	switch {
	case value >= 17:
		return game.Stand
	case value >= 13:
		if canSurrender && value == 16 && dealer >= 9 {
			return game.Surrender
		}
		if canSurrender && value == 15 && dealer == 10 {
			return game.Surrender
		}
		if dealer >= 2 && dealer <= 6 {
			return game.Stand
		}
		return game.Hit
	case value == 12:
		if dealer >= 4 && dealer <= 6 {
			return game.Stand
		}
		return game.Hit
	case value == 11:
		if dealer != 11 && canDouble {
			return game.DoubleDown
		}
		return game.Hit
	case value == 10:
		if dealer >= 2 && dealer <= 9 && canDouble {
			return game.DoubleDown
		}
		return game.Hit
	case value == 9:
		if dealer >= 3 && dealer <= 6 && canDouble {
			return game.DoubleDown
		}
		return game.Hit
	default:
		return game.Hit
	}
}

func contains(ds []game.Decision, d game.Decision) bool {
	for _, x := range ds {
		if x == d {
			return true
		}
	}
	return false
}
