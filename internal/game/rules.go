package game

import "fmt"

// Rules holds the immutable table configuration for the round engine.
// A Rules value is passed in at construction; the engine never consults
// globals.
type Rules struct {
	Decks                int     // number of 52-card decks in the shoe
	Target               int     // hand value that makes a blackjack (21)
	DealerStand          int     // dealer hits below this value (17)
	BlackjackPayout      float64 // payout ratio for a natural blackjack (1.5)
	SplitBlackjackPayout float64 // payout ratio for a 21 on a split hand (1.0, even money)
	MinBet               int
	MaxBet               int
	BetSizes             []int // bet denominations offered to providers
	MinActiveChips       int   // below this a participant sits out
}

// DefaultRules returns the standard two-deck table configuration
func DefaultRules() Rules {
	return Rules{
		Decks:                2,
		Target:               21,
		DealerStand:          17,
		BlackjackPayout:      1.5,
		SplitBlackjackPayout: 1.0,
		MinBet:               2,
		MaxBet:               500,
		BetSizes:             []int{10, 20, 50, 100},
		MinActiveChips:       1,
	}
}

// Validate checks the rules for structural errors. Broken rules are a
// programming error, so round construction fails rather than limping on.
func (r Rules) Validate() error {
	if r.Decks < 1 {
		return fmt.Errorf("decks must be at least 1, got %d", r.Decks)
	}
	if r.Target <= 0 {
		return fmt.Errorf("target value must be positive, got %d", r.Target)
	}
	if r.DealerStand <= 0 || r.DealerStand > r.Target {
		return fmt.Errorf("dealer stand value %d must be in (0, %d]", r.DealerStand, r.Target)
	}
	if r.BlackjackPayout <= 0 {
		return fmt.Errorf("blackjack payout ratio must be positive, got %v", r.BlackjackPayout)
	}
	if r.MinBet <= 0 {
		return fmt.Errorf("minimum bet must be positive, got %d", r.MinBet)
	}
	if r.MaxBet < r.MinBet {
		return fmt.Errorf("maximum bet %d is below minimum bet %d", r.MaxBet, r.MinBet)
	}
	if len(r.BetSizes) == 0 {
		return fmt.Errorf("at least one bet denomination must be offered")
	}
	for _, b := range r.BetSizes {
		if b < r.MinBet || b > r.MaxBet {
			return fmt.Errorf("bet denomination %d outside table limits [%d, %d]", b, r.MinBet, r.MaxBet)
		}
	}
	return nil
}
