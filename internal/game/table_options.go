package game

import "github.com/cardsim/blackjack/internal/deck"

// Option configures a Table at construction
type Option func(*Table)

// WithShoeFunc overrides how the table builds its per-round shoe. The
// function is called once at the start of every round. Tests use it to
// deal stacked cards deterministically.
func WithShoeFunc(fn func() *deck.Shoe) Option {
	return func(t *Table) {
		t.shoeFunc = fn
	}
}

// WithStartingRound sets the round counter, so a resumed session keeps
// numbering records where the previous one stopped.
func WithStartingRound(round int) Option {
	return func(t *Table) {
		t.round = round
	}
}
