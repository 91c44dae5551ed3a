package game

import (
	"strings"

	"github.com/cardsim/blackjack/internal/deck"
)

// blackjackTarget is the total the soft-ace downgrade works against
const blackjackTarget = 21

// Hand is an ordered sequence of cards belonging to one bet. Cards are
// appended in deal order. A hand created by splitting a pair is marked so
// it can never score as a natural blackjack.
type Hand struct {
	Cards     []deck.Card
	FromSplit bool
}

// NewHand creates a hand from the given cards
func NewHand(cards ...deck.Card) Hand {
	return Hand{Cards: cards}
}

// Add appends a dealt card to the hand
func (h *Hand) Add(card deck.Card) {
	h.Cards = append(h.Cards, card)
}

// Value returns the hand total. Aces count 11 until the total exceeds 21,
// then each is downgraded to 1 in turn.
func (h *Hand) Value() int {
	value := 0
	aces := 0
	for _, c := range h.Cards {
		value += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	for value > blackjackTarget && aces > 0 {
		value -= 10
		aces--
	}
	return value
}

// IsSoft reports whether an Ace is still counted as 11 after the same
// downgrade loop Value applies.
func (h *Hand) IsSoft() bool {
	value := 0
	aces := 0
	for _, c := range h.Cards {
		value += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	for value > blackjackTarget && aces > 0 {
		value -= 10
		aces--
	}
	return aces > 0
}

// IsBlackjack reports a natural: exactly two cards totalling the target on
// a hand that did not come from a split. A split hand reaching 21 scores
// as an ordinary 21.
func (h *Hand) IsBlackjack(target int) bool {
	return len(h.Cards) == 2 && !h.FromSplit && h.Value() == target
}

// IsBust reports whether the hand exceeded the target
func (h *Hand) IsBust(target int) bool {
	return h.Value() > target
}

// IsPair reports whether the hand is exactly two cards of equal rank
func (h *Hand) IsPair() bool {
	return len(h.Cards) == 2 && h.Cards[0].Rank == h.Cards[1].Rank
}

// SplitCard removes and returns the second card for a split. The caller is
// responsible for checking split eligibility first.
func (h *Hand) SplitCard() (deck.Card, bool) {
	if len(h.Cards) != 2 {
		return deck.Card{}, false
	}
	card := h.Cards[1]
	h.Cards = h.Cards[:1]
	return card, true
}

// String returns the hand as space-separated cards (e.g. "A♠ T♥")
func (h *Hand) String() string {
	if len(h.Cards) == 0 {
		return "empty"
	}
	parts := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Strings returns the hand's cards as strings, for round records
func (h *Hand) Strings() []string {
	out := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		out[i] = c.String()
	}
	return out
}
