package game

import (
	"testing"

	"github.com/cardsim/blackjack/internal/deck"
)

func handOf(t *testing.T, cards string) Hand {
	t.Helper()
	return NewHand(deck.MustParseCards(cards)...)
}

func TestHandValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cards string
		value int
		soft  bool
	}{
		{"As9h", 20, true},
		{"As9h5d", 15, false},
		{"AsAh", 12, true},
		{"AsAhAd", 13, true},
		{"As5h", 16, true},
		{"As5h9d", 15, false},
		{"ThJd", 20, false},
		{"KhQd", 20, false},
		{"AsKs", 21, true},
		{"KsQhAd", 21, false},
		{"9h8d7c", 24, false},
		{"2s3h", 5, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.cards, func(t *testing.T) {
			t.Parallel()
			h := handOf(t, tt.cards)
			if got := h.Value(); got != tt.value {
				t.Errorf("Value(%s) = %d, want %d", tt.cards, got, tt.value)
			}
			if got := h.IsSoft(); got != tt.soft {
				t.Errorf("IsSoft(%s) = %v, want %v", tt.cards, got, tt.soft)
			}
		})
	}
}

func TestHandBlackjack(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cards     string
		fromSplit bool
		want      bool
	}{
		{"natural ace ten", "AsTs", false, true},
		{"natural ace king", "AdKh", false, true},
		{"three card twenty one", "7h7d7c", false, false},
		{"split hand twenty one", "AsTs", true, false},
		{"two card twenty", "ThJd", false, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := handOf(t, tt.cards)
			h.FromSplit = tt.fromSplit
			if got := h.IsBlackjack(21); got != tt.want {
				t.Errorf("IsBlackjack(%s, fromSplit=%v) = %v, want %v",
					tt.cards, tt.fromSplit, got, tt.want)
			}
		})
	}
}

func TestHandBust(t *testing.T) {
	t.Parallel()

	if h := handOf(t, "Th7d9s"); !h.IsBust(21) {
		t.Errorf("expected %s to be bust", h.String())
	}
	// A soft hand downgrades its ace instead of busting.
	if h := handOf(t, "AsTh7d"); h.IsBust(21) {
		t.Errorf("expected %s (value %d) not to be bust", h.String(), h.Value())
	}
}

func TestHandPairAndSplitCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cards string
		pair  bool
	}{
		{"8s8h", true},
		{"AsAh", true},
		{"ThJd", false}, // equal value, different rank
		{"8s8h8d", false},
		{"8s", false},
	}

	for _, tt := range tests {
		h := handOf(t, tt.cards)
		if got := h.IsPair(); got != tt.pair {
			t.Errorf("IsPair(%s) = %v, want %v", tt.cards, got, tt.pair)
		}
	}

	h := handOf(t, "8s8h")
	card, ok := h.SplitCard()
	if !ok {
		t.Fatal("expected SplitCard to succeed on a pair")
	}
	if card.String() != "8♥" {
		t.Errorf("SplitCard returned %s, want 8♥", card)
	}
	if len(h.Cards) != 1 || h.Cards[0].String() != "8♠" {
		t.Errorf("hand after split = %s, want 8♠", h.String())
	}
}

func TestHandString(t *testing.T) {
	t.Parallel()

	h := handOf(t, "AsTh")
	if got := h.String(); got != "A♠ T♥" {
		t.Errorf("String() = %q, want %q", got, "A♠ T♥")
	}
	empty := Hand{}
	if got := empty.String(); got != "empty" {
		t.Errorf("String() on empty hand = %q, want %q", got, "empty")
	}
}
