package game

import (
	"testing"

	"github.com/cardsim/blackjack/internal/deck"
)

func TestLegalDecisions(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()

	tests := []struct {
		name  string
		cards string
		chips int
		bet   int
		want  []Decision
	}{
		{
			name:  "two cards with chips for a double",
			cards: "Th7d",
			chips: 100,
			bet:   20,
			want:  []Decision{Hit, Stand, Surrender, DoubleDown},
		},
		{
			name:  "two cards without chips for a double",
			cards: "Th7d",
			chips: 10,
			bet:   20,
			want:  []Decision{Hit, Stand, Surrender},
		},
		{
			name:  "splittable pair",
			cards: "8s8h",
			chips: 100,
			bet:   20,
			want:  []Decision{Hit, Stand, Surrender, DoubleDown, Split},
		},
		{
			name:  "three cards",
			cards: "Th4d3c",
			chips: 100,
			bet:   20,
			want:  []Decision{Hit, Stand},
		},
		{
			name:  "busted hand",
			cards: "Th9d8c",
			chips: 100,
			bet:   20,
			want:  nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := NewParticipant("alice", 1, tt.chips, stand())
			sh := &SeatHand{Hand: NewHand(deck.MustParseCards(tt.cards)...), Bet: tt.bet}
			p.Hands = []*SeatHand{sh}

			got := legalDecisions(p, sh, rules)
			if len(got) != len(tt.want) {
				t.Fatalf("legalDecisions = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("legalDecisions = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestDecisionString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		d    Decision
		want string
	}{
		{Hit, "hit"},
		{Stand, "stand"},
		{DoubleDown, "double-down"},
		{Split, "split"},
		{Surrender, "surrender"},
		{Decision(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("Decision(%d).String() = %q, want %q", tt.d, got, tt.want)
		}
	}
}
