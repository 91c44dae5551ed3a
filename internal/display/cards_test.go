package display

import (
	"strings"
	"testing"

	"github.com/cardsim/blackjack/internal/deck"
)

func TestCardArt(t *testing.T) {
	t.Parallel()

	r := NewPlainRenderer()

	art := r.Card(deck.NewCard(deck.Spades, deck.Ace))
	lines := strings.Split(art, "\n")
	if len(lines) != 5 {
		t.Fatalf("card art has %d lines, want 5", len(lines))
	}
	if lines[1] != "│A    │" {
		t.Errorf("top rank line = %q", lines[1])
	}
	if lines[3] != "│    A│" {
		t.Errorf("bottom rank line = %q", lines[3])
	}
	if !strings.Contains(lines[2], "♠") {
		t.Errorf("suit line = %q, want a spade", lines[2])
	}
}

func TestCardArtTenWidth(t *testing.T) {
	t.Parallel()

	r := NewPlainRenderer()
	art := r.Card(deck.NewCard(deck.Hearts, deck.Ten))
	lines := strings.Split(art, "\n")
	if lines[1] != "│10   │" {
		t.Errorf("ten top line = %q", lines[1])
	}
	if lines[3] != "│   10│" {
		t.Errorf("ten bottom line = %q", lines[3])
	}
}

func TestCardsSideBySide(t *testing.T) {
	t.Parallel()

	r := NewPlainRenderer()
	out := r.Cards(deck.MustParseCards("AsTh"), false)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("joined art has %d lines, want 5", len(lines))
	}
	for i, line := range lines {
		if strings.Count(line, "│")%2 != 0 && !strings.HasPrefix(line, "┌") && !strings.HasPrefix(line, "└") {
			t.Errorf("line %d looks misaligned: %q", i, line)
		}
	}
}

func TestDealerUpcardHidesHoleCard(t *testing.T) {
	t.Parallel()

	r := NewPlainRenderer()
	out := r.DealerUpcard(deck.MustParseCards("AsKd"))
	if !strings.Contains(out, "░") {
		t.Error("expected the hole card to be face down")
	}
	if strings.Contains(out, "K") {
		t.Error("hole card rank leaked into the render")
	}
}

func TestInline(t *testing.T) {
	t.Parallel()

	r := NewPlainRenderer()
	if got := r.Inline(deck.MustParseCards("AsTh")); got != "A♠ T♥" {
		t.Errorf("Inline = %q, want %q", got, "A♠ T♥")
	}
}
