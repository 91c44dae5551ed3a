package deck

import (
	"testing"

	"github.com/cardsim/blackjack/internal/randutil"
)

func TestNewShoeSize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		decks    int
		expected int
	}{
		{1, 52},
		{2, 104},
		{6, 312},
	}

	for _, tt := range tests {
		shoe := NewShoe(tt.decks, randutil.New(1))
		if shoe.Remaining() != tt.expected {
			t.Errorf("%d-deck shoe has %d cards, expected %d", tt.decks, shoe.Remaining(), tt.expected)
		}
	}
}

func TestShoeDealDepletes(t *testing.T) {
	t.Parallel()
	shoe := NewShoe(2, randutil.New(42))

	for k := 1; k <= 10; k++ {
		if _, ok := shoe.Deal(); !ok {
			t.Fatalf("deal %d failed with %d cards remaining", k, shoe.Remaining())
		}
		if shoe.Remaining() != 104-k {
			t.Fatalf("after %d deals remaining = %d, expected %d", k, shoe.Remaining(), 104-k)
		}
	}
}

func TestShoeCardMultiplicity(t *testing.T) {
	t.Parallel()
	shoe := NewShoe(2, randutil.New(7))

	counts := make(map[Card]int)
	for {
		card, ok := shoe.Deal()
		if !ok {
			break
		}
		counts[card]++
	}

	if len(counts) != 52 {
		t.Fatalf("expected 52 distinct cards, got %d", len(counts))
	}
	for card, n := range counts {
		if n != 2 {
			t.Errorf("card %s appears %d times, expected exactly 2", card, n)
		}
	}
}

func TestShoeShuffleDeterministic(t *testing.T) {
	t.Parallel()
	a := NewShoe(2, randutil.New(99))
	b := NewShoe(2, randutil.New(99))

	for a.Remaining() > 0 {
		ca, _ := a.Deal()
		cb, _ := b.Deal()
		if ca != cb {
			t.Fatal("same seed produced different shoe orders")
		}
	}
}

func TestShoeStack(t *testing.T) {
	t.Parallel()
	shoe := NewShoe(1, randutil.New(3))
	shoe.Stack(MustParseCards("AsKh7d")...)

	want := MustParseCards("AsKh7d")
	for i, expected := range want {
		got, ok := shoe.Deal()
		if !ok {
			t.Fatal("shoe unexpectedly empty")
		}
		if got != expected {
			t.Errorf("stacked deal %d = %s, expected %s", i, got, expected)
		}
	}
}

func TestCountTenValued(t *testing.T) {
	t.Parallel()
	if got := CountTenValued(2, nil); got != 32 {
		t.Errorf("fresh 2-deck shoe should hold 32 ten-valued cards, got %d", got)
	}

	visible := MustParseCards("ThJdAc5s")
	if got := CountTenValued(2, visible); got != 30 {
		t.Errorf("expected 30 ten-valued cards after removing two, got %d", got)
	}
}
