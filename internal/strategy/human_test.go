package strategy

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cardsim/blackjack/internal/game"
)

func TestHumanChooseBet(t *testing.T) {
	t.Parallel()

	t.Run("accepts an offered bet", func(t *testing.T) {
		t.Parallel()
		h := NewHuman(strings.NewReader("20\n"), &bytes.Buffer{})
		if got := h.ChooseBet([]int{10, 20, 50}); got != 20 {
			t.Errorf("ChooseBet = %d, want 20", got)
		}
	})

	t.Run("re-prompts on invalid input", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		h := NewHuman(strings.NewReader("7\nabc\n10\n"), &out)
		if got := h.ChooseBet([]int{10, 20}); got != 10 {
			t.Errorf("ChooseBet = %d, want 10", got)
		}
		if !strings.Contains(out.String(), "Please enter one of") {
			t.Error("expected a re-prompt message")
		}
	})

	t.Run("falls back to minimum on closed input", func(t *testing.T) {
		t.Parallel()
		h := NewHuman(strings.NewReader(""), &bytes.Buffer{})
		if got := h.ChooseBet([]int{10, 20}); got != 10 {
			t.Errorf("ChooseBet = %d, want 10", got)
		}
	})
}

func TestHumanDecide(t *testing.T) {
	t.Parallel()

	t.Run("maps keys to decisions", func(t *testing.T) {
		t.Parallel()
		h := NewHuman(strings.NewReader("h\n"), &bytes.Buffer{})
		if got := h.Decide(basicHand("Th6h"), upcard("9h"), nil); got != game.Hit {
			t.Errorf("Decide = %s, want Hit", got)
		}
	})

	t.Run("accepts full decision names", func(t *testing.T) {
		t.Parallel()
		h := NewHuman(strings.NewReader("surrender\n"), &bytes.Buffer{})
		if got := h.Decide(basicHand("Th6h"), upcard("9h"), nil); got != game.Surrender {
			t.Errorf("Decide = %s, want Surrender", got)
		}
	})

	t.Run("rejects choices the hand does not allow", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		// T♥ 6♥ is not a pair, so "p" re-prompts.
		h := NewHuman(strings.NewReader("p\ns\n"), &out)
		if got := h.Decide(basicHand("Th6h"), upcard("9h"), nil); got != game.Stand {
			t.Errorf("Decide = %s, want Stand", got)
		}
		if !strings.Contains(out.String(), "Please enter one of") {
			t.Error("expected a re-prompt message")
		}
	})

	t.Run("stands on closed input", func(t *testing.T) {
		t.Parallel()
		h := NewHuman(strings.NewReader(""), &bytes.Buffer{})
		if got := h.Decide(basicHand("Th6h"), upcard("9h"), nil); got != game.Stand {
			t.Errorf("Decide = %s, want Stand", got)
		}
	})
}

func TestHumanConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		def   bool
		want  bool
	}{
		{"yes", "y\n", false, true},
		{"no", "no\n", true, false},
		{"empty takes default yes", "\n", true, true},
		{"empty takes default no", "\n", false, false},
		{"garbage then yes", "what\nyes\n", false, true},
		{"closed input takes default", "", true, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := NewHuman(strings.NewReader(tt.input), &bytes.Buffer{})
			if got := h.Confirm("Play another round?", tt.def); got != tt.want {
				t.Errorf("Confirm = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHumanDecideInsurance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes", "y\n", true},
		{"full yes", "yes\n", true},
		{"no", "n\n", false},
		{"garbage then no", "maybe\nn\n", false},
		{"closed input declines", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := NewHuman(strings.NewReader(tt.input), &bytes.Buffer{})
			got := h.DecideInsurance(&game.Context{HoleCardTenProb: 0.31})
			if got != tt.want {
				t.Errorf("DecideInsurance = %v, want %v", got, tt.want)
			}
		})
	}
}
