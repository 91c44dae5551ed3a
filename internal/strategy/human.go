package strategy

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cardsim/blackjack/internal/deck"
	"github.com/cardsim/blackjack/internal/display"
	"github.com/cardsim/blackjack/internal/game"
)

// Human prompts for every choice over the given reader and writer. Invalid
// input re-prompts; a closed input stream falls back to the safe default so
// a round in flight always completes.
type Human struct {
	scanner  *bufio.Scanner
	out      io.Writer
	renderer *display.Renderer
}

// NewHuman creates an interactive provider reading from in and prompting
// on out.
func NewHuman(in io.Reader, out io.Writer) *Human {
	return &Human{
		scanner:  bufio.NewScanner(in),
		out:      out,
		renderer: display.NewRenderer(),
	}
}

func (h *Human) printf(format string, args ...any) {
	fmt.Fprintf(h.out, format, args...)
}

// readLine returns the next input line, or false when the stream is closed
func (h *Human) readLine() (string, bool) {
	if !h.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(h.scanner.Text()), true
}

// ChooseBet prompts until an offered denomination is entered. EOF takes the
// minimum.
func (h *Human) ChooseBet(available []int) int {
	if len(available) == 0 {
		return 0
	}

	h.printf("\n%s\n", h.renderer.TitleLine("Place your bet"))
	h.printf("Available bets: %s\n", joinInts(available))

	for {
		h.printf("Bet amount: ")
		line, ok := h.readLine()
		if !ok {
			h.printf("\n")
			return available[0]
		}
		amount, err := strconv.Atoi(line)
		if err != nil || !containsInt(available, amount) {
			h.printf("%s\n", h.renderer.WarnLine(
				fmt.Sprintf("Please enter one of: %s", joinInts(available))))
			continue
		}
		return amount
	}
}

// Decide shows the hand and the dealer's upcard and prompts for an action.
// EOF stands.
func (h *Human) Decide(hand *game.Hand, upcard deck.Card, ctx *game.Context) game.Decision {
	ds := game.PossibleDecisions(hand)
	if len(ds) == 0 {
		return game.Stand
	}

	h.printf("\n%s\n", h.renderer.Hand("Your hand", hand.Cards, hand.Value()))
	h.printf("Dealer shows: %s\n", h.renderer.Inline([]deck.Card{upcard}))

	keys := make([]string, len(ds))
	labels := make([]string, len(ds))
	for i, d := range ds {
		keys[i] = decisionKey(d)
		labels[i] = decisionLabel(d)
	}
	h.printf("Options: %s\n", strings.Join(labels, "  "))

	for {
		h.printf("Your move: ")
		line, ok := h.readLine()
		if !ok {
			h.printf("\n")
			return game.Stand
		}
		line = strings.ToLower(line)
		for i, key := range keys {
			if line == key || line == ds[i].String() {
				return ds[i]
			}
		}
		h.printf("%s\n", h.renderer.WarnLine(
			fmt.Sprintf("Please enter one of: %s", strings.Join(keys, ", "))))
	}
}

// DecideInsurance prompts yes/no when the dealer shows an ace. EOF declines.
func (h *Human) DecideInsurance(ctx *game.Context) bool {
	h.printf("\n%s\n", h.renderer.TitleLine("Insurance?"))
	if ctx != nil && ctx.HoleCardTenProb > 0 {
		h.printf("Chance the hole card is ten-valued: %.1f%%\n", ctx.HoleCardTenProb*100)
	}
	h.printf("Insurance pays 2:1 if the dealer has blackjack.\n")

	for {
		h.printf("Take insurance? (y/n): ")
		line, ok := h.readLine()
		if !ok {
			h.printf("\n")
			return false
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		h.printf("%s\n", h.renderer.WarnLine("Please enter y or n."))
	}
}

// Confirm asks a yes/no question outside the round flow. It shares the
// provider's scanner so callers never contend for the input stream. EOF
// returns the default.
func (h *Human) Confirm(prompt string, def bool) bool {
	hint := "Y/n"
	if !def {
		hint = "y/N"
	}

	for {
		h.printf("%s (%s): ", prompt, hint)
		line, ok := h.readLine()
		if !ok {
			h.printf("\n")
			return def
		}
		switch strings.ToLower(line) {
		case "":
			return def
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		h.printf("%s\n", h.renderer.WarnLine("Please enter y or n."))
	}
}

func decisionKey(d game.Decision) string {
	switch d {
	case game.Hit:
		return "h"
	case game.Stand:
		return "s"
	case game.DoubleDown:
		return "d"
	case game.Split:
		return "p"
	case game.Surrender:
		return "r"
	default:
		return "?"
	}
}

func decisionLabel(d game.Decision) string {
	switch d {
	case game.Hit:
		return "(h)it"
	case game.Stand:
		return "(s)tand"
	case game.DoubleDown:
		return "(d)ouble down"
	case game.Split:
		return "s(p)lit"
	case game.Surrender:
		return "su(r)render"
	default:
		return d.String()
	}
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ", ")
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
