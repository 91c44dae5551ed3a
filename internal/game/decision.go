package game

import "github.com/cardsim/blackjack/internal/deck"

// Decision represents a player action on a hand
type Decision int

const (
	Hit Decision = iota
	Stand
	DoubleDown
	Split
	Surrender
)

// String returns the string representation of a decision
func (d Decision) String() string {
	switch d {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case DoubleDown:
		return "double-down"
	case Split:
		return "split"
	case Surrender:
		return "surrender"
	default:
		return "unknown"
	}
}

// Context is a read-only snapshot of the table state built by the engine.
// Providers must not mutate it. The engine refreshes the visible cards and
// hand count as the round progresses.
type Context struct {
	// NumParticipants is the number of seats dealt into this round
	NumParticipants int

	// VisibleCards lists every face-up card in deal order: participant
	// hands plus the dealer's upcard. The hole card is never included.
	VisibleCards []deck.Card

	// NumHands is how many hands the acting participant currently holds
	// (2 after a split). Zero when no participant is acting.
	NumHands int

	// HoleCardTenProb is the probability that the dealer's hole card is
	// ten-valued, computed against a full reference shoe minus the
	// visible cards. Only set while insurance is being offered.
	HoleCardTenProb float64
}

// DecisionProvider is the capability each participant supplies. All three
// calls are synchronous and may block indefinitely; the engine never times
// them out. Implementations must absorb their own failures and return a
// safe default (Stand / false / minimum offered bet) rather than propagate
// an error into the engine.
type DecisionProvider interface {
	// ChooseBet picks a bet from the offered denominations. Returning a
	// value outside the offered set makes the engine fall back to the
	// minimum offered size.
	ChooseBet(available []int) int

	// Decide picks the next action for a hand given the dealer's upcard.
	// Illegal decisions are substituted by the engine, never executed.
	Decide(hand *Hand, upcard deck.Card, ctx *Context) Decision

	// DecideInsurance reports whether to take the insurance side bet.
	DecideInsurance(ctx *Context) bool
}

// PossibleDecisions returns the decision set a hand's cards allow,
// ignoring chip constraints. Providers use it to pick among plausible
// actions; the engine substitutes anything it cannot honor.
func PossibleDecisions(h *Hand) []Decision {
	if h.Value() > blackjackTarget {
		return nil
	}

	switch n := len(h.Cards); {
	case n == 2:
		ds := []Decision{Hit, Stand, Surrender, DoubleDown}
		if h.IsPair() {
			ds = append(ds, Split)
		}
		return ds
	case n > 2:
		return []Decision{Hit, Stand}
	default:
		return nil
	}
}

// legalDecisions returns the decisions currently legal for a hand.
// Surrender, double-down and split are only available while the hand has
// exactly its original two cards; a busted hand has no legal decisions.
func legalDecisions(p *Participant, sh *SeatHand, rules Rules) []Decision {
	if sh.Hand.Value() > rules.Target {
		return nil
	}

	switch n := len(sh.Hand.Cards); {
	case n == 2:
		ds := []Decision{Hit, Stand, Surrender}
		if p.Chips >= sh.Bet {
			ds = append(ds, DoubleDown)
		}
		if p.CanSplit(sh) {
			ds = append(ds, Split)
		}
		return ds
	case n > 2:
		return []Decision{Hit, Stand}
	default:
		return nil
	}
}

func decisionLegal(legal []Decision, d Decision) bool {
	for _, l := range legal {
		if l == d {
			return true
		}
	}
	return false
}
