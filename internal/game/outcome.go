package game

// Outcome is the final result of a single hand, assigned exactly once
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLoss
	OutcomePush
	OutcomeBlackjack
	OutcomeBust
	OutcomeSurrender
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "None"
	case OutcomeWin:
		return "Win"
	case OutcomeLoss:
		return "Loss"
	case OutcomePush:
		return "Push"
	case OutcomeBlackjack:
		return "Blackjack"
	case OutcomeBust:
		return "Bust"
	case OutcomeSurrender:
		return "Surrender"
	default:
		return "Unknown"
	}
}

// grossCredit returns the chips credited back to the participant at
// settlement. Bets were debited when placed, so a push credits the stake
// and a win credits twice the stake. Surrender credits nothing here; half
// the bet was refunded when the hand surrendered.
func grossCredit(o Outcome, bet int, fromSplit bool, rules Rules) int {
	switch o {
	case OutcomeBlackjack:
		if fromSplit {
			return bet + int(rules.SplitBlackjackPayout*float64(bet))
		}
		return bet + int(rules.BlackjackPayout*float64(bet))
	case OutcomeWin:
		return bet * 2
	case OutcomePush:
		return bet
	default:
		return 0
	}
}

// netPayout returns the hand's chip delta for the round record: winnings
// minus stake lost, with the surrender refund accounted for.
func netPayout(o Outcome, bet int, fromSplit bool, rules Rules) int {
	switch o {
	case OutcomeBlackjack:
		if fromSplit {
			return int(rules.SplitBlackjackPayout * float64(bet))
		}
		return int(rules.BlackjackPayout * float64(bet))
	case OutcomeWin:
		return bet
	case OutcomePush:
		return 0
	case OutcomeSurrender:
		return -(bet - bet/2)
	default:
		return -bet
	}
}
