package game

import (
	"errors"
	"fmt"

	"github.com/cardsim/blackjack/internal/deck"
)

// Bet placement errors
var (
	ErrNonPositiveBet  = errors.New("bet amount must be positive")
	ErrBetExceedsChips = errors.New("bet amount exceeds available chips")
)

// SeatHand pairs a hand with the bet that funds it and the outcome it
// eventually receives. Keeping the three together means the hand and bet
// sequences can never drift out of alignment.
type SeatHand struct {
	Hand    Hand
	Bet     int
	Outcome Outcome

	// frozen marks a split-ace hand that received its one forced card
	// and may take no further decisions.
	frozen bool
}

// Participant is one betting seat at the table. Chips persist across
// rounds; hands, bets and the insurance bet are rebuilt every round.
type Participant struct {
	Name     string
	Seat     int
	Chips    int
	Provider DecisionProvider

	Hands        []*SeatHand
	InsuranceBet int
}

// NewParticipant creates a participant with the given decision provider
func NewParticipant(name string, seat, chips int, provider DecisionProvider) *Participant {
	return &Participant{
		Name:     name,
		Seat:     seat,
		Chips:    chips,
		Provider: provider,
	}
}

// ResetForRound clears hands, bets and insurance for a new round
func (p *Participant) ResetForRound() {
	p.Hands = nil
	p.InsuranceBet = 0
}

// Active reports whether the participant was dealt into the current round
func (p *Participant) Active() bool {
	return len(p.Hands) > 0
}

// PlaceBet opens the participant's primary hand with the given bet. The
// bet is debited immediately. A non-positive or unaffordable amount is
// rejected without mutating any state.
func (p *Participant) PlaceBet(amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: %d", ErrNonPositiveBet, amount)
	}
	if amount > p.Chips {
		return fmt.Errorf("%w: bet %d, chips %d", ErrBetExceedsChips, amount, p.Chips)
	}

	p.Chips -= amount
	p.Hands = []*SeatHand{{Hand: Hand{}, Bet: amount}}
	return nil
}

// CanSplit reports whether the given hand may be split: an unsplit pair
// with enough chips to fund the matching bet. A participant already
// holding two hands may not split again.
func (p *Participant) CanSplit(sh *SeatHand) bool {
	return len(p.Hands) == 1 && sh.Hand.IsPair() && p.Chips >= sh.Bet
}

// SplitHand splits the hand at the given index into two. One card moves to
// a new hand appended at the end, funded by a matching bet debited from
// the participant's chips. Both hands are marked as split-originated.
func (p *Participant) SplitHand(idx int) error {
	if idx < 0 || idx >= len(p.Hands) {
		return fmt.Errorf("no hand at index %d", idx)
	}
	sh := p.Hands[idx]
	if !p.CanSplit(sh) {
		return fmt.Errorf("hand %v is not splittable", sh.Hand.String())
	}

	card, ok := sh.Hand.SplitCard()
	if !ok {
		return fmt.Errorf("hand %v has no split card", sh.Hand.String())
	}

	p.Chips -= sh.Bet
	sh.Hand.FromSplit = true
	p.Hands = append(p.Hands, &SeatHand{
		Hand: Hand{Cards: []deck.Card{card}, FromSplit: true},
		Bet:  sh.Bet,
	})
	return nil
}

// PlaceInsurance debits an insurance bet of half the primary bet. It
// reports false without mutating state when chips cannot cover it.
func (p *Participant) PlaceInsurance() bool {
	if !p.Active() {
		return false
	}
	amount := p.Hands[0].Bet / 2
	if amount <= 0 || amount > p.Chips {
		return false
	}
	p.Chips -= amount
	p.InsuranceBet = amount
	return true
}

// Dealer holds the house hand. The dealer follows a fixed rule and places
// no bets, so it carries no chips or providers.
type Dealer struct {
	Hand Hand
}

// ResetForRound clears the dealer's hand for a new round
func (d *Dealer) ResetForRound() {
	d.Hand = Hand{}
}

// Upcard returns the dealer's face-up card (the first card dealt)
func (d *Dealer) Upcard() deck.Card {
	return d.Hand.Cards[0]
}

// HasUpcard reports whether the dealer has been dealt a card yet
func (d *Dealer) HasUpcard() bool {
	return len(d.Hand.Cards) > 0
}
