package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/cardsim/blackjack/internal/deck"
)

// Table runs complete blackjack rounds for a fixed set of participants.
// Rounds are strictly sequential and single-threaded: the shoe is owned by
// the table for the round's duration and chip balances are only mutated by
// the engine during setup, insurance and settlement.
type Table struct {
	rules        Rules
	participants []*Participant
	dealer       *Dealer
	shoe         *deck.Shoe
	shoeFunc     func() *deck.Shoe
	rng          *rand.Rand
	logger       *log.Logger
	round        int
}

// NewTable creates a table. The RNG drives every shuffle so a seeded RNG
// makes rounds reproducible.
func NewTable(rng *rand.Rand, rules Rules, participants []*Participant, logger *log.Logger, opts ...Option) (*Table, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	if len(participants) == 0 {
		return nil, fmt.Errorf("at least one participant is required")
	}
	for i, p := range participants {
		if p.Provider == nil {
			return nil, fmt.Errorf("participant %q has no decision provider", p.Name)
		}
		if p.Seat == 0 {
			p.Seat = i + 1
		}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	t := &Table{
		rules:        rules,
		participants: participants,
		dealer:       &Dealer{},
		rng:          rng,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Rules returns the table's rules
func (t *Table) Rules() Rules {
	return t.rules
}

// Participants returns the seated participants
func (t *Table) Participants() []*Participant {
	return t.participants
}

// PlayRound runs one full round: betting, dealing, insurance, blackjack
// resolution, participant turns, the dealer's fixed-rule turn, outcome
// determination and settlement. It returns the round's record. An error
// means a structural failure (an exhausted shoe); decision providers can
// never fail a round.
func (t *Table) PlayRound() (*RoundRecord, error) {
	t.round++

	chipsBefore := make([]int, len(t.participants))
	for i, p := range t.participants {
		chipsBefore[i] = p.Chips
	}

	t.setup()

	if !t.anyActive() {
		t.logger.Warn("no participant could afford a bet, skipping round", "round", t.round)
		return t.buildRecord(chipsBefore, nil, nil), nil
	}

	dealerInitial, initialHands, err := t.dealInitial()
	if err != nil {
		return nil, err
	}

	ctx := t.buildContext()

	if t.dealer.Upcard().IsAce() {
		t.offerInsurance(ctx)
	}

	roundOver := t.resolveBlackjacks()

	if !roundOver {
		for _, p := range t.participants {
			if p.Active() && p.Hands[0].Outcome == OutcomeNone {
				if err := t.playParticipant(p, ctx); err != nil {
					return nil, err
				}
			}
		}

		if t.anyUnresolved() {
			if err := t.dealerTurn(); err != nil {
				return nil, err
			}
		}

		t.determineOutcomes()
	}

	t.settle()

	return t.buildRecord(chipsBefore, dealerInitial, initialHands), nil
}

// setup rebuilds the shoe, resets all hands and collects bets. A
// participant who cannot afford any offered bet sits the round out.
func (t *Table) setup() {
	if t.shoeFunc != nil {
		t.shoe = t.shoeFunc()
	} else {
		t.shoe = deck.NewShoe(t.rules.Decks, t.rng)
	}
	t.dealer.ResetForRound()

	for _, p := range t.participants {
		p.ResetForRound()

		available := t.availableBets(p)
		if len(available) == 0 {
			t.logger.Debug("participant sits out", "name", p.Name, "chips", p.Chips)
			continue
		}

		amount := p.Provider.ChooseBet(available)
		if !containsInt(available, amount) {
			t.logger.Debug("invalid bet from provider, falling back to minimum",
				"name", p.Name, "bet", amount, "minimum", available[0])
			amount = available[0]
		}
		if err := p.PlaceBet(amount); err != nil {
			// The fallback bet is drawn from the affordable set, so
			// this second attempt cannot fail.
			t.logger.Debug("bet rejected, falling back to minimum",
				"name", p.Name, "bet", amount, "err", err)
			_ = p.PlaceBet(available[0])
		}

		t.logger.Debug("bet placed", "name", p.Name, "bet", p.Hands[0].Bet, "chips", p.Chips)
	}
}

// availableBets returns the offered denominations this participant can
// afford, ascending so the first entry is the fallback minimum.
func (t *Table) availableBets(p *Participant) []int {
	if p.Chips < t.rules.MinActiveChips {
		return nil
	}
	var out []int
	for _, b := range t.rules.BetSizes {
		if b > 0 && b <= p.Chips {
			out = append(out, b)
		}
	}
	sort.Ints(out)
	return out
}

// dealInitial deals two cards to every active seat and the dealer: one
// card to each seat in order, the dealer's upcard, a second card to each
// seat, then the hole card. It returns snapshots of the initial hands.
func (t *Table) dealInitial() ([]deck.Card, map[*Participant][]deck.Card, error) {
	for pass := 0; pass < 2; pass++ {
		for _, p := range t.participants {
			if !p.Active() {
				continue
			}
			card, err := t.deal()
			if err != nil {
				return nil, nil, err
			}
			p.Hands[0].Hand.Add(card)
		}
		card, err := t.deal()
		if err != nil {
			return nil, nil, err
		}
		t.dealer.Hand.Add(card)
	}

	dealerInitial := append([]deck.Card(nil), t.dealer.Hand.Cards...)
	initial := make(map[*Participant][]deck.Card, len(t.participants))
	for _, p := range t.participants {
		if p.Active() {
			initial[p] = append([]deck.Card(nil), p.Hands[0].Hand.Cards...)
		}
	}
	return dealerInitial, initial, nil
}

func (t *Table) deal() (deck.Card, error) {
	card, ok := t.shoe.Deal()
	if !ok {
		return deck.Card{}, fmt.Errorf("shoe exhausted after %d cards", t.shoe.Size())
	}
	return card, nil
}

// buildContext snapshots the visible cards: every active participant's
// cards plus the dealer's upcard. The hole card stays hidden.
func (t *Table) buildContext() *Context {
	ctx := &Context{}
	for _, p := range t.participants {
		if !p.Active() {
			continue
		}
		ctx.NumParticipants++
		for _, sh := range p.Hands {
			ctx.VisibleCards = append(ctx.VisibleCards, sh.Hand.Cards...)
		}
	}
	ctx.VisibleCards = append(ctx.VisibleCards, t.dealer.Upcard())
	return ctx
}

// offerInsurance runs the insurance side bet when the upcard is an Ace.
// The hole-card probability is computed against a fresh full reference
// shoe minus the visible cards, not the live shoe.
func (t *Table) offerInsurance(ctx *Context) {
	visible := ctx.VisibleCards
	remaining := t.shoe.Size() - len(visible)
	if remaining > 0 {
		ctx.HoleCardTenProb = float64(deck.CountTenValued(t.rules.Decks, visible)) / float64(remaining)
	}

	t.logger.Debug("dealer shows an ace, offering insurance", "p_ten", ctx.HoleCardTenProb)

	for _, p := range t.participants {
		if !p.Active() {
			continue
		}
		if p.Provider.DecideInsurance(ctx) {
			if p.PlaceInsurance() {
				t.logger.Debug("insurance placed", "name", p.Name, "amount", p.InsuranceBet)
			} else {
				t.logger.Debug("insurance declined, insufficient chips", "name", p.Name)
			}
		}
	}

	ctx.HoleCardTenProb = 0
}

// resolveBlackjacks settles insurance and naturals. It returns true when
// the dealer has blackjack, which ends the round immediately: every
// insurance bet pays double, participant naturals push, and every other
// first hand loses. Without a dealer blackjack, participant naturals are
// resolved as Blackjack and the round continues for everyone else.
func (t *Table) resolveBlackjacks() bool {
	dealerBlackjack := t.dealer.Hand.IsBlackjack(t.rules.Target)

	if dealerBlackjack {
		t.logger.Debug("dealer has blackjack", "hand", t.dealer.Hand.String())
		for _, p := range t.participants {
			if !p.Active() {
				continue
			}
			if p.InsuranceBet > 0 {
				p.Chips += p.InsuranceBet * 2
				t.logger.Debug("insurance pays", "name", p.Name, "credit", p.InsuranceBet*2)
			}
			if p.Hands[0].Hand.IsBlackjack(t.rules.Target) {
				p.Hands[0].Outcome = OutcomePush
			} else {
				p.Hands[0].Outcome = OutcomeLoss
			}
		}
		return true
	}

	// Insurance bets were debited when placed; without a dealer
	// blackjack they are simply forfeited.
	for _, p := range t.participants {
		if p.Active() && p.Hands[0].Hand.IsBlackjack(t.rules.Target) {
			p.Hands[0].Outcome = OutcomeBlackjack
			t.logger.Debug("blackjack", "name", p.Name, "hand", p.Hands[0].Hand.String())
		}
	}
	return false
}

// playParticipant runs the turn loop over the participant's hands. The
// hand list can grow by one during the loop if the participant splits.
func (t *Table) playParticipant(p *Participant, ctx *Context) error {
	ctx.NumHands = len(p.Hands)
	defer func() { ctx.NumHands = 0 }()

	for idx := 0; idx < len(p.Hands); idx++ {
		if err := t.playHand(p, idx, ctx); err != nil {
			return err
		}
	}
	return nil
}

// playHand runs the decision loop for one hand until it stands, busts,
// surrenders or doubles.
func (t *Table) playHand(p *Participant, idx int, ctx *Context) error {
	sh := p.Hands[idx]
	if sh.Outcome != OutcomeNone || sh.frozen {
		return nil
	}

	for {
		legal := legalDecisions(p, sh, t.rules)
		if len(legal) == 0 {
			sh.Outcome = OutcomeBust
			return nil
		}

		firstAction := len(sh.Hand.Cards) == 2
		decision := p.Provider.Decide(&sh.Hand, t.dealer.Upcard(), ctx)

		if !decisionLegal(legal, decision) {
			substitute := Stand
			if decision == DoubleDown && firstAction {
				// An unaffordable double-down downgrades to a hit
				// rather than ending the hand.
				substitute = Hit
			}
			t.logger.Debug("illegal decision substituted",
				"name", p.Name, "decision", decision, "substitute", substitute)
			decision = substitute
		}

		t.logger.Debug("decision", "name", p.Name, "hand", idx+1, "decision", decision,
			"value", sh.Hand.Value())

		switch decision {
		case Surrender:
			p.Chips += sh.Bet / 2
			sh.Outcome = OutcomeSurrender
			return nil

		case Split:
			aces := sh.Hand.Cards[0].IsAce()
			if err := t.split(p, idx, ctx); err != nil {
				return err
			}
			if aces {
				// Split aces take exactly one forced card each and
				// stand; neither hand can act again.
				sh.frozen = true
				p.Hands[len(p.Hands)-1].frozen = true
				return nil
			}
			continue

		case DoubleDown:
			p.Chips -= sh.Bet
			sh.Bet *= 2
			if err := t.hit(sh, ctx); err != nil {
				return err
			}
			if sh.Hand.IsBust(t.rules.Target) {
				sh.Outcome = OutcomeBust
			}
			return nil

		case Hit:
			if err := t.hit(sh, ctx); err != nil {
				return err
			}
			if sh.Hand.IsBust(t.rules.Target) {
				sh.Outcome = OutcomeBust
				return nil
			}

		case Stand:
			return nil
		}
	}
}

// split divides the hand at idx into two two-card hands and refreshes the
// context's hand count and visible cards.
func (t *Table) split(p *Participant, idx int, ctx *Context) error {
	if err := p.SplitHand(idx); err != nil {
		return err
	}

	for _, sh := range []*SeatHand{p.Hands[idx], p.Hands[len(p.Hands)-1]} {
		card, err := t.deal()
		if err != nil {
			return err
		}
		sh.Hand.Add(card)
		ctx.VisibleCards = append(ctx.VisibleCards, card)
	}

	ctx.NumHands = len(p.Hands)
	t.logger.Debug("split", "name", p.Name,
		"hand1", p.Hands[idx].Hand.String(), "hand2", p.Hands[len(p.Hands)-1].Hand.String())
	return nil
}

func (t *Table) hit(sh *SeatHand, ctx *Context) error {
	card, err := t.deal()
	if err != nil {
		return err
	}
	sh.Hand.Add(card)
	ctx.VisibleCards = append(ctx.VisibleCards, card)
	return nil
}

// anyUnresolved reports whether any hand still needs the dealer's total
func (t *Table) anyUnresolved() bool {
	for _, p := range t.participants {
		for _, sh := range p.Hands {
			if sh.Outcome == OutcomeNone {
				return true
			}
		}
	}
	return false
}

// dealerTurn plays the dealer's fixed rule: hit below the stand value,
// stand otherwise. The dealer never doubles, splits or surrenders.
func (t *Table) dealerTurn() error {
	for t.dealer.Hand.Value() < t.rules.DealerStand {
		card, err := t.deal()
		if err != nil {
			return err
		}
		t.dealer.Hand.Add(card)
		t.logger.Debug("dealer hits", "hand", t.dealer.Hand.String(), "value", t.dealer.Hand.Value())
	}

	if t.dealer.Hand.IsBust(t.rules.Target) {
		t.logger.Debug("dealer busts", "value", t.dealer.Hand.Value())
	} else {
		t.logger.Debug("dealer stands", "value", t.dealer.Hand.Value())
	}
	return nil
}

// determineOutcomes fills in every outcome not yet assigned. Busted hands
// resolve as Bust regardless of the dealer's result.
func (t *Table) determineOutcomes() {
	dealerValue := t.dealer.Hand.Value()
	dealerBusted := dealerValue > t.rules.Target

	for _, p := range t.participants {
		for _, sh := range p.Hands {
			if sh.Outcome != OutcomeNone {
				continue
			}
			value := sh.Hand.Value()
			switch {
			case value > t.rules.Target:
				sh.Outcome = OutcomeBust
			case dealerBusted || value > dealerValue:
				sh.Outcome = OutcomeWin
			case value < dealerValue:
				sh.Outcome = OutcomeLoss
			default:
				sh.Outcome = OutcomePush
			}
		}
	}
}

// settle credits each hand's gross return. Stakes were debited when bets
// were placed, so losses and busts credit nothing.
func (t *Table) settle() {
	for _, p := range t.participants {
		for i, sh := range p.Hands {
			credit := grossCredit(sh.Outcome, sh.Bet, sh.Hand.FromSplit, t.rules)
			p.Chips += credit
			t.logger.Debug("settled", "name", p.Name, "hand", i+1,
				"outcome", sh.Outcome, "bet", sh.Bet, "credit", credit, "chips", p.Chips)
		}
	}
}

// buildRecord assembles the immutable round record for analytics
func (t *Table) buildRecord(chipsBefore []int, dealerInitial []deck.Card, initialHands map[*Participant][]deck.Card) *RoundRecord {
	rec := &RoundRecord{Round: t.round}

	rec.Dealer = DealerSummary{
		InitialHand: cardStrings(dealerInitial),
		FinalHand:   t.dealer.Hand.Strings(),
		FinalValue:  t.dealer.Hand.Value(),
		IsBlackjack: t.dealer.Hand.IsBlackjack(t.rules.Target),
		IsBusted:    t.dealer.Hand.IsBust(t.rules.Target),
	}

	for i, p := range t.participants {
		ps := ParticipantSummary{
			Name:        p.Name,
			Seat:        p.Seat,
			ChipsBefore: chipsBefore[i],
			ChipsAfter:  p.Chips,
		}
		for j, sh := range p.Hands {
			var initial []deck.Card
			if j == 0 {
				initial = initialHands[p]
			} else if len(sh.Hand.Cards) >= 2 {
				// A split hand's opening state is its retained card
				// plus the forced card.
				initial = sh.Hand.Cards[:2]
			}
			ps.Hands = append(ps.Hands, HandSummary{
				InitialHand: cardStrings(initial),
				FinalHand:   sh.Hand.Strings(),
				FinalValue:  sh.Hand.Value(),
				Bet:         sh.Bet,
				Outcome:     sh.Outcome.String(),
				Payout:      netPayout(sh.Outcome, sh.Bet, sh.Hand.FromSplit, t.rules),
				IsBlackjack: sh.Hand.IsBlackjack(t.rules.Target),
				IsBusted:    sh.Hand.IsBust(t.rules.Target),
			})
		}
		rec.Participants = append(rec.Participants, ps)
	}

	return rec
}

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// anyActive reports whether at least one participant placed a bet
func (t *Table) anyActive() bool {
	for _, p := range t.participants {
		if p.Active() {
			return true
		}
	}
	return false
}
