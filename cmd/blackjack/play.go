package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cardsim/blackjack/internal/display"
	"github.com/cardsim/blackjack/internal/game"
	"github.com/cardsim/blackjack/internal/randutil"
	"github.com/cardsim/blackjack/internal/strategy"
)

type PlayCmd struct {
	Name    string `default:"you" help:"Your display name"`
	Chips   int    `default:"1000" help:"Starting chips"`
	Bots    int    `default:"0" help:"Basic-strategy bots seated alongside you"`
	Decks   int    `default:"2" help:"Decks in the shoe"`
	Seed    int64  `default:"0" help:"RNG seed (0 for random)"`
	Verbose bool   `help:"Verbose logging"`
}

func (c *PlayCmd) Run() error {
	logger := newLogger(c.Verbose)

	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}

	rules := game.DefaultRules()
	rules.Decks = c.Decks

	human := strategy.NewHuman(os.Stdin, os.Stdout)
	participants := []*game.Participant{
		game.NewParticipant(c.Name, 1, c.Chips, human),
	}
	for i := 0; i < c.Bots; i++ {
		bot := strategy.NewBasic(randutil.New(randutil.Derive(c.Seed, -(i + 1))))
		participants = append(participants,
			game.NewParticipant(fmt.Sprintf("bot%d", i+1), i+2, c.Chips, bot))
	}

	table, err := game.NewTable(randutil.New(c.Seed), rules, participants, logger)
	if err != nil {
		return err
	}

	renderer := display.NewRenderer()
	you := participants[0]

	for {
		rec, err := table.PlayRound()
		if err != nil {
			return err
		}

		printRound(renderer, rec)

		if !canBet(you, rules) {
			fmt.Println(renderer.WarnLine("You are out of chips. Thanks for playing!"))
			return nil
		}
		if !human.Confirm("Play another round?", true) {
			fmt.Printf("You leave the table with %d chips.\n", you.Chips)
			return nil
		}
	}
}

// printRound shows the completed round: the dealer's final hand and every
// seat's hands, outcomes and chip movement.
func printRound(r *display.Renderer, rec *game.RoundRecord) {
	fmt.Printf("\n%s\n", r.TitleLine(fmt.Sprintf("Round %d", rec.Round)))

	dealer := fmt.Sprintf("Dealer: %s (%d)",
		strings.Join(rec.Dealer.FinalHand, " "), rec.Dealer.FinalValue)
	switch {
	case rec.Dealer.IsBlackjack:
		dealer += "  blackjack"
	case rec.Dealer.IsBusted:
		dealer += "  bust"
	}
	fmt.Println(dealer)

	for _, p := range rec.Participants {
		if len(p.Hands) == 0 {
			fmt.Printf("%-8s sat out\n", p.Name)
			continue
		}
		for _, h := range p.Hands {
			fmt.Printf("%-8s %s (%d)  %s  bet %d  %+d\n",
				p.Name, strings.Join(h.FinalHand, " "), h.FinalValue,
				h.Outcome, h.Bet, h.Payout)
		}
		fmt.Println(r.ChipsLine(fmt.Sprintf("%s chips: %d", p.Name, p.ChipsAfter)))
	}
}

func canBet(p *game.Participant, rules game.Rules) bool {
	if p.Chips < rules.MinActiveChips {
		return false
	}
	for _, b := range rules.BetSizes {
		if b > 0 && b <= p.Chips {
			return true
		}
	}
	return false
}
