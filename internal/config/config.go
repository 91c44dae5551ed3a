// Package config loads table and player configuration from HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/cardsim/blackjack/internal/game"
)

// File represents a complete simulation configuration
type File struct {
	Rules   *RulesConfig   `hcl:"rules,block"`
	Players []PlayerConfig `hcl:"player,block"`
}

// RulesConfig overrides individual table rules. Zero values fall back to
// the defaults.
type RulesConfig struct {
	Decks                int     `hcl:"decks,optional"`
	DealerStand          int     `hcl:"dealer_stand,optional"`
	BlackjackPayout      float64 `hcl:"blackjack_payout,optional"`
	SplitBlackjackPayout float64 `hcl:"split_blackjack_payout,optional"`
	BetSizes             []int   `hcl:"bet_sizes,optional"`
	MinActiveChips       int     `hcl:"min_active_chips,optional"`
}

// PlayerConfig defines one seat
type PlayerConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy"`
	Chips    int    `hcl:"chips,optional"`
	URL      string `hcl:"url,optional"` // remote strategy server, ws:// or http://
}

// Strategy names accepted in player blocks
const (
	StrategyBasic  = "basic"
	StrategyNaive  = "naive"
	StrategyHuman  = "human"
	StrategyRemote = "remote"
)

const defaultChips = 1000

// Default returns the configuration used when no file is given: two basic
// strategy players on the standard rules.
func Default() *File {
	return &File{
		Players: []PlayerConfig{
			{Name: "player1", Strategy: StrategyBasic, Chips: defaultChips},
			{Name: "player2", Strategy: StrategyBasic, Chips: defaultChips},
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// default configuration.
func Load(filename string) (*File, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config File
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	for i := range config.Players {
		if config.Players[i].Chips == 0 {
			config.Players[i].Chips = defaultChips
		}
	}

	return &config, nil
}

// GameRules converts the rules block into the engine's rule set, filling
// unset fields from the defaults.
func (f *File) GameRules() game.Rules {
	rules := game.DefaultRules()
	if f.Rules == nil {
		return rules
	}
	if f.Rules.Decks != 0 {
		rules.Decks = f.Rules.Decks
	}
	if f.Rules.DealerStand != 0 {
		rules.DealerStand = f.Rules.DealerStand
	}
	if f.Rules.BlackjackPayout != 0 {
		rules.BlackjackPayout = f.Rules.BlackjackPayout
	}
	if f.Rules.SplitBlackjackPayout != 0 {
		rules.SplitBlackjackPayout = f.Rules.SplitBlackjackPayout
	}
	if len(f.Rules.BetSizes) > 0 {
		rules.BetSizes = f.Rules.BetSizes
		rules.MinBet = rules.BetSizes[0]
		rules.MaxBet = rules.BetSizes[0]
		for _, b := range rules.BetSizes {
			if b < rules.MinBet {
				rules.MinBet = b
			}
			if b > rules.MaxBet {
				rules.MaxBet = b
			}
		}
	}
	if f.Rules.MinActiveChips != 0 {
		rules.MinActiveChips = f.Rules.MinActiveChips
	}
	return rules
}

// Validate checks the configuration for errors the engine cannot recover
// from.
func (f *File) Validate() error {
	if err := f.GameRules().Validate(); err != nil {
		return fmt.Errorf("rules: %w", err)
	}

	if len(f.Players) == 0 {
		return fmt.Errorf("at least one player must be configured")
	}

	validStrategies := map[string]bool{
		StrategyBasic:  true,
		StrategyNaive:  true,
		StrategyHuman:  true,
		StrategyRemote: true,
	}

	seen := make(map[string]bool)
	humans := 0
	for _, p := range f.Players {
		if p.Name == "" {
			return fmt.Errorf("player name is required")
		}
		if seen[p.Name] {
			return fmt.Errorf("player %s: duplicate name", p.Name)
		}
		seen[p.Name] = true

		if !validStrategies[p.Strategy] {
			return fmt.Errorf("player %s: invalid strategy %s", p.Name, p.Strategy)
		}
		if p.Strategy == StrategyRemote && p.URL == "" {
			return fmt.Errorf("player %s: remote strategy requires a url", p.Name)
		}
		if p.Strategy != StrategyRemote && p.URL != "" {
			return fmt.Errorf("player %s: url is only valid with the remote strategy", p.Name)
		}
		if p.Strategy == StrategyHuman {
			humans++
		}
		if p.Chips <= 0 {
			return fmt.Errorf("player %s: chips must be positive", p.Name)
		}
	}

	if humans > 1 {
		return fmt.Errorf("at most one human player can share the terminal")
	}

	return nil
}
