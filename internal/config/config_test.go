package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.hcl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(cfg.Players) != 2 {
		t.Fatalf("default players = %d, want 2", len(cfg.Players))
	}
	if cfg.Players[0].Strategy != StrategyBasic {
		t.Errorf("default strategy = %s", cfg.Players[0].Strategy)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFullConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
rules {
  decks            = 6
  dealer_stand     = 17
  bet_sizes        = [5, 25, 100]
  min_active_chips = 5
}

player "carol" {
  strategy = "basic"
  chips    = 2000
}

player "dave" {
  strategy = "naive"
}

player "remote-bot" {
  strategy = "remote"
  url      = "ws://localhost:9000/play"
}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}

	rules := cfg.GameRules()
	if rules.Decks != 6 {
		t.Errorf("decks = %d, want 6", rules.Decks)
	}
	if rules.MinBet != 5 || rules.MaxBet != 100 {
		t.Errorf("bet range = %d..%d, want 5..100", rules.MinBet, rules.MaxBet)
	}
	if rules.BlackjackPayout != 1.5 {
		t.Errorf("unset payout should keep default, got %v", rules.BlackjackPayout)
	}

	if len(cfg.Players) != 3 {
		t.Fatalf("players = %d, want 3", len(cfg.Players))
	}
	if cfg.Players[0].Chips != 2000 {
		t.Errorf("carol chips = %d", cfg.Players[0].Chips)
	}
	if cfg.Players[1].Chips != 1000 {
		t.Errorf("dave should get default chips, got %d", cfg.Players[1].Chips)
	}
	if cfg.Players[2].URL != "ws://localhost:9000/play" {
		t.Errorf("remote url = %s", cfg.Players[2].URL)
	}
}

func TestLoadRejectsBadSyntax(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `player "x" { strategy = `)
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*File)
		wantErr string
	}{
		{
			name:    "no players",
			mutate:  func(f *File) { f.Players = nil },
			wantErr: "at least one player",
		},
		{
			name:    "unknown strategy",
			mutate:  func(f *File) { f.Players[0].Strategy = "psychic" },
			wantErr: "invalid strategy",
		},
		{
			name:    "duplicate names",
			mutate:  func(f *File) { f.Players[1].Name = f.Players[0].Name },
			wantErr: "duplicate name",
		},
		{
			name:    "remote without url",
			mutate:  func(f *File) { f.Players[0].Strategy = StrategyRemote },
			wantErr: "requires a url",
		},
		{
			name: "url on local strategy",
			mutate: func(f *File) {
				f.Players[0].URL = "ws://localhost:9000"
			},
			wantErr: "only valid with the remote strategy",
		},
		{
			name:    "non-positive chips",
			mutate:  func(f *File) { f.Players[0].Chips = -5 },
			wantErr: "chips must be positive",
		},
		{
			name: "two humans",
			mutate: func(f *File) {
				f.Players[0].Strategy = StrategyHuman
				f.Players[1].Strategy = StrategyHuman
			},
			wantErr: "at most one human",
		},
		{
			name:    "bad rules",
			mutate:  func(f *File) { f.Rules = &RulesConfig{Decks: -1} },
			wantErr: "rules:",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}
