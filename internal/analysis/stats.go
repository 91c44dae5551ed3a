// Package analysis aggregates round records into per-player and dealer
// statistics for simulation reports.
package analysis

import (
	"math"
	"sort"

	"github.com/cardsim/blackjack/internal/game"
)

// PlayerStats tracks one seat's results across a simulation
type PlayerStats struct {
	Name   string
	Seat   int
	Rounds int // rounds the player was dealt into
	Hands  int // hands played, counting splits

	Wins       int
	Losses     int
	Pushes     int
	Blackjacks int
	Busts      int
	Surrenders int

	Wagered    int // total chips staked, counting doubles and splits
	Net        int // chip delta over the simulation, insurance included
	FinalChips int

	sumNet  float64 // per-round net sums for variance
	sumNet2 float64
	values  []float64
}

// Stats aggregates a full simulation run
type Stats struct {
	Rounds           int
	DealerBlackjacks int
	DealerBusts      int

	players map[string]*PlayerStats
	order   []string
}

// New creates an empty aggregate
func New() *Stats {
	return &Stats{players: make(map[string]*PlayerStats)}
}

// Add incorporates one round record
func (s *Stats) Add(rec *game.RoundRecord) {
	s.Rounds++

	if rec.Dealer.IsBlackjack {
		s.DealerBlackjacks++
	}
	if rec.Dealer.IsBusted {
		s.DealerBusts++
	}

	for _, p := range rec.Participants {
		ps := s.player(p.Name, p.Seat)
		ps.FinalChips = p.ChipsAfter

		if len(p.Hands) == 0 {
			continue
		}

		net := float64(p.ChipsAfter - p.ChipsBefore)
		ps.Rounds++
		ps.Net += p.ChipsAfter - p.ChipsBefore
		ps.sumNet += net
		ps.sumNet2 += net * net
		ps.values = append(ps.values, net)

		for _, h := range p.Hands {
			ps.Hands++
			ps.Wagered += h.Bet
			switch h.Outcome {
			case game.OutcomeWin.String():
				ps.Wins++
			case game.OutcomeLoss.String():
				ps.Losses++
			case game.OutcomePush.String():
				ps.Pushes++
			case game.OutcomeBlackjack.String():
				ps.Blackjacks++
			case game.OutcomeBust.String():
				ps.Busts++
			case game.OutcomeSurrender.String():
				ps.Surrenders++
			}
		}
	}
}

func (s *Stats) player(name string, seat int) *PlayerStats {
	if ps, ok := s.players[name]; ok {
		return ps
	}
	ps := &PlayerStats{Name: name, Seat: seat}
	s.players[name] = ps
	s.order = append(s.order, name)
	return ps
}

// Players returns per-player stats in seat order
func (s *Stats) Players() []*PlayerStats {
	out := make([]*PlayerStats, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.players[name])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Seat < out[j].Seat })
	return out
}

// Player returns one player's stats, or nil if unseen
func (s *Stats) Player(name string) *PlayerStats {
	return s.players[name]
}

// DealerBlackjackRate returns the fraction of rounds with a dealer natural
func (s *Stats) DealerBlackjackRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.DealerBlackjacks) / float64(s.Rounds)
}

// DealerBustRate returns the fraction of rounds where the dealer busted
func (s *Stats) DealerBustRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.DealerBusts) / float64(s.Rounds)
}

// Mean returns the mean per-round net in chips
func (p *PlayerStats) Mean() float64 {
	if p.Rounds == 0 {
		return 0
	}
	return p.sumNet / float64(p.Rounds)
}

// Variance returns the sample variance of per-round nets
func (p *PlayerStats) Variance() float64 {
	if p.Rounds < 2 {
		return 0
	}
	mean := p.Mean()
	return (p.sumNet2 - float64(p.Rounds)*mean*mean) / float64(p.Rounds-1)
}

// StdDev returns the sample standard deviation of per-round nets
func (p *PlayerStats) StdDev() float64 {
	return math.Sqrt(p.Variance())
}

// StdError returns the standard error of the mean
func (p *PlayerStats) StdError() float64 {
	if p.Rounds == 0 {
		return 0
	}
	return p.StdDev() / math.Sqrt(float64(p.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (p *PlayerStats) ConfidenceInterval95() (float64, float64) {
	mean := p.Mean()
	margin := 1.96 * p.StdError()
	return mean - margin, mean + margin
}

// Median returns the median per-round net
func (p *PlayerStats) Median() float64 {
	if len(p.values) == 0 {
		return 0
	}
	sorted := make([]float64, len(p.values))
	copy(sorted, p.values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the per-round net at the given percentile (0.0 to 1.0),
// linearly interpolated.
func (p *PlayerStats) Percentile(q float64) float64 {
	if len(p.values) == 0 {
		return 0
	}
	sorted := make([]float64, len(p.values))
	copy(sorted, p.values)
	sort.Float64s(sorted)

	index := q * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// WinRate returns the fraction of hands won, naturals included
func (p *PlayerStats) WinRate() float64 {
	if p.Hands == 0 {
		return 0
	}
	return float64(p.Wins+p.Blackjacks) / float64(p.Hands)
}

// ReturnPerWager returns net winnings per chip wagered
func (p *PlayerStats) ReturnPerWager() float64 {
	if p.Wagered == 0 {
		return 0
	}
	return float64(p.Net) / float64(p.Wagered)
}
