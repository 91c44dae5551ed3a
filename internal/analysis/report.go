package analysis

import (
	"fmt"
	"io"
)

// Summary is the JSON shape of a simulation report
type Summary struct {
	Rounds              int             `json:"rounds"`
	DealerBlackjackRate float64         `json:"dealer_blackjack_rate"`
	DealerBustRate      float64         `json:"dealer_bust_rate"`
	Players             []PlayerSummary `json:"players"`
}

// PlayerSummary is one player's row in the report
type PlayerSummary struct {
	Name       string  `json:"name"`
	Seat       int     `json:"seat"`
	Rounds     int     `json:"rounds"`
	Hands      int     `json:"hands"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	Pushes     int     `json:"pushes"`
	Blackjacks int     `json:"blackjacks"`
	Busts      int     `json:"busts"`
	Surrenders int     `json:"surrenders"`
	Wagered    int     `json:"wagered"`
	Net        int     `json:"net"`
	FinalChips int     `json:"final_chips"`
	MeanNet    float64 `json:"mean_net"`
	MedianNet  float64 `json:"median_net"`
	StdDev     float64 `json:"std_dev"`
	CILow      float64 `json:"ci95_low"`
	CIHigh     float64 `json:"ci95_high"`
}

// Summarize converts the aggregate into its serializable form
func (s *Stats) Summarize() Summary {
	out := Summary{
		Rounds:              s.Rounds,
		DealerBlackjackRate: s.DealerBlackjackRate(),
		DealerBustRate:      s.DealerBustRate(),
	}
	for _, p := range s.Players() {
		low, high := p.ConfidenceInterval95()
		out.Players = append(out.Players, PlayerSummary{
			Name:       p.Name,
			Seat:       p.Seat,
			Rounds:     p.Rounds,
			Hands:      p.Hands,
			Wins:       p.Wins,
			Losses:     p.Losses,
			Pushes:     p.Pushes,
			Blackjacks: p.Blackjacks,
			Busts:      p.Busts,
			Surrenders: p.Surrenders,
			Wagered:    p.Wagered,
			Net:        p.Net,
			FinalChips: p.FinalChips,
			MeanNet:    p.Mean(),
			MedianNet:  p.Median(),
			StdDev:     p.StdDev(),
			CILow:      low,
			CIHigh:     high,
		})
	}
	return out
}

// WriteReport prints a human-readable report
func (s *Stats) WriteReport(w io.Writer) {
	fmt.Fprintf(w, "rounds played:        %d\n", s.Rounds)
	fmt.Fprintf(w, "dealer blackjack:     %.2f%%\n", s.DealerBlackjackRate()*100)
	fmt.Fprintf(w, "dealer bust:          %.2f%%\n", s.DealerBustRate()*100)

	for _, p := range s.Players() {
		low, high := p.ConfidenceInterval95()
		fmt.Fprintf(w, "\n%s (seat %d)\n", p.Name, p.Seat)
		fmt.Fprintf(w, "  rounds/hands:       %d/%d\n", p.Rounds, p.Hands)
		fmt.Fprintf(w, "  W/L/P:              %d/%d/%d\n", p.Wins, p.Losses, p.Pushes)
		fmt.Fprintf(w, "  blackjacks:         %d\n", p.Blackjacks)
		fmt.Fprintf(w, "  busts/surrenders:   %d/%d\n", p.Busts, p.Surrenders)
		fmt.Fprintf(w, "  wagered:            %d\n", p.Wagered)
		fmt.Fprintf(w, "  net:                %+d (%.2f%% of wagered)\n", p.Net, p.ReturnPerWager()*100)
		fmt.Fprintf(w, "  net/round:          %.3f ± %.3f (95%% CI %.3f..%.3f)\n",
			p.Mean(), 1.96*p.StdError(), low, high)
		fmt.Fprintf(w, "  final chips:        %d\n", p.FinalChips)
	}
}
