package game

// RoundRecord is the immutable summary of one completed round, handed to
// the analytics and persistence collaborators. The engine does not retain
// it. The sequence of records is appendable and JSON-serializable.
type RoundRecord struct {
	Round        int                  `json:"round"`
	Dealer       DealerSummary        `json:"dealer"`
	Participants []ParticipantSummary `json:"participants"`
}

// DealerSummary describes the dealer's hand over the round
type DealerSummary struct {
	InitialHand []string `json:"initial_hand"`
	FinalHand   []string `json:"final_hand"`
	FinalValue  int      `json:"final_value"`
	IsBlackjack bool     `json:"is_blackjack"`
	IsBusted    bool     `json:"is_busted"`
}

// ParticipantSummary describes one seat's round
type ParticipantSummary struct {
	Name        string        `json:"name"`
	Seat        int           `json:"seat"`
	ChipsBefore int           `json:"chips_before"`
	ChipsAfter  int           `json:"chips_after"`
	Hands       []HandSummary `json:"hands"`
}

// HandSummary describes a single hand and its settlement. Payout is the
// hand's net chip delta: positive for wins, zero for a push, negative for
// losses and surrenders.
type HandSummary struct {
	InitialHand []string `json:"initial_hand"`
	FinalHand   []string `json:"final_hand"`
	FinalValue  int      `json:"final_value"`
	Bet         int      `json:"bet"`
	Outcome     string   `json:"outcome"`
	Payout      int      `json:"payout"`
	IsBlackjack bool     `json:"is_blackjack"`
	IsBusted    bool     `json:"is_busted"`
}
