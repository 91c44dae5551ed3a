package strategy

import (
	"fmt"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/cardsim/blackjack/internal/deck"
	"github.com/cardsim/blackjack/internal/game"
)

// DefaultRemoteTimeout bounds how long a round waits on a remote reply
const DefaultRemoteTimeout = 10 * time.Second

// Transport is the connection subset the remote provider needs. It is
// satisfied by *websocket.Conn.
type Transport interface {
	WriteJSON(v interface{}) error
	ReadJSON(v interface{}) error
	Close() error
}

// remoteRequest is one query to the remote decision service
type remoteRequest struct {
	Type            string   `json:"type"` // "choose_bet", "decide" or "insurance"
	AvailableBets   []int    `json:"available_bets,omitempty"`
	Hand            []string `json:"hand,omitempty"`
	HandValue       int      `json:"hand_value,omitempty"`
	Upcard          string   `json:"upcard,omitempty"`
	VisibleCards    []string `json:"visible_cards,omitempty"`
	NumParticipants int      `json:"num_participants,omitempty"`
	NumHands        int      `json:"num_hands,omitempty"`
	HoleCardTenProb float64  `json:"hole_card_ten_prob,omitempty"`
}

// remoteReply is the service's answer. Only the field matching the request
// type is consulted.
type remoteReply struct {
	Bet       int    `json:"bet,omitempty"`
	Decision  string `json:"decision,omitempty"`
	Insurance bool   `json:"insurance,omitempty"`
}

// Remote proxies decisions to a service over a websocket, one JSON request
// and reply per query. Replies are awaited with a deadline; a timeout,
// transport failure or malformed reply falls back to the safe default
// (minimum bet, Stand, no insurance) so the engine never sees a failure.
type Remote struct {
	conn    Transport
	clock   quartz.Clock
	timeout time.Duration
	logger  *log.Logger

	replies chan remoteReply
	dead    chan struct{}
}

// NewRemote creates a remote provider on an established connection. The
// clock is injectable so tests can drive the timeout.
func NewRemote(conn Transport, timeout time.Duration, clock quartz.Clock, logger *log.Logger) *Remote {
	r := &Remote{
		conn:    conn,
		clock:   clock,
		timeout: timeout,
		logger:  logger.WithPrefix("remote"),
		replies: make(chan remoteReply, 1),
		dead:    make(chan struct{}),
	}
	go r.readReplies()
	return r
}

// Dial connects to a remote decision service and returns a provider bound
// to the connection. http/https URLs are rewritten to their websocket
// schemes.
func Dial(serverURL string, logger *log.Logger) (*Remote, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		u.Scheme = "ws"
	}

	logger.Info("connecting to decision service", "url", u.String())

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	return NewRemote(conn, DefaultRemoteTimeout, quartz.NewReal(), logger), nil
}

// Close shuts down the connection
func (r *Remote) Close() error {
	return r.conn.Close()
}

// readReplies pumps replies into the channel until the connection dies
func (r *Remote) readReplies() {
	defer close(r.dead)
	for {
		var reply remoteReply
		if err := r.conn.ReadJSON(&reply); err != nil {
			r.logger.Warn("connection lost", "err", err)
			return
		}
		select {
		case r.replies <- reply:
		default:
			// A reply with no waiting query is stale, drop it.
			r.logger.Debug("dropping unsolicited reply")
		}
	}
}

// roundTrip sends a request and waits for the next reply or the deadline
func (r *Remote) roundTrip(req remoteRequest) (remoteReply, error) {
	// A reply that arrived after a previous query's deadline would otherwise
	// be taken as the answer to this one.
	select {
	case <-r.replies:
		r.logger.Debug("discarding stale reply")
	default:
	}

	if err := r.conn.WriteJSON(req); err != nil {
		return remoteReply{}, fmt.Errorf("send %s: %w", req.Type, err)
	}

	timedOut := make(chan struct{})
	timer := r.clock.AfterFunc(r.timeout, func() {
		close(timedOut)
	})
	defer timer.Stop()

	select {
	case reply := <-r.replies:
		return reply, nil
	case <-r.dead:
		return remoteReply{}, fmt.Errorf("%s: connection closed", req.Type)
	case <-timedOut:
		return remoteReply{}, fmt.Errorf("%s: no reply within %s", req.Type, r.timeout)
	}
}

// ChooseBet asks the service for a bet; failures take the minimum offered
func (r *Remote) ChooseBet(available []int) int {
	if len(available) == 0 {
		return 0
	}

	reply, err := r.roundTrip(remoteRequest{
		Type:          "choose_bet",
		AvailableBets: available,
	})
	if err != nil {
		r.logger.Warn("falling back to minimum bet", "err", err)
		return available[0]
	}
	if !containsInt(available, reply.Bet) {
		r.logger.Warn("service chose an unoffered bet, falling back to minimum", "bet", reply.Bet)
		return available[0]
	}
	return reply.Bet
}

// Decide asks the service for the next action; failures stand
func (r *Remote) Decide(hand *game.Hand, upcard deck.Card, ctx *game.Context) game.Decision {
	req := remoteRequest{
		Type:      "decide",
		Hand:      hand.Strings(),
		HandValue: hand.Value(),
		Upcard:    upcard.String(),
	}
	if ctx != nil {
		req.VisibleCards = cardStrings(ctx.VisibleCards)
		req.NumParticipants = ctx.NumParticipants
		req.NumHands = ctx.NumHands
	}

	reply, err := r.roundTrip(req)
	if err != nil {
		r.logger.Warn("falling back to stand", "err", err)
		return game.Stand
	}

	decision, ok := parseDecision(reply.Decision)
	if !ok {
		r.logger.Warn("unknown decision from service, standing", "decision", reply.Decision)
		return game.Stand
	}
	return decision
}

// DecideInsurance asks the service about the side bet; failures decline
func (r *Remote) DecideInsurance(ctx *game.Context) bool {
	req := remoteRequest{Type: "insurance"}
	if ctx != nil {
		req.VisibleCards = cardStrings(ctx.VisibleCards)
		req.NumParticipants = ctx.NumParticipants
		req.HoleCardTenProb = ctx.HoleCardTenProb
	}

	reply, err := r.roundTrip(req)
	if err != nil {
		r.logger.Warn("declining insurance", "err", err)
		return false
	}
	return reply.Insurance
}

func parseDecision(s string) (game.Decision, bool) {
	switch s {
	case "hit":
		return game.Hit, true
	case "stand":
		return game.Stand, true
	case "double-down":
		return game.DoubleDown, true
	case "split":
		return game.Split, true
	case "surrender":
		return game.Surrender, true
	default:
		return game.Stand, false
	}
}

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
