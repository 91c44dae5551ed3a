package strategy

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardsim/blackjack/internal/game"
)

// fakeConn scripts replies for the remote provider and records requests
type fakeConn struct {
	mu      sync.Mutex
	wrote   []remoteRequest
	replies chan remoteReply
}

func newFakeConn() *fakeConn {
	return &fakeConn{replies: make(chan remoteReply, 8)}
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.wrote = append(c.wrote, v.(remoteRequest))
	return nil
}

func (c *fakeConn) ReadJSON(v interface{}) error {
	reply, ok := <-c.replies
	if !ok {
		return io.EOF
	}
	*(v.(*remoteReply)) = reply
	return nil
}

func (c *fakeConn) Close() error {
	close(c.replies)
	return nil
}

func (c *fakeConn) requests() []remoteRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]remoteRequest(nil), c.wrote...)
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestRemoteChooseBet(t *testing.T) {
	t.Parallel()

	conn := newFakeConn()
	conn.replies <- remoteReply{Bet: 50}
	r := NewRemote(conn, time.Second, quartz.NewReal(), testLogger())

	if got := r.ChooseBet([]int{10, 20, 50}); got != 50 {
		t.Errorf("ChooseBet = %d, want 50", got)
	}

	reqs := conn.requests()
	if len(reqs) != 1 || reqs[0].Type != "choose_bet" {
		t.Fatalf("requests = %+v, want one choose_bet", reqs)
	}
	if len(reqs[0].AvailableBets) != 3 {
		t.Errorf("available bets not forwarded: %+v", reqs[0])
	}
}

func TestRemoteChooseBetRejectsUnoffered(t *testing.T) {
	t.Parallel()

	conn := newFakeConn()
	conn.replies <- remoteReply{Bet: 999}
	r := NewRemote(conn, time.Second, quartz.NewReal(), testLogger())

	if got := r.ChooseBet([]int{10, 20}); got != 10 {
		t.Errorf("ChooseBet = %d, want the minimum 10", got)
	}
}

func TestRemoteDecide(t *testing.T) {
	t.Parallel()

	conn := newFakeConn()
	conn.replies <- remoteReply{Decision: "double-down"}
	r := NewRemote(conn, time.Second, quartz.NewReal(), testLogger())

	got := r.Decide(basicHand("6h5h"), upcard("9h"), &game.Context{NumParticipants: 2})
	if got != game.DoubleDown {
		t.Errorf("Decide = %s, want DoubleDown", got)
	}

	reqs := conn.requests()
	if len(reqs) != 1 || reqs[0].Type != "decide" {
		t.Fatalf("requests = %+v, want one decide", reqs)
	}
	if reqs[0].HandValue != 11 || reqs[0].Upcard != "9♥" {
		t.Errorf("request not populated: %+v", reqs[0])
	}
}

func TestRemoteDecideMalformedReplyStands(t *testing.T) {
	t.Parallel()

	conn := newFakeConn()
	conn.replies <- remoteReply{Decision: "raise"}
	r := NewRemote(conn, time.Second, quartz.NewReal(), testLogger())

	if got := r.Decide(basicHand("6h5h"), upcard("9h"), nil); got != game.Stand {
		t.Errorf("Decide = %s, want Stand on an unknown decision", got)
	}
}

func TestRemoteDiscardsStaleReply(t *testing.T) {
	t.Parallel()

	conn := newFakeConn()
	r := NewRemote(conn, time.Second, quartz.NewReal(), testLogger())

	// A reply lands while no query is waiting, as after a timed-out query.
	conn.replies <- remoteReply{Decision: "hit"}
	time.Sleep(10 * time.Millisecond)

	// The fresh reply arrives once the next query is in flight.
	go func() {
		time.Sleep(20 * time.Millisecond)
		conn.replies <- remoteReply{Bet: 20}
	}()

	if got := r.ChooseBet([]int{10, 20}); got != 20 {
		t.Errorf("ChooseBet = %d, want the fresh reply's 20", got)
	}
}

func TestRemoteInsurance(t *testing.T) {
	t.Parallel()

	conn := newFakeConn()
	conn.replies <- remoteReply{Insurance: true}
	r := NewRemote(conn, time.Second, quartz.NewReal(), testLogger())

	if !r.DecideInsurance(&game.Context{HoleCardTenProb: 0.31}) {
		t.Error("expected the reply's insurance choice")
	}
}

func TestRemoteClosedConnectionFallsBack(t *testing.T) {
	t.Parallel()

	conn := newFakeConn()
	r := NewRemote(conn, time.Second, quartz.NewReal(), testLogger())
	_ = conn.Close()

	if got := r.ChooseBet([]int{10, 20}); got != 10 {
		t.Errorf("ChooseBet = %d, want the minimum after disconnect", got)
	}
	if got := r.Decide(basicHand("Th6h"), upcard("9h"), nil); got != game.Stand {
		t.Errorf("Decide = %s, want Stand after disconnect", got)
	}
	if r.DecideInsurance(nil) {
		t.Error("expected insurance declined after disconnect")
	}
}

func TestRemoteTimeoutFallsBack(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mock := quartz.NewMock(t)

	conn := newFakeConn() // never replies
	r := NewRemote(conn, DefaultRemoteTimeout, mock, testLogger())

	done := make(chan game.Decision, 1)
	go func() {
		done <- r.Decide(basicHand("Th6h"), upcard("9h"), nil)
	}()

	// Let the deadline timer register, then fire it.
	time.Sleep(10 * time.Millisecond)
	mock.Advance(DefaultRemoteTimeout).MustWait(ctx)

	select {
	case got := <-done:
		if got != game.Stand {
			t.Errorf("Decide = %s, want Stand on timeout", got)
		}
	case <-ctx.Done():
		t.Fatal("Decide did not return after the deadline fired")
	}
}
