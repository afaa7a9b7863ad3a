package game

import (
	"context"
	"errors"
	"sync"
	"testing"

	"slot_kiosk/internal/model"
	servModel "slot_kiosk/internal/service/game/model"
	"slot_kiosk/internal/session"
)

// scriptedRand returns the queued values in order, then zero
type scriptedRand struct {
	mu     sync.Mutex
	values []int
}

func (r *scriptedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v % n
}

type published struct {
	event   model.Event
	balance int64 // live balance observed at publish time
}

type recorder struct {
	mu     sync.Mutex
	state  *session.State
	events []published
}

func (r *recorder) Publish(ev model.Event) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, published{event: ev, balance: r.state.Balance()})
	return uint64(len(r.events))
}

func (r *recorder) kinds() []model.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.EventKind, len(r.events))
	for i, p := range r.events {
		out[i] = p.event.Kind
	}
	return out
}

var ladder = model.BetLadder{Min: 500, Step: 500, Max: 2500}

func newTestGame(t *testing.T, balance, bet int64, draws ...int) (*serv, *session.State, *recorder) {
	t.Helper()
	state := session.New(balance, bet)
	rec := &recorder{state: state}
	g := NewGameService(Deps{
		State:  state,
		Table:  servModel.Classic(),
		Ladder: ladder,
		Pub:    rec,
		Rand:   &scriptedRand{values: draws},
	}).(*serv)
	return g, state, rec
}

func TestAdjustBetCycles(t *testing.T) {
	ctx := context.Background()
	for start := ladder.Min; start <= ladder.Max; start += ladder.Step {
		g, state, _ := newTestGame(t, 0, start)
		for i := 0; i < ladder.Len(); i++ {
			g.AdjustBet(ctx)
		}
		if got := state.Bet(); got != start {
			t.Fatalf("after a full cycle from %d bet = %d", start, got)
		}
	}
}

func TestAdjustBetWrapsAndPublishes(t *testing.T) {
	g, _, rec := newTestGame(t, 0, 2500)
	if got := g.AdjustBet(context.Background()); got != 500 {
		t.Fatalf("bet after max = %d, want 500", got)
	}
	if got := g.MaxBet(context.Background()); got != 2500 {
		t.Fatalf("max bet = %d", got)
	}
	kinds := rec.kinds()
	if len(kinds) != 2 || kinds[0] != model.EventBetChanged || kinds[1] != model.EventBetChanged {
		t.Fatalf("events = %v", kinds)
	}
}

func TestSpinInsufficientFunds(t *testing.T) {
	g, state, rec := newTestGame(t, 2000, 2500)
	_, err := g.Spin(context.Background())
	if !errors.Is(err, model.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	if state.Balance() != 2000 {
		t.Fatalf("balance changed to %d", state.Balance())
	}
	if len(rec.kinds()) != 0 {
		t.Fatalf("events published on refused spin: %v", rec.kinds())
	}
}

func TestSpinNoWin(t *testing.T) {
	// raspberry, nodejs, python
	g, state, rec := newTestGame(t, 80000, 2500, 1, 2, 4)
	res, err := g.Spin(context.Background())
	if err != nil {
		t.Fatalf("spin: %v", err)
	}
	if res.Win || res.Payout != 0 {
		t.Fatalf("unexpected win: %+v", res)
	}
	if res.Message == "" {
		t.Fatalf("miss without message")
	}
	if state.Balance() != 77500 {
		t.Fatalf("balance = %d, want 77500", state.Balance())
	}
	if len(rec.events) != 1 || rec.events[0].event.Kind != model.EventSpin {
		t.Fatalf("events = %v, want only SPIN", rec.kinds())
	}
	if rec.events[0].balance != 77500 {
		t.Fatalf("SPIN observed balance %d before debit committed", rec.events[0].balance)
	}
}

func TestSpinWinCreditsBeforeWinEvent(t *testing.T) {
	// crab, python, nodejs: one crab pays 100 per 500 unit
	g, state, rec := newTestGame(t, 10000, 2500, 0, 4, 2)
	res, err := g.Spin(context.Background())
	if err != nil {
		t.Fatalf("spin: %v", err)
	}
	if !res.Win || res.Payout != 500 || res.Rule != "one crab" {
		t.Fatalf("result = %+v", res)
	}
	if state.Balance() != 10000-2500+500 {
		t.Fatalf("balance = %d", state.Balance())
	}
	if len(rec.events) != 2 {
		t.Fatalf("events = %v", rec.kinds())
	}
	spin, win := rec.events[0], rec.events[1]
	if spin.event.Kind != model.EventSpin || win.event.Kind != model.EventWin {
		t.Fatalf("order = %v", rec.kinds())
	}
	if spin.balance != 7500 {
		t.Fatalf("SPIN observed balance %d, want 7500", spin.balance)
	}
	if win.balance != 8000 || win.event.Payout != 500 {
		t.Fatalf("WIN observed balance %d payout %d", win.balance, win.event.Payout)
	}
	if win.event.Round != spin.event.Round {
		t.Fatalf("WIN round %d != SPIN round %d", win.event.Round, spin.event.Round)
	}
}

func TestSpinBalanceDeltaProperty(t *testing.T) {
	table := servModel.Classic()
	n := table.SymbolCount()
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			for c := 0; c < n; c++ {
				g, state, _ := newTestGame(t, 5000, 1000, a, b, c)
				res, err := g.Spin(context.Background())
				if err != nil {
					t.Fatalf("spin: %v", err)
				}
				var payout int64
				if rule, ok := table.Evaluate(model.ReelResult{model.SymbolID(a), model.SymbolID(b), model.SymbolID(c)}); ok {
					payout = table.Payout(rule, 1000)
				}
				if state.Balance() != 5000-1000+payout || res.Payout != payout {
					t.Fatalf("reels %d,%d,%d: balance %d payout %d, want payout %d", a, b, c, state.Balance(), res.Payout, payout)
				}
			}
		}
	}
}

func TestSpinNotReentrant(t *testing.T) {
	g, state, _ := newTestGame(t, 5000, 500)
	g.spinning.Store(true)
	if _, err := g.Spin(context.Background()); !errors.Is(err, model.ErrSpinInProgress) {
		t.Fatalf("err = %v, want ErrSpinInProgress", err)
	}
	if state.Balance() != 5000 {
		t.Fatalf("balance changed during rejected spin")
	}
}

func TestToggleCardAlternates(t *testing.T) {
	g, _, rec := newTestGame(t, 0, 500)
	want := []model.EventKind{
		model.EventDepositRequested,
		model.EventCashoutRequested,
		model.EventDepositRequested,
	}
	for i, w := range want {
		if got := g.ToggleCard(context.Background()); got != w {
			t.Fatalf("press %d = %v, want %v", i+1, got, w)
		}
	}
	kinds := rec.kinds()
	for i, w := range want {
		if kinds[i] != w {
			t.Fatalf("event %d = %v, want %v", i, kinds[i], w)
		}
	}
}

func TestSnapshotTracksLastSpin(t *testing.T) {
	g, _, _ := newTestGame(t, 5000, 500, 0, 0, 0)
	if _, err := g.Spin(context.Background()); err != nil {
		t.Fatalf("spin: %v", err)
	}
	snap := g.Snapshot()
	if snap.LastSpin == nil || snap.LastSpin.Rule != "three crabs" {
		t.Fatalf("last spin = %+v", snap.LastSpin)
	}
	if snap.Rounds != 1 || snap.Spinning {
		t.Fatalf("snapshot = %+v", snap)
	}
}
