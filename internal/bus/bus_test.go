package bus

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"slot_kiosk/internal/model"
)

func mustSubscribe(t *testing.T, b *Bus) *Subscriber {
	t.Helper()
	s, err := b.Subscribe()
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	return s
}

func next(t *testing.T, s *Subscriber) (model.Event, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return s.Next(ctx)
}

func TestPublishFansOutInOrder(t *testing.T) {
	b := New(8, 4)
	a := mustSubscribe(t, b)
	c := mustSubscribe(t, b)

	b.Publish(model.Event{Kind: model.EventSpin, Round: 1})
	b.Publish(model.Event{Kind: model.EventWin, Round: 1})

	for _, s := range []*Subscriber{a, c} {
		first, err := next(t, s)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		second, err := next(t, s)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if first.Kind != model.EventSpin || second.Kind != model.EventWin {
			t.Fatalf("order = %v, %v; want SPIN, WIN", first.Kind, second.Kind)
		}
	}
}

func TestSubscriberSeesOnlyLaterEvents(t *testing.T) {
	b := New(4, 4)
	b.Publish(model.Event{Kind: model.EventBetChanged})
	s := mustSubscribe(t, b)
	if _, ok, _ := s.TryNext(); ok {
		t.Fatalf("subscriber received an event published before it subscribed")
	}
}

func TestLaggingSubscriberGetsLagThenFreshEvents(t *testing.T) {
	b := New(3, 2)
	slow := mustSubscribe(t, b)

	for i := 1; i <= 7; i++ {
		b.Publish(model.Event{Kind: model.EventBetChanged, Round: uint64(i)})
	}

	_, err := next(t, slow)
	var lag *LagError
	if !errors.As(err, &lag) {
		t.Fatalf("err = %v, want *LagError", err)
	}
	if lag.Missed != 4 {
		t.Fatalf("missed = %d, want 4", lag.Missed)
	}

	for want := uint64(5); want <= 7; want++ {
		ev, err := next(t, slow)
		if err != nil {
			t.Fatalf("next after lag: %v", err)
		}
		if ev.Round != want {
			t.Fatalf("round = %d, want %d", ev.Round, want)
		}
	}
	if _, ok, _ := slow.TryNext(); ok {
		t.Fatalf("expected empty inbox, got a stale duplicate")
	}
}

func TestPublishNeverBlocksOnFullSubscribers(t *testing.T) {
	b := New(1, 2)
	mustSubscribe(t, b)
	mustSubscribe(t, b)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			b.Publish(model.Event{Kind: model.EventSpin})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("publish blocked")
	}
	if got := b.Sequence(); got != 1000 {
		t.Fatalf("sequence = %d, want 1000", got)
	}
}

func TestSubscriberLimit(t *testing.T) {
	b := New(1, 1)
	s := mustSubscribe(t, b)
	if _, err := b.Subscribe(); !errors.Is(err, ErrTooManySubscribers) {
		t.Fatalf("err = %v, want ErrTooManySubscribers", err)
	}
	s.Close()
	if _, err := b.Subscribe(); err != nil {
		t.Fatalf("subscribe after close: %v", err)
	}
}

func TestNextBlocksUntilPublish(t *testing.T) {
	b := New(4, 1)
	s := mustSubscribe(t, b)

	var wg sync.WaitGroup
	wg.Add(1)
	var got model.Event
	var gotErr error
	go func() {
		defer wg.Done()
		got, gotErr = next(t, s)
	}()

	time.Sleep(20 * time.Millisecond)
	b.Publish(model.Event{Kind: model.EventCashoutRequested})
	wg.Wait()

	if gotErr != nil || got.Kind != model.EventCashoutRequested {
		t.Fatalf("got %v, %v", got.Kind, gotErr)
	}
}

func TestNextHonoursContext(t *testing.T) {
	b := New(4, 1)
	s := mustSubscribe(t, b)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := s.Next(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}

func TestCloseDrainsThenReportsClosed(t *testing.T) {
	b := New(4, 1)
	s := mustSubscribe(t, b)
	b.Publish(model.Event{Kind: model.EventSpin})
	b.Close()

	if ev, err := next(t, s); err != nil || ev.Kind != model.EventSpin {
		t.Fatalf("got %v, %v; want buffered SPIN", ev.Kind, err)
	}
	if _, err := next(t, s); !errors.Is(err, ErrClosed) {
		t.Fatalf("err = %v, want ErrClosed", err)
	}
	if seq := b.Publish(model.Event{Kind: model.EventSpin}); seq != 0 {
		t.Fatalf("publish on closed bus returned %d", seq)
	}
	if _, err := b.Subscribe(); !errors.Is(err, ErrClosed) {
		t.Fatalf("subscribe on closed bus: %v", err)
	}
}
