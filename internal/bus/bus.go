// Package bus is a bounded multi-consumer broadcast of game events.
//
// Every subscriber owns a fixed-size ring. Publishing never blocks: when a
// ring is full its oldest entry is overwritten, and the subscriber learns how
// many events it missed from the gap in sequence numbers.
package bus

import (
	"errors"
	"fmt"
	"sync"

	"slot_kiosk/internal/model"
)

const (
	DefaultCapacity       = 64
	DefaultMaxSubscribers = 8
)

var (
	ErrClosed             = errors.New("bus: closed")
	ErrTooManySubscribers = errors.New("bus: subscriber limit reached")
)

// LagError - returned by Next when older events were overwritten before being read
type LagError struct {
	Missed uint64
}

func (e *LagError) Error() string {
	return fmt.Sprintf("bus: subscriber lagged, missed %d events", e.Missed)
}

type envelope struct {
	seq   uint64
	event model.Event
}

type Bus struct {
	mu             sync.Mutex
	capacity       int
	maxSubscribers int
	seq            uint64
	subs           map[*Subscriber]struct{}
	closed         bool
}

// New creates a bus; non-positive values fall back to the defaults
func New(capacity, maxSubscribers int) *Bus {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if maxSubscribers <= 0 {
		maxSubscribers = DefaultMaxSubscribers
	}
	return &Bus{
		capacity:       capacity,
		maxSubscribers: maxSubscribers,
		subs:           make(map[*Subscriber]struct{}),
	}
}

// Publish delivers the event to every current subscriber and returns its sequence number.
// A closed bus drops the event and returns 0.
func (b *Bus) Publish(ev model.Event) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0
	}
	b.seq++
	env := envelope{seq: b.seq, event: ev}
	for s := range b.subs {
		s.push(env)
	}
	return b.seq
}

// Subscribe registers a reader that sees every event published from now on
func (b *Bus) Subscribe() (*Subscriber, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}
	if len(b.subs) >= b.maxSubscribers {
		return nil, ErrTooManySubscribers
	}
	s := &Subscriber{
		bus:    b,
		ring:   make([]envelope, b.capacity),
		next:   b.seq + 1,
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	b.subs[s] = struct{}{}
	return s, nil
}

// Sequence - number of events published so far
func (b *Bus) Sequence() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seq
}

// Close wakes every subscriber; they drain what is buffered and then get ErrClosed
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for s := range b.subs {
		s.shutdown()
	}
	b.subs = make(map[*Subscriber]struct{})
}

func (b *Bus) remove(s *Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, s)
}
