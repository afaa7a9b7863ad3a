package bus

import (
	"context"
	"sync"

	"slot_kiosk/internal/model"
)

// Subscriber - independent reader with its own bounded inbox
type Subscriber struct {
	bus *Bus

	mu     sync.Mutex
	ring   []envelope
	head   int
	size   int
	next   uint64 // sequence number expected by the reader
	closed bool

	notify chan struct{}
	done   chan struct{}
}

// push is called with the bus lock held
func (s *Subscriber) push(env envelope) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.size == len(s.ring) {
		// overwrite the oldest unread entry
		s.ring[s.head] = envelope{}
		s.head = (s.head + 1) % len(s.ring)
		s.size--
	}
	s.ring[(s.head+s.size)%len(s.ring)] = env
	s.size++
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Next blocks until an event is available.
// After an overflow it first returns *LagError with the number of missed events,
// then continues with the oldest event still retained.
func (s *Subscriber) Next(ctx context.Context) (model.Event, error) {
	for {
		ev, ok, err := s.pop()
		if ok {
			return ev, err
		}

		select {
		case <-ctx.Done():
			return model.Event{}, ctx.Err()
		case <-s.notify:
		case <-s.done:
		}
	}
}

// TryNext is the non-blocking variant of Next; ok is false when the inbox is empty
func (s *Subscriber) TryNext() (ev model.Event, ok bool, err error) {
	return s.pop()
}

func (s *Subscriber) pop() (model.Event, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.size == 0 {
		if s.closed {
			return model.Event{}, true, ErrClosed
		}
		return model.Event{}, false, nil
	}

	env := s.ring[s.head]
	if env.seq > s.next {
		missed := env.seq - s.next
		s.next = env.seq
		return model.Event{}, true, &LagError{Missed: missed}
	}

	s.ring[s.head] = envelope{}
	s.head = (s.head + 1) % len(s.ring)
	s.size--
	s.next = env.seq + 1
	return env.event, true, nil
}

// Len - number of buffered events
func (s *Subscriber) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// Close unregisters the subscriber; buffered events are discarded
func (s *Subscriber) Close() {
	s.bus.remove(s)
	s.mu.Lock()
	s.size = 0
	s.mu.Unlock()
	s.shutdown()
}

func (s *Subscriber) shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.done)
}
