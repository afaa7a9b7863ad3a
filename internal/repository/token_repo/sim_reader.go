package token_repo

import (
	"context"
	"errors"
	"sync"

	"slot_kiosk/internal/model"
)

var ErrCardRemoved = errors.New("card left the field")

// SimReader - software card reader. A card is placed and removed through the console.
type SimReader struct {
	mu      sync.Mutex
	id      model.Identity
	present bool
	changed chan struct{}
}

func NewSimReader() *SimReader {
	return &SimReader{changed: make(chan struct{})}
}

// notify wakes pending scans; called with mu held
func (r *SimReader) notify() {
	close(r.changed)
	r.changed = make(chan struct{})
}

func (r *SimReader) Place(id model.Identity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.id = id
	r.present = true
	r.notify()
}

func (r *SimReader) Remove() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.id = model.Identity{}
	r.present = false
	r.notify()
}

func (r *SimReader) Current() (model.Identity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.id, r.present
}

// Present waits for a card until ctx ends; a timeout is not an error
func (r *SimReader) Present(ctx context.Context) (model.Identity, bool, error) {
	for {
		r.mu.Lock()
		if r.present {
			id := r.id
			r.mu.Unlock()
			return id, true, nil
		}
		changed := r.changed
		r.mu.Unlock()

		select {
		case <-ctx.Done():
			return model.Identity{}, false, nil
		case <-changed:
		}
	}
}

// Read returns the card's identity block, failing if a different card (or none) is in the field
func (r *SimReader) Read(ctx context.Context, id model.Identity) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.present || r.id != id {
		return nil, ErrCardRemoved
	}
	return append([]byte(nil), id[:]...), nil
}
