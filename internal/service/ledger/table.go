package ledger

import (
	"context"
	"fmt"

	"slot_kiosk/internal/model"

	"go.uber.org/zap"
)

// LoadAll reads every slot of the store into the mirror.
// The mirror is replaced only when every slot was read.
func (s *serv) LoadAll(ctx context.Context) error {
	records := make([]model.CardRecord, s.cfg.Slots)
	buf := make([]byte, model.RecordSize)
	for i := range records {
		if err := s.store.ReadBlock(ctx, s.offset(i), buf); err != nil {
			return fmt.Errorf("%w: read slot %d: %w", model.ErrStorage, i, err)
		}
		if err := records[i].UnmarshalBinary(buf); err != nil {
			return fmt.Errorf("%w: decode slot %d: %w", model.ErrStorage, i, err)
		}
	}

	s.mu.Lock()
	s.records = records
	s.loaded = true
	s.live = -1
	s.mu.Unlock()

	for i, r := range records {
		if r.ID.Blank() {
			continue
		}
		s.log.Info("card slot loaded", zap.Int("slot", i), zap.Stringer("uid", r.ID), zap.Uint32("balance", r.Balance))
	}
	return nil
}

// PersistAll writes every mirror record back to its slot
func (s *serv) PersistAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return model.ErrLedgerNotLoaded
	}
	return s.persistLocked(ctx, -1)
}

// persistLocked writes one fixed-size block per slot, pausing between
// consecutive physical writes for the medium's write cycle.
// Slot last, if >= 0, is written after all others.
func (s *serv) persistLocked(ctx context.Context, last int) error {
	order := make([]int, 0, len(s.records))
	for i := range s.records {
		if i != last {
			order = append(order, i)
		}
	}
	if last >= 0 && last < len(s.records) {
		order = append(order, last)
	}

	return s.withTx(ctx, func(ctx context.Context) error {
		for n, i := range order {
			if n > 0 && s.cfg.WriteDelay > 0 {
				s.sleep(s.cfg.WriteDelay)
			}
			block, err := s.records[i].MarshalBinary()
			if err != nil {
				return err
			}
			if err := s.store.WriteBlock(ctx, s.offset(i), block); err != nil {
				return fmt.Errorf("%w: write slot %d: %w", model.ErrStorage, i, err)
			}
		}
		return nil
	})
}

// Provision writes the factory card list into a store whose slots are all blank.
// Returns false without writing when any slot already holds a card.
func (s *serv) Provision(ctx context.Context, cards []model.CardRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return false, model.ErrLedgerNotLoaded
	}
	for _, r := range s.records {
		if !r.ID.Blank() {
			return false, nil
		}
	}

	prev := s.records
	next := make([]model.CardRecord, len(prev))
	for i := range next {
		next[i] = model.BlankRecord()
		if i < len(cards) {
			next[i] = cards[i]
		}
	}
	if len(cards) > len(next) {
		s.log.Warn("more provisioned cards than slots", zap.Int("cards", len(cards)), zap.Int("slots", len(next)))
	}

	s.records = next
	if err := s.persistLocked(ctx, -1); err != nil {
		s.records = prev
		return false, err
	}
	s.log.Info("card store provisioned", zap.Int("cards", min(len(cards), len(next))))
	return true, nil
}
