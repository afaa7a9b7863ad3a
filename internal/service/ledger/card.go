package ledger

import (
	"context"
	"errors"
	"fmt"
	"math"

	"slot_kiosk/internal/model"

	"go.uber.org/zap"
)

// scan performs one bounded card scan followed by a confirming read.
// Nothing is mutated here.
func (s *serv) scan(ctx context.Context) (model.Identity, error) {
	scanCtx, cancel := context.WithTimeout(ctx, s.cfg.ScanTimeout)
	defer cancel()

	id, ok, err := s.reader.Present(scanCtx)
	if err != nil {
		return id, fmt.Errorf("%w: %w", model.ErrTokenAbsent, err)
	}
	if !ok {
		return id, model.ErrTokenAbsent
	}
	if _, err := s.reader.Read(scanCtx, id); err != nil {
		return id, fmt.Errorf("%w: unreadable %s: %w", model.ErrTokenAbsent, id, err)
	}
	return id, nil
}

// OnDeposit loads a known card's stored balance into the live balance
func (s *serv) OnDeposit(ctx context.Context) error {
	id, err := s.scan(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return model.ErrLedgerNotLoaded
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", model.ErrTokenUnknown, id)
	}
	if s.live >= 0 {
		// the live balance still belongs to a card that was not cashed out
		return fmt.Errorf("%w: slot %d", model.ErrCardInUse, s.live)
	}

	s.state.Store(int64(s.records[idx].Balance))
	s.live = idx
	s.log.Info("deposit", zap.Stringer("uid", id), zap.Uint32("balance", s.records[idx].Balance))
	return nil
}

// OnCashout moves the live balance onto a known card and persists the table.
// If persisting fails the mirror and the live balance are restored.
func (s *serv) OnCashout(ctx context.Context) error {
	id, err := s.scan(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return model.ErrLedgerNotLoaded
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", model.ErrTokenUnknown, id)
	}
	if s.live >= 0 && idx != s.live {
		// the live balance came from another card and can only go back onto it
		return fmt.Errorf("%w: slot %d", model.ErrCardInUse, s.live)
	}
	if s.state.Balance() > math.MaxUint32 {
		return model.ErrBalanceOverflow
	}

	taken := s.state.Take()
	if taken > math.MaxUint32 {
		s.state.Credit(taken)
		return model.ErrBalanceOverflow
	}

	prev := s.records[idx].Balance
	s.records[idx].Balance = uint32(taken)
	// persist even when the caller is shutting down; the card's own slot goes last
	// so a failed write never leaves the new balance behind on the medium
	if err := s.persistLocked(context.WithoutCancel(ctx), idx); err != nil {
		s.records[idx].Balance = prev
		s.state.Credit(taken)
		return err
	}

	s.live = -1
	s.log.Info("cash-out", zap.Stringer("uid", id), zap.Int64("balance", taken))
	return nil
}

// outcome - short label of an operation result for logs and metrics
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, model.ErrTokenAbsent):
		return "absent"
	case errors.Is(err, model.ErrTokenUnknown):
		return "unknown"
	case errors.Is(err, model.ErrCardInUse):
		return "in_use"
	case errors.Is(err, model.ErrBalanceOverflow):
		return "overflow"
	case errors.Is(err, model.ErrStorage):
		return "storage"
	default:
		return "error"
	}
}

// report logs a card operation result; storage failures are errors, card problems are routine
func (s *serv) report(op string, err error) {
	if s.ops != nil {
		s.ops.CardOp(op, outcome(err))
	}
	switch {
	case err == nil:
	case errors.Is(err, model.ErrStorage):
		s.log.Error(op+" failed", zap.Error(err))
	default:
		s.log.Info(op+" ignored", zap.Error(err))
	}
}
