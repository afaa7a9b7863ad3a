package ledger

import (
	"context"

	"slot_kiosk/internal/bus"
	"slot_kiosk/internal/model"
	"slot_kiosk/internal/reactor"
)

// Run reacts to deposit and cash-out requests until ctx ends or the bus closes.
// Every request gets exactly one attempt.
func (s *serv) Run(ctx context.Context, sub *bus.Subscriber) error {
	if !s.Loaded() {
		sub.Close()
		return model.ErrLedgerNotLoaded
	}
	return reactor.Run(ctx, "ledger", sub, reactor.HandlerFunc(s.handle), s.log, s.lag)
}

func (s *serv) handle(ctx context.Context, ev model.Event) error {
	switch ev.Kind {
	case model.EventDepositRequested:
		s.report("deposit", s.OnDeposit(ctx))
	case model.EventCashoutRequested:
		s.report("cash-out", s.OnCashout(ctx))
	}
	return nil
}
