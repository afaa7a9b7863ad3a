// Package reactor drives bus subscribers: one goroutine per consumer, each
// reading events at its own pace.
package reactor

import (
	"context"
	"errors"

	"slot_kiosk/internal/bus"
	"slot_kiosk/internal/model"

	"go.uber.org/zap"
)

type Handler interface {
	Handle(ctx context.Context, ev model.Event) error
}

type HandlerFunc func(ctx context.Context, ev model.Event) error

func (f HandlerFunc) Handle(ctx context.Context, ev model.Event) error {
	return f(ctx, ev)
}

// LagObserver - receives the number of events a subscriber missed
type LagObserver interface {
	ObserveLag(subscriber string, missed uint64)
}

// Run reads sub until ctx ends or the bus closes, handing each event to h.
// Lag and handler errors are logged and the loop continues.
// The subscription is released on return.
func Run(ctx context.Context, name string, sub *bus.Subscriber, h Handler, log *zap.Logger, lag LagObserver) error {
	defer sub.Close()
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("reactor", name))

	for {
		ev, err := sub.Next(ctx)
		if err != nil {
			var lagErr *bus.LagError
			switch {
			case errors.As(err, &lagErr):
				log.Warn("subscriber lagged", zap.Uint64("missed", lagErr.Missed))
				if lag != nil {
					lag.ObserveLag(name, lagErr.Missed)
				}
				continue
			case errors.Is(err, bus.ErrClosed):
				log.Debug("bus closed")
				return nil
			case ctx.Err() != nil:
				return nil
			default:
				return err
			}
		}

		if err := h.Handle(ctx, ev); err != nil {
			log.Warn("handle event", zap.Stringer("kind", ev.Kind), zap.Uint64("round", ev.Round), zap.Error(err))
		}
	}
}

// Multi fans one event out to several handlers in order; all are called even if one fails
func Multi(hs ...Handler) Handler {
	return HandlerFunc(func(ctx context.Context, ev model.Event) error {
		var errs []error
		for _, h := range hs {
			if err := h.Handle(ctx, ev); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}
