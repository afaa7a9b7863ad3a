package input

import (
	"context"
	"errors"
	"time"

	"slot_kiosk/internal/model"
	"slot_kiosk/internal/service"

	"go.uber.org/zap"
)

const (
	DefaultQueueSize = 16
	// DefaultPollInterval - pause between two handled presses, the kiosk's input loop cadence
	DefaultPollInterval = 100 * time.Millisecond
)

type serv struct {
	game     service.GameService
	queue    chan model.Button
	interval time.Duration
	log      *zap.Logger
}

// NewInputService creates the button dispatcher. Presses are handled one at a time in arrival order.
func NewInputService(game service.GameService, queueSize int, interval time.Duration, log *zap.Logger) service.InputService {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if interval < 0 {
		interval = 0
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &serv{
		game:     game,
		queue:    make(chan model.Button, queueSize),
		interval: interval,
		log:      log.With(zap.String("component", "input")),
	}
}

// Press queues a button without blocking
func (s *serv) Press(button model.Button) error {
	if _, err := model.ParseButton(string(button)); err != nil {
		return err
	}
	select {
	case s.queue <- button:
		return nil
	default:
		return model.ErrInputBusy
	}
}

// Run handles queued presses until ctx ends
func (s *serv) Run(ctx context.Context) error {
	var pause <-chan time.Time
	for {
		if pause != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-pause:
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case b := <-s.queue:
			s.dispatch(ctx, b)
		}

		if s.interval > 0 {
			pause = time.After(s.interval)
		}
	}
}

func (s *serv) dispatch(ctx context.Context, b model.Button) {
	switch b {
	case model.ButtonBetIncrease:
		s.log.Debug("bet increased", zap.Int64("bet", s.game.AdjustBet(ctx)))
	case model.ButtonBetMax:
		s.log.Debug("bet set to max", zap.Int64("bet", s.game.MaxBet(ctx)))
	case model.ButtonCard:
		s.log.Debug("card button", zap.Stringer("request", s.game.ToggleCard(ctx)))
	case model.ButtonSpin:
		res, err := s.game.Spin(ctx)
		switch {
		case err == nil:
			s.log.Debug("spin", zap.Uint64("round", res.Round), zap.Bool("win", res.Win))
		case errors.Is(err, model.ErrInsufficientFunds), errors.Is(err, model.ErrSpinInProgress):
			s.log.Info("spin refused", zap.Error(err))
		default:
			s.log.Error("spin", zap.Error(err))
		}
	}
}
