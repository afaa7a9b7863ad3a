package game

import (
	"context"

	"slot_kiosk/internal/model"

	"go.uber.org/zap"
)

// AdjustBet moves the bet one ladder step up, wrapping to the minimum past the maximum
func (s *serv) AdjustBet(_ context.Context) int64 {
	bet := s.ladder.Next(s.state.Bet())
	s.state.SetBet(bet)
	s.log.Debug("bet changed", zap.Int64("bet", bet))
	s.publish(model.Event{Kind: model.EventBetChanged, Bet: bet, Balance: s.state.Balance()})
	return bet
}

// MaxBet jumps straight to the top of the ladder
func (s *serv) MaxBet(_ context.Context) int64 {
	bet := s.ladder.Max
	s.state.SetBet(bet)
	s.log.Debug("bet changed", zap.Int64("bet", bet))
	s.publish(model.Event{Kind: model.EventBetChanged, Bet: bet, Balance: s.state.Balance()})
	return bet
}

// ToggleCard - the shared card button: odd presses request a deposit, even presses a cash-out
func (s *serv) ToggleCard(_ context.Context) model.EventKind {
	kind := model.EventCashoutRequested
	if s.cardPresses.Add(1)%2 == 1 {
		kind = model.EventDepositRequested
	}
	s.log.Info("card button", zap.Stringer("request", kind))
	s.publish(model.Event{Kind: kind, Bet: s.state.Bet(), Balance: s.state.Balance()})
	return kind
}
