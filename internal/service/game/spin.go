package game

import (
	"context"
	"time"

	"slot_kiosk/internal/model"
	servModel "slot_kiosk/internal/service/game/model"

	"go.uber.org/zap"
)

// Spin debits the bet, announces SPIN, lets the reels settle, then draws
// and evaluates the result. WIN is published only after the credit committed.
// A spin that started always runs to completion.
func (s *serv) Spin(ctx context.Context) (*model.SpinResult, error) {
	if !s.spinning.CompareAndSwap(false, true) {
		return nil, model.ErrSpinInProgress
	}
	defer s.spinning.Store(false)

	bet := s.state.Bet()
	balance, ok := s.state.TryDebit(bet)
	if !ok {
		s.log.Info("spin refused", zap.Int64("bet", bet), zap.Int64("balance", balance))
		return nil, model.ErrInsufficientFunds
	}

	round := s.round.Add(1)
	s.publish(model.Event{Kind: model.EventSpin, Round: round, Bet: bet, Balance: balance})

	if s.settle > 0 {
		time.Sleep(s.settle)
	}

	reels := s.drawReels()
	res := &model.SpinResult{
		Round:   round,
		Reels:   reels,
		Bet:     bet,
		Balance: balance,
	}
	for i, id := range reels {
		res.Symbols[i] = s.table.SymbolName(id)
	}

	rule, won := s.table.Evaluate(reels)
	if won {
		payout := s.table.Payout(rule, bet)
		res.Win = true
		res.Rule = rule.Name
		res.Payout = payout
		res.Balance = s.state.Credit(payout)
		res.Message = "THAT'S A WIN!!!"
		s.publish(model.Event{
			Kind:    model.EventWin,
			Round:   round,
			Bet:     bet,
			Payout:  payout,
			Balance: res.Balance,
			Reels:   reels,
		})
	} else {
		res.Message = s.missMessage()
	}

	s.log.Info("spin settled",
		zap.Uint64("round", round),
		zap.Strings("reels", res.Symbols[:]),
		zap.Int64("bet", bet),
		zap.Int64("payout", res.Payout),
		zap.Int64("balance", res.Balance),
	)

	s.lastMu.Lock()
	s.last = res
	s.lastMu.Unlock()

	cp := *res
	return &cp, nil
}

// drawReels - a fresh uniform draw per reel
func (s *serv) drawReels() model.ReelResult {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()

	var reels model.ReelResult
	n := s.table.SymbolCount()
	for i := range reels {
		reels[i] = model.SymbolID(s.rng.IntN(n))
	}
	return reels
}

func (s *serv) missMessage() string {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return servModel.MissMessages[s.rng.IntN(len(servModel.MissMessages))]
}
