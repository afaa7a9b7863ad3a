package reactor

import (
	"context"

	"slot_kiosk/internal/model"
	"slot_kiosk/internal/repository"
)

// Stats records spins and wins into the statistics repository
func Stats(repo repository.StatsRepository) Handler {
	return HandlerFunc(func(_ context.Context, ev model.Event) error {
		switch ev.Kind {
		case model.EventSpin:
			repo.RecordSpin(ev.Round, ev.Bet)
		case model.EventWin:
			repo.RecordWin(ev.Round, ev.Payout)
		}
		return nil
	})
}
