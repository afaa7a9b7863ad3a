package converter

import (
	"slot_kiosk/internal/api/dto/console"
	"slot_kiosk/internal/model"

	"github.com/google/uuid"
)

// SymbolNamer resolves reel symbol ids; the payout table implements it
type SymbolNamer interface {
	SymbolName(id model.SymbolID) string
}

func ToEventMessage(session uuid.UUID, ev model.Event, names SymbolNamer) console.EventMessage {
	msg := console.EventMessage{
		ID:      uuid.NewString(),
		Session: session.String(),
		Kind:    ev.Kind.String(),
		Round:   ev.Round,
		Bet:     ev.Bet,
		Payout:  ev.Payout,
		Balance: ev.Balance,
		At:      ev.At,
	}
	if ev.Kind == model.EventWin && names != nil {
		msg.Reels = make([]string, len(ev.Reels))
		for i, id := range ev.Reels {
			msg.Reels[i] = names.SymbolName(id)
		}
	}
	return msg
}

func ToSpinResponse(res *model.SpinResult) *console.SpinResponse {
	if res == nil {
		return nil
	}
	return &console.SpinResponse{
		Round:   res.Round,
		Reels:   res.Symbols,
		Bet:     res.Bet,
		Win:     res.Win,
		Rule:    res.Rule,
		Payout:  res.Payout,
		Balance: res.Balance,
		Message: res.Message,
	}
}

func ToStateResponse(session uuid.UUID, snap model.Snapshot) console.StateResponse {
	return console.StateResponse{
		Session:  session.String(),
		Balance:  snap.Balance,
		Bet:      snap.Bet,
		Spinning: snap.Spinning,
		Rounds:   snap.Rounds,
		LastSpin: ToSpinResponse(snap.LastSpin),
	}
}

func ToCardsResponse(loaded bool, records []model.CardRecord) console.CardsResponse {
	cards := make([]console.CardRecord, len(records))
	for i, r := range records {
		cards[i] = console.CardRecord{
			Slot:    i,
			UID:     r.ID.String(),
			Balance: r.Balance,
			Blank:   r.ID.Blank(),
		}
	}
	return console.CardsResponse{
		Loaded: loaded,
		Cards:  cards,
	}
}

func ToStatsResponse(s model.SpinStats) console.StatsResponse {
	return console.StatsResponse{
		TotalSpins:  s.TotalSpins,
		TotalWins:   s.TotalWins,
		TotalBet:    s.TotalBet,
		TotalPayout: s.TotalPayout,
		CurrentRTP:  s.CurrentRTP,
		WindowRTP:   s.WindowRTP,
		WindowSize:  s.WindowSize,
	}
}

func ToCardResponse(id model.Identity, present bool) console.CardResponse {
	resp := console.CardResponse{Present: present}
	if present {
		resp.UID = id.String()
	}
	return resp
}
