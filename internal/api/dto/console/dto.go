package console

import "time"

type LoginRequest struct {
	Password string `json:"password"` // operator password
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type PressResponse struct {
	Button string `json:"button"`
	Queued bool   `json:"queued"`
}

type PlaceCardRequest struct {
	UID string `json:"uid"` // hex, e.g. "50f36d14"
}

type CardResponse struct {
	UID     string `json:"uid"`
	Present bool   `json:"present"`
}

type SpinResponse struct {
	Round   uint64    `json:"round"`
	Reels   [3]string `json:"reels"`   // symbol names
	Bet     int64     `json:"bet"`
	Win     bool      `json:"win"`
	Rule    string    `json:"rule,omitempty"`
	Payout  int64     `json:"payout"`
	Balance int64     `json:"balance"` // balance after the spin
	Message string    `json:"message"`
}

type StateResponse struct {
	Session  string        `json:"session"`
	Balance  int64         `json:"balance"`
	Bet      int64         `json:"bet"`
	Spinning bool          `json:"spinning"`
	Rounds   uint64        `json:"rounds"`
	LastSpin *SpinResponse `json:"last_spin,omitempty"`
}

type CardRecord struct {
	Slot    int    `json:"slot"`
	UID     string `json:"uid"`
	Balance uint32 `json:"balance"`
	Blank   bool   `json:"blank"`
}

type CardsResponse struct {
	Loaded bool         `json:"loaded"`
	Cards  []CardRecord `json:"cards"`
}

type StatsResponse struct {
	TotalSpins  int     `json:"total_spins"`
	TotalWins   int     `json:"total_wins"`
	TotalBet    float64 `json:"total_bet"`
	TotalPayout float64 `json:"total_payout"`
	CurrentRTP  float64 `json:"current_rtp"` // over all spins
	WindowRTP   float64 `json:"window_rtp"`  // over the last WindowSize spins
	WindowSize  int     `json:"window_size"`
}

// EventMessage - exported game event
type EventMessage struct {
	ID      string    `json:"id"`
	Session string    `json:"session"`
	Kind    string    `json:"kind"`
	Round   uint64    `json:"round"`
	Bet     int64     `json:"bet"`
	Payout  int64     `json:"payout,omitempty"`
	Balance int64     `json:"balance"`
	Reels   []string  `json:"reels,omitempty"`
	At      time.Time `json:"at"`
}
