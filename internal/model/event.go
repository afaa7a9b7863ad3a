package model

import (
	"fmt"
	"time"
)

// EventKind - kind of a game lifecycle event
type EventKind uint8

const (
	EventSpin EventKind = iota + 1
	EventWin
	EventBetChanged
	EventDepositRequested
	EventCashoutRequested
)

var eventKindNames = map[EventKind]string{
	EventSpin:             "SPIN",
	EventWin:              "WIN",
	EventBetChanged:       "BET_CHANGED",
	EventDepositRequested: "DEPOSIT_REQUESTED",
	EventCashoutRequested: "CASHOUT_REQUESTED",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Event - immutable notification broadcast once per occurrence.
// Balance is the snapshot taken right after the mutation that caused the event.
type Event struct {
	Kind    EventKind
	Round   uint64
	Bet     int64
	Payout  int64
	Balance int64
	Reels   ReelResult
	At      time.Time
}
