// Package session holds the live game state shared by the game controller
// and the card ledger.
package session

import (
	"math"
	"sync/atomic"

	"github.com/google/uuid"
)

// State - live Balance and Bet of the kiosk.
// Every Balance mutation is a single atomic read-modify-write.
type State struct {
	id      uuid.UUID
	balance atomic.Int64
	bet     atomic.Int64
}

func New(balance, bet int64) *State {
	s := &State{id: uuid.New()}
	if balance < 0 {
		balance = 0
	}
	s.balance.Store(balance)
	s.bet.Store(bet)
	return s
}

// ID - identifier of this process session, stamped on exported events
func (s *State) ID() uuid.UUID {
	return s.id
}

func (s *State) Balance() int64 {
	return s.balance.Load()
}

// TryDebit subtracts amount unless the balance would go negative.
// Returns the new balance and whether the debit happened.
func (s *State) TryDebit(amount int64) (int64, bool) {
	if amount < 0 {
		return s.balance.Load(), false
	}
	for {
		cur := s.balance.Load()
		if amount > cur {
			return cur, false
		}
		if s.balance.CompareAndSwap(cur, cur-amount) {
			return cur - amount, true
		}
	}
}

// Credit adds amount, saturating at math.MaxInt64. Non-positive amounts are ignored.
func (s *State) Credit(amount int64) int64 {
	if amount <= 0 {
		return s.balance.Load()
	}
	for {
		cur := s.balance.Load()
		next := cur + amount
		if cur > math.MaxInt64-amount {
			next = math.MaxInt64
		}
		if s.balance.CompareAndSwap(cur, next) {
			return next
		}
	}
}

// Store overwrites the balance (card deposit)
func (s *State) Store(v int64) {
	if v < 0 {
		v = 0
	}
	s.balance.Store(v)
}

// Take zeroes the balance and returns what it held (card cash-out)
func (s *State) Take() int64 {
	return s.balance.Swap(0)
}

func (s *State) Bet() int64 {
	return s.bet.Load()
}

func (s *State) SetBet(v int64) {
	s.bet.Store(v)
}
