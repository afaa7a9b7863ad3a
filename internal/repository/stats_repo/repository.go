package stats_repo

import (
	"sync"

	"slot_kiosk/internal/model"
)

const DefaultWindowSize = 500

type spinRecord struct {
	round  uint64
	bet    float64
	payout float64
}

type state struct {
	totalSpins  int
	totalWins   int
	totalBet    float64
	totalPayout float64
	window      []spinRecord
	windowRTP   float64
}

// StatsRepo - in-memory return-to-player tracking over all spins and a sliding window
type StatsRepo struct {
	mtx        sync.RWMutex
	windowSize int
	state      state
}

func NewStatsRepository(windowSize int) *StatsRepo {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	return &StatsRepo{
		windowSize: windowSize,
		state: state{
			window: make([]spinRecord, 0, windowSize),
		},
	}
}

// RecordSpin - an accepted spin and its stake
func (r *StatsRepo) RecordSpin(round uint64, bet int64) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.state.totalSpins++
	r.state.totalBet += float64(bet)

	r.state.window = append(r.state.window, spinRecord{round: round, bet: float64(bet)})
	if len(r.state.window) > r.windowSize {
		r.state.window = r.state.window[1:]
	}
	r.recalculateWindowRTP()
}

// RecordWin - payout of an earlier spin. A win whose spin fell out of the window only counts in the totals.
func (r *StatsRepo) RecordWin(round uint64, payout int64) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.state.totalWins++
	r.state.totalPayout += float64(payout)

	for i := len(r.state.window) - 1; i >= 0; i-- {
		if r.state.window[i].round == round {
			r.state.window[i].payout += float64(payout)
			break
		}
	}
	r.recalculateWindowRTP()
}

func (r *StatsRepo) recalculateWindowRTP() {
	var windowBet, windowPayout float64
	for _, spin := range r.state.window {
		windowBet += spin.bet
		windowPayout += spin.payout
	}

	if windowBet > 0 {
		r.state.windowRTP = windowPayout / windowBet * 100
	} else {
		r.state.windowRTP = 0
	}
}

func (r *StatsRepo) Stats() model.SpinStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	stats := model.SpinStats{
		TotalSpins:  r.state.totalSpins,
		TotalWins:   r.state.totalWins,
		TotalBet:    r.state.totalBet,
		TotalPayout: r.state.totalPayout,
		WindowRTP:   r.state.windowRTP,
		WindowSize:  r.windowSize,
	}
	if stats.TotalBet > 0 {
		stats.CurrentRTP = stats.TotalPayout / stats.TotalBet * 100
	}
	return stats
}
