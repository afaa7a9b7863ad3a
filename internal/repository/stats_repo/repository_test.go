package stats_repo

import (
	"math"
	"testing"
)

func TestStatsTotalsAndRTP(t *testing.T) {
	r := NewStatsRepository(10)

	r.RecordSpin(1, 500)
	r.RecordSpin(2, 500)
	r.RecordWin(2, 500)
	r.RecordSpin(3, 1000)

	s := r.Stats()
	if s.TotalSpins != 3 || s.TotalWins != 1 {
		t.Fatalf("spins/wins = %d/%d, want 3/1", s.TotalSpins, s.TotalWins)
	}
	if s.TotalBet != 2000 || s.TotalPayout != 500 {
		t.Fatalf("bet/payout = %v/%v", s.TotalBet, s.TotalPayout)
	}
	if s.CurrentRTP != 25 || s.WindowRTP != 25 {
		t.Fatalf("rtp = %v window %v, want 25", s.CurrentRTP, s.WindowRTP)
	}
}

func TestStatsWindowSlides(t *testing.T) {
	r := NewStatsRepository(2)

	r.RecordSpin(1, 100)
	r.RecordWin(1, 1000)
	r.RecordSpin(2, 100)
	r.RecordSpin(3, 100)

	s := r.Stats()
	if s.WindowRTP != 0 {
		t.Fatalf("window rtp = %v, want 0 once the winning spin slid out", s.WindowRTP)
	}
	if math.Abs(s.CurrentRTP-1000.0/3) > 1e-9 {
		t.Fatalf("current rtp = %v", s.CurrentRTP)
	}

	// win for a round no longer in the window still counts in totals
	r.RecordWin(1, 100)
	if got := r.Stats().TotalPayout; got != 1100 {
		t.Fatalf("total payout = %v, want 1100", got)
	}
}

func TestStatsEmpty(t *testing.T) {
	s := NewStatsRepository(0).Stats()
	if s.WindowSize != DefaultWindowSize || s.CurrentRTP != 0 || s.WindowRTP != 0 {
		t.Fatalf("unexpected empty stats %+v", s)
	}
}
