package session

import (
	"math"
	"sync"
	"testing"
)

func TestTryDebit(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		amount  int64
		want    int64
		ok      bool
	}{
		{"exact", 500, 500, 0, true},
		{"partial", 80000, 2500, 77500, true},
		{"insufficient", 400, 500, 400, false},
		{"negative amount", 100, -1, 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.balance, 0)
			got, ok := s.TryDebit(tt.amount)
			if got != tt.want || ok != tt.ok {
				t.Fatalf("TryDebit(%d) = %d, %v; want %d, %v", tt.amount, got, ok, tt.want, tt.ok)
			}
			if s.Balance() != tt.want {
				t.Fatalf("balance = %d, want %d", s.Balance(), tt.want)
			}
		})
	}
}

func TestCreditSaturates(t *testing.T) {
	s := New(math.MaxInt64-10, 0)
	if got := s.Credit(100); got != math.MaxInt64 {
		t.Fatalf("credit = %d, want MaxInt64", got)
	}
	if got := s.Credit(-5); got != math.MaxInt64 {
		t.Fatalf("negative credit changed balance to %d", got)
	}
}

func TestTakeZeroes(t *testing.T) {
	s := New(77500, 0)
	if got := s.Take(); got != 77500 {
		t.Fatalf("take = %d", got)
	}
	if s.Balance() != 0 {
		t.Fatalf("balance after take = %d", s.Balance())
	}
}

func TestConcurrentDebitsNeverOverdraw(t *testing.T) {
	s := New(10000, 0)
	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := s.TryDebit(500); ok {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if accepted != 20 {
		t.Fatalf("accepted %d debits, want 20", accepted)
	}
	if s.Balance() != 0 {
		t.Fatalf("balance = %d, want 0", s.Balance())
	}
}
