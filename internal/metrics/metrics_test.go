package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"slot_kiosk/internal/model"

	"github.com/prometheus/client_golang/prometheus"
)

// value returns the counter, gauge or histogram-count of the first series of
// name whose labels include want
func value(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
	series:
		for _, m := range f.GetMetric() {
			got := map[string]string{}
			for _, l := range m.GetLabel() {
				got[l.GetName()] = l.GetValue()
			}
			for k, v := range want {
				if got[k] != v {
					continue series
				}
			}
			switch {
			case m.GetCounter() != nil:
				return m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				return m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				return float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	t.Fatalf("series %s%v not found", name, want)
	return 0
}

func TestHandleCountsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	balance := int64(7500)
	m := New(reg, func() int64 { return balance })
	ctx := context.Background()

	_ = m.Handle(ctx, model.Event{Kind: model.EventSpin, Bet: 500, Balance: 7500})
	_ = m.Handle(ctx, model.Event{Kind: model.EventWin, Bet: 500, Payout: 500, Balance: 8000})
	_ = m.Handle(ctx, model.Event{Kind: model.EventSpin, Bet: 500, Balance: 7500})

	if got := value(t, reg, "kiosk_events_total", map[string]string{"kind": model.EventSpin.String()}); got != 2 {
		t.Fatalf("spin events = %v, want 2", got)
	}
	if got := value(t, reg, "kiosk_balance", nil); got != 7500 {
		t.Fatalf("balance gauge = %v, want 7500", got)
	}
	if got := value(t, reg, "kiosk_bet", nil); got != 500 {
		t.Fatalf("bet gauge = %v, want 500", got)
	}
	if got := value(t, reg, "kiosk_payout", nil); got != 1 {
		t.Fatalf("payout samples = %v, want 1", got)
	}
}

func TestObserveLag(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, nil)
	m.ObserveLag("ledger", 3)
	m.ObserveLag("ledger", 2)
	if got := value(t, reg, "kiosk_bus_lagged_events_total", map[string]string{"subscriber": "ledger"}); got != 5 {
		t.Fatalf("lag = %v, want 5", got)
	}
}

func TestHealthz(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg, func() int64 { return 100 })

	healthy := NewHandler(reg, func(context.Context) error { return nil })
	rec := httptest.NewRecorder()
	healthy.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	sick := NewHandler(reg, func(context.Context) error { return errors.New("store down") })
	rec = httptest.NewRecorder()
	sick.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusServiceUnavailable || !strings.Contains(rec.Body.String(), "store down") {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	healthy.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "kiosk_balance 100") {
		t.Fatalf("metrics output missing kiosk collectors:\n%s", rec.Body.String())
	}
}
