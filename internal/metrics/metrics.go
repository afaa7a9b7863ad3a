package metrics

import (
	"context"

	"slot_kiosk/internal/model"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "kiosk"

// Metrics - kiosk collectors, fed from the event stream and the card ledger
type Metrics struct {
	events  *prometheus.CounterVec
	lag     *prometheus.CounterVec
	balance prometheus.GaugeFunc
	bet     prometheus.Gauge
	payouts prometheus.Histogram
	cardOps *prometheus.CounterVec
}

// New creates the collectors and registers them on reg. balance is sampled on every scrape.
func New(reg prometheus.Registerer, balance func() int64) *Metrics {
	if balance == nil {
		balance = func() int64 { return 0 }
	}
	m := &Metrics{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "game events observed, by kind",
		}, []string{"kind"}),
		lag: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bus_lagged_events_total",
			Help:      "events a subscriber missed because its buffer overflowed",
		}, []string{"subscriber"}),
		balance: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "balance",
			Help:      "live balance",
		}, func() float64 { return float64(balance()) }),
		bet: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bet",
			Help:      "current bet",
		}),
		payouts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "payout",
			Help:      "payout per winning spin",
			Buckets:   prometheus.ExponentialBuckets(100, 5, 8),
		}),
		cardOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "card_operations_total",
			Help:      "deposit and cash-out attempts, by outcome",
		}, []string{"op", "outcome"}),
	}
	reg.MustRegister(m.events, m.lag, m.balance, m.bet, m.payouts, m.cardOps)
	return m
}

// Handle - event reactor body
func (m *Metrics) Handle(_ context.Context, ev model.Event) error {
	m.events.WithLabelValues(ev.Kind.String()).Inc()
	switch ev.Kind {
	case model.EventSpin, model.EventBetChanged:
		m.bet.Set(float64(ev.Bet))
	case model.EventWin:
		m.payouts.Observe(float64(ev.Payout))
	}
	return nil
}

func (m *Metrics) ObserveLag(subscriber string, missed uint64) {
	m.lag.WithLabelValues(subscriber).Add(float64(missed))
}

// CardOp counts one ledger operation. outcome is "ok" or a short error class.
func (m *Metrics) CardOp(op, outcome string) {
	m.cardOps.WithLabelValues(op, outcome).Inc()
}
