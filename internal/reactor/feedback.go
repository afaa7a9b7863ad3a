package reactor

import (
	"context"
	"time"

	"slot_kiosk/internal/model"

	"go.uber.org/zap"
)

// Step - output levels held for a duration. For LEDs each bit is one lamp, for the buzzer 1 is on.
type Step struct {
	Mask uint8
	Hold time.Duration
}

type Pattern struct {
	Name  string
	Steps []Step
}

func (p Pattern) Duration() time.Duration {
	var d time.Duration
	for _, s := range p.Steps {
		d += s.Hold
	}
	return d
}

// Driver plays a pattern on hardware; Play returns when the pattern ends or ctx is done
type Driver interface {
	Play(ctx context.Context, p Pattern) error
}

const (
	ledYellow uint8 = 1 << iota
	ledGreen
	ledBlue
	ledRed

	ledAll = ledYellow | ledGreen | ledBlue | ledRed
)

func repeat(n int, steps ...Step) []Step {
	out := make([]Step, 0, n*len(steps))
	for range n {
		out = append(out, steps...)
	}
	return out
}

// LEDPattern - lamp sequence for an event kind. The lamps stay lit between patterns.
func LEDPattern(kind model.EventKind) (Pattern, bool) {
	switch kind {
	case model.EventSpin:
		return Pattern{Name: "chase", Steps: append(repeat(5,
			Step{ledYellow, 200 * time.Millisecond},
			Step{ledGreen, 200 * time.Millisecond},
			Step{ledBlue, 200 * time.Millisecond},
			Step{ledRed, 200 * time.Millisecond},
		), Step{Mask: ledAll})}, true
	case model.EventWin:
		return Pattern{Name: "blink", Steps: append(repeat(3,
			Step{ledAll, 250 * time.Millisecond},
			Step{0, 250 * time.Millisecond},
		), Step{Mask: ledAll})}, true
	}
	return Pattern{}, false
}

// TonePattern - buzzer sequence for an event kind
func TonePattern(kind model.EventKind) (Pattern, bool) {
	tick := []Step{{1, 50 * time.Millisecond}, {0, 50 * time.Millisecond}}
	switch kind {
	case model.EventSpin:
		return Pattern{Name: "ticks", Steps: repeat(25, tick...)}, true
	case model.EventWin:
		return Pattern{Name: "fanfare", Steps: append(tick, Step{1, time.Second}, Step{0, 0})}, true
	case model.EventBetChanged, model.EventDepositRequested, model.EventCashoutRequested:
		return Pattern{Name: "beep", Steps: tick}, true
	}
	return Pattern{}, false
}

// Feedback plays the pattern chosen for each event on a driver.
// Events arriving while a pattern plays wait in the subscriber buffer.
type Feedback struct {
	driver  Driver
	pattern func(model.EventKind) (Pattern, bool)
}

func NewLEDFeedback(d Driver) *Feedback {
	return &Feedback{driver: d, pattern: LEDPattern}
}

func NewToneFeedback(d Driver) *Feedback {
	return &Feedback{driver: d, pattern: TonePattern}
}

func (f *Feedback) Handle(ctx context.Context, ev model.Event) error {
	p, ok := f.pattern(ev.Kind)
	if !ok {
		return nil
	}
	return f.driver.Play(ctx, p)
}

// LogDriver - stand-in for the GPIO/PWM driver, logs patterns instead of playing them
type LogDriver struct {
	Log  *zap.Logger
	Name string
}

func (d LogDriver) Play(_ context.Context, p Pattern) error {
	d.Log.Debug("play pattern",
		zap.String("driver", d.Name),
		zap.String("pattern", p.Name),
		zap.Int("steps", len(p.Steps)),
		zap.Duration("duration", p.Duration()),
	)
	return nil
}
