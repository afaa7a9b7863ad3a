package reactor

import (
	"context"
	"encoding/json"
	"fmt"

	"slot_kiosk/internal/converter"
	"slot_kiosk/internal/model"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// MessageWriter - the part of *kafka.Writer used by the exporter
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Export encodes every event as JSON and writes it keyed by the session id,
// so one kiosk's events stay on one partition in order
type Export struct {
	w       MessageWriter
	session uuid.UUID
	names   converter.SymbolNamer
}

func NewExport(w MessageWriter, session uuid.UUID, names converter.SymbolNamer) *Export {
	return &Export{w: w, session: session, names: names}
}

func (e *Export) Handle(ctx context.Context, ev model.Event) error {
	msg := converter.ToEventMessage(e.session, ev, e.names)
	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	if err := e.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.Session),
		Value: value,
		Time:  ev.At,
	}); err != nil {
		return fmt.Errorf("export event %s: %w", ev.Kind, err)
	}
	return nil
}
