package repository

import (
	"context"

	"slot_kiosk/internal/model"
)

// NVStore - addressable non-volatile block storage keyed by a 16-bit offset
type NVStore interface {
	ReadBlock(ctx context.Context, offset uint16, buf []byte) error
	WriteBlock(ctx context.Context, offset uint16, data []byte) error
}

// Transactor groups several block writes; trm.Manager satisfies it
type Transactor interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TokenReader - contactless card reader, optional and unreliable hardware
type TokenReader interface {
	// Present scans for a card until one shows up or ctx ends; ok is false when none was found
	Present(ctx context.Context) (id model.Identity, ok bool, err error)
	Read(ctx context.Context, id model.Identity) ([]byte, error)
}

// CardPlacer - a reader whose card can be placed and removed by software
type CardPlacer interface {
	Place(id model.Identity)
	Remove()
	Current() (model.Identity, bool)
}

type StatsRepository interface {
	RecordSpin(round uint64, bet int64)
	RecordWin(round uint64, payout int64)
	Stats() model.SpinStats
}
