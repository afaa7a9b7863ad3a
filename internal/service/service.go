package service

import (
	"context"

	"slot_kiosk/internal/bus"
	"slot_kiosk/internal/model"
)

type GameService interface {
	AdjustBet(ctx context.Context) int64
	MaxBet(ctx context.Context) int64
	Spin(ctx context.Context) (*model.SpinResult, error)
	ToggleCard(ctx context.Context) model.EventKind
	Snapshot() model.Snapshot
}

type LedgerService interface {
	LoadAll(ctx context.Context) error
	PersistAll(ctx context.Context) error
	Provision(ctx context.Context, cards []model.CardRecord) (bool, error)
	OnDeposit(ctx context.Context) error
	OnCashout(ctx context.Context) error
	Records() []model.CardRecord
	Loaded() bool
	Run(ctx context.Context, sub *bus.Subscriber) error
}

type InputService interface {
	Press(button model.Button) error
	Run(ctx context.Context) error
}

type AuthService interface {
	Login(ctx context.Context, password string) (accessToken string, err error)
}
