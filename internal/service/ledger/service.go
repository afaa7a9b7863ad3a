package ledger

import (
	"context"
	"sync"
	"time"

	"slot_kiosk/internal/model"
	"slot_kiosk/internal/reactor"
	"slot_kiosk/internal/repository"
	"slot_kiosk/internal/service"
	"slot_kiosk/internal/session"

	"go.uber.org/zap"
)

const (
	DefaultSlots       = 2
	DefaultScanTimeout = 500 * time.Millisecond
	// DefaultWriteDelay - EEPROM write cycle time
	DefaultWriteDelay = 10 * time.Millisecond
)

type Config struct {
	Slots       int
	StartOffset uint16
	ScanTimeout time.Duration
	WriteDelay  time.Duration
}

// OpObserver - receives the outcome of every deposit and cash-out attempt
type OpObserver interface {
	CardOp(op, outcome string)
}

type Deps struct {
	State  *session.State
	Store  repository.NVStore
	Reader repository.TokenReader
	// Tx wraps PersistAll; nil runs the writes directly
	Tx  repository.Transactor
	Cfg Config
	Log *zap.Logger
	// optional
	Lag reactor.LagObserver
	Ops OpObserver
}

type serv struct {
	state  *session.State
	store  repository.NVStore
	reader repository.TokenReader
	tx     repository.Transactor
	cfg    Config
	log    *zap.Logger
	lag    reactor.LagObserver
	ops    OpObserver
	sleep  func(time.Duration)

	mu      sync.Mutex
	records []model.CardRecord
	loaded  bool
	// live - slot whose balance is currently loaded into the session, -1 if none
	live int
}

// NewLedgerService creates the card ledger. The mirror is empty until LoadAll succeeds.
func NewLedgerService(deps Deps) service.LedgerService {
	cfg := deps.Cfg
	if cfg.Slots <= 0 {
		cfg.Slots = DefaultSlots
	}
	if cfg.ScanTimeout <= 0 {
		cfg.ScanTimeout = DefaultScanTimeout
	}
	if cfg.WriteDelay < 0 {
		cfg.WriteDelay = 0
	}
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &serv{
		state:  deps.State,
		store:  deps.Store,
		reader: deps.Reader,
		tx:     deps.Tx,
		cfg:    cfg,
		log:    log.With(zap.String("component", "ledger")),
		lag:    deps.Lag,
		ops:    deps.Ops,
		sleep:  time.Sleep,
		live:   -1,
	}
}

func (s *serv) offset(slot int) uint16 {
	return s.cfg.StartOffset + uint16(slot*model.RecordSize)
}

// Records returns a copy of the in-memory mirror
func (s *serv) Records() []model.CardRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.CardRecord(nil), s.records...)
}

func (s *serv) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// indexOf is called with mu held
func (s *serv) indexOf(id model.Identity) int {
	if id.Blank() {
		return -1
	}
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (s *serv) withTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return s.tx.Do(ctx, fn)
}
