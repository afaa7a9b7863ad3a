package game

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"slot_kiosk/internal/model"
	"slot_kiosk/internal/service"
	servModel "slot_kiosk/internal/service/game/model"
	"slot_kiosk/internal/session"

	"go.uber.org/zap"
)

// Publisher - where the controller announces committed state changes
type Publisher interface {
	Publish(ev model.Event) uint64
}

// Rand - source of reel draws; *rand.Rand satisfies it
type Rand interface {
	IntN(n int) int
}

type Deps struct {
	State  *session.State
	Table  *servModel.PayoutTable
	Ladder model.BetLadder
	Pub    Publisher
	Rand   Rand
	// SettleDelay - how long the reels animate before the result is drawn
	SettleDelay time.Duration
	Log         *zap.Logger
}

type serv struct {
	state  *session.State
	table  *servModel.PayoutTable
	ladder model.BetLadder
	pub    Publisher
	settle time.Duration
	log    *zap.Logger
	now    func() time.Time

	rngMu sync.Mutex
	rng   Rand

	spinning    atomic.Bool
	round       atomic.Uint64
	cardPresses atomic.Uint64

	lastMu sync.RWMutex
	last   *model.SpinResult
}

// NewGameService creates the game controller over the shared session state
func NewGameService(deps Deps) service.GameService {
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
	}
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	if deps.State.Bet() < deps.Ladder.Min || deps.State.Bet() > deps.Ladder.Max {
		deps.State.SetBet(deps.Ladder.Min)
	}
	return &serv{
		state:  deps.State,
		table:  deps.Table,
		ladder: deps.Ladder,
		pub:    deps.Pub,
		settle: deps.SettleDelay,
		log:    log.With(zap.String("component", "game")),
		now:    time.Now,
		rng:    rng,
	}
}

func (s *serv) publish(ev model.Event) {
	ev.At = s.now()
	s.pub.Publish(ev)
}

// Snapshot returns the live state for the operator console
func (s *serv) Snapshot() model.Snapshot {
	s.lastMu.RLock()
	defer s.lastMu.RUnlock()

	var last *model.SpinResult
	if s.last != nil {
		cp := *s.last
		last = &cp
	}
	return model.Snapshot{
		Balance:  s.state.Balance(),
		Bet:      s.state.Bet(),
		Spinning: s.spinning.Load(),
		Rounds:   s.round.Load(),
		LastSpin: last,
	}
}
