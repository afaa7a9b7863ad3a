package env

import (
	"fmt"
	"time"

	"slot_kiosk/internal/config"
	"slot_kiosk/internal/model"
)

type logConfig struct {
	Service  string `env:"SERVICE_NAME" envDefault:"slot-kiosk"`
	EnvName  string `env:"APP_ENV" envDefault:"local"`
	LogLevel string `env:"LOG_LEVEL"`
}

func NewLogConfig() (config.LogConfig, error) {
	cfg, err := parse[logConfig]()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *logConfig) ServiceName() string { return c.Service }
func (c *logConfig) Env() string         { return c.EnvName }
func (c *logConfig) Level() string       { return c.LogLevel }

type kioskConfig struct {
	Balance    int64         `env:"KIOSK_INITIAL_BALANCE" envDefault:"0"`
	BetMin     int64         `env:"KIOSK_BET_MIN" envDefault:"500"`
	BetStep    int64         `env:"KIOSK_BET_STEP" envDefault:"500"`
	BetMax     int64         `env:"KIOSK_BET_MAX" envDefault:"2500"`
	Settle     time.Duration `env:"KIOSK_SETTLE_DELAY" envDefault:"2500ms"`
	QueueSize  int           `env:"KIOSK_INPUT_QUEUE" envDefault:"16"`
	Poll       time.Duration `env:"KIOSK_POLL_INTERVAL" envDefault:"100ms"`
	FeedbackOn bool          `env:"KIOSK_FEEDBACK" envDefault:"true"`
	Window     int           `env:"KIOSK_STATS_WINDOW" envDefault:"500"`
}

func NewKioskConfig() (config.KioskConfig, error) {
	cfg, err := parse[kioskConfig]()
	if err != nil {
		return nil, err
	}
	if cfg.Balance < 0 {
		return nil, fmt.Errorf("initial balance must not be negative: %d", cfg.Balance)
	}
	if err := cfg.Ladder().Validate(); err != nil {
		return nil, fmt.Errorf("bet ladder %d..%d step %d: %w", cfg.BetMin, cfg.BetMax, cfg.BetStep, err)
	}
	return &cfg, nil
}

func (c *kioskConfig) InitialBalance() int64 { return c.Balance }

func (c *kioskConfig) Ladder() model.BetLadder {
	return model.BetLadder{Min: c.BetMin, Step: c.BetStep, Max: c.BetMax}
}

func (c *kioskConfig) SettleDelay() time.Duration  { return c.Settle }
func (c *kioskConfig) InputQueueSize() int         { return c.QueueSize }
func (c *kioskConfig) PollInterval() time.Duration { return c.Poll }
func (c *kioskConfig) Feedback() bool              { return c.FeedbackOn }
func (c *kioskConfig) StatsWindow() int            { return c.Window }

type busConfig struct {
	Cap  int `env:"BUS_CAPACITY" envDefault:"64"`
	Subs int `env:"BUS_MAX_SUBSCRIBERS" envDefault:"8"`
}

func NewBusConfig() (config.BusConfig, error) {
	cfg, err := parse[busConfig]()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *busConfig) Capacity() int       { return c.Cap }
func (c *busConfig) MaxSubscribers() int { return c.Subs }

type payoutConfig struct {
	Set     string `env:"PAYOUT_SYMBOL_SET" envDefault:"classic"`
	Path    string `env:"PAYOUT_TABLE_PATH"`
	MaxMult int64  `env:"PAYOUT_MAX_MULTIPLIER" envDefault:"0"`
}

func NewPayoutConfig() (config.PayoutConfig, error) {
	cfg, err := parse[payoutConfig]()
	if err != nil {
		return nil, err
	}
	if cfg.MaxMult < 0 {
		return nil, fmt.Errorf("max payout multiplier must not be negative: %d", cfg.MaxMult)
	}
	return &cfg, nil
}

func (c *payoutConfig) SymbolSet() string          { return c.Set }
func (c *payoutConfig) TablePath() string          { return c.Path }
func (c *payoutConfig) MaxPayoutMultiplier() int64 { return c.MaxMult }
