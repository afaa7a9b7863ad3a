package config

import (
	"time"

	"slot_kiosk/internal/model"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type LogConfig interface {
	ServiceName() string
	Env() string
	Level() string
}

type KioskConfig interface {
	InitialBalance() int64
	Ladder() model.BetLadder
	SettleDelay() time.Duration
	InputQueueSize() int
	PollInterval() time.Duration
	// Feedback - whether the LED and tone reactors run
	Feedback() bool
	StatsWindow() int
}

type BusConfig interface {
	Capacity() int
	MaxSubscribers() int
}

type PayoutConfig interface {
	// SymbolSet - built-in table name, used when TablePath is empty
	SymbolSet() string
	TablePath() string
	MaxPayoutMultiplier() int64
}

// Store backends
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

type LedgerConfig interface {
	Enabled() bool
	Store() string
	ImagePath() string
	ImageSize() int
	Slots() int
	StartOffset() uint16
	ScanTimeout() time.Duration
	WriteDelay() time.Duration
	// CardsPath - factory card list written into a blank store; empty means the built-in list
	CardsPath() string
}

type HTTPConfig interface {
	Address() string
	AllowedOrigins() []string
}

type MetricsConfig interface {
	Enabled() bool
	Address() string
}

type PGConfig interface {
	DSN() string
}

type RedisConfig interface {
	Addr() string
	Password() string
	DB() int
	Key() string
}

type KafkaConfig interface {
	Enabled() bool
	Brokers() []string
	Topic() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
}

type OperatorConfig interface {
	Name() string
	PasswordHash() string
}
