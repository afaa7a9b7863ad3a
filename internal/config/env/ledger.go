package env

import (
	"fmt"
	"slices"
	"time"

	"slot_kiosk/internal/config"
	"slot_kiosk/internal/model"
)

type ledgerConfig struct {
	On      bool          `env:"LEDGER_ENABLED" envDefault:"true"`
	Backend string        `env:"LEDGER_STORE" envDefault:"memory"`
	Image   string        `env:"LEDGER_IMAGE_PATH" envDefault:"eeprom.bin"`
	Size    int           `env:"LEDGER_IMAGE_SIZE" envDefault:"4096"`
	Count   int           `env:"LEDGER_SLOTS" envDefault:"2"`
	Offset  uint16        `env:"LEDGER_START_OFFSET" envDefault:"0"`
	Scan    time.Duration `env:"LEDGER_SCAN_TIMEOUT" envDefault:"500ms"`
	Write   time.Duration `env:"LEDGER_WRITE_DELAY" envDefault:"10ms"`
	Cards   string        `env:"LEDGER_CARDS_PATH"`
}

var stores = []string{config.StoreMemory, config.StoreFile, config.StorePostgres, config.StoreRedis}

func NewLedgerConfig() (config.LedgerConfig, error) {
	cfg, err := parse[ledgerConfig]()
	if err != nil {
		return nil, err
	}
	if !slices.Contains(stores, cfg.Backend) {
		return nil, fmt.Errorf("unknown ledger store %q, want one of %v", cfg.Backend, stores)
	}
	if cfg.Count <= 0 {
		return nil, fmt.Errorf("ledger slots must be positive: %d", cfg.Count)
	}
	if end := int(cfg.Offset) + cfg.Count*model.RecordSize; end > cfg.Size || end > 1<<16 {
		return nil, fmt.Errorf("%d slots from offset %d do not fit a %d byte store", cfg.Count, cfg.Offset, cfg.Size)
	}
	return &cfg, nil
}

func (c *ledgerConfig) Enabled() bool              { return c.On }
func (c *ledgerConfig) Store() string              { return c.Backend }
func (c *ledgerConfig) ImagePath() string          { return c.Image }
func (c *ledgerConfig) ImageSize() int             { return c.Size }
func (c *ledgerConfig) Slots() int                 { return c.Count }
func (c *ledgerConfig) StartOffset() uint16        { return c.Offset }
func (c *ledgerConfig) ScanTimeout() time.Duration { return c.Scan }
func (c *ledgerConfig) WriteDelay() time.Duration  { return c.Write }
func (c *ledgerConfig) CardsPath() string          { return c.Cards }
