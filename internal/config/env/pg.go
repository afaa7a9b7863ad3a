package env

import (
	"errors"

	"slot_kiosk/internal/config"
)

type pgConfig struct {
	DSNValue string `env:"PG_DSN"`
}

func NewPGConfig() (config.PGConfig, error) {
	cfg, err := parse[pgConfig]()
	if err != nil {
		return nil, err
	}
	if len(cfg.DSNValue) == 0 {
		return nil, errors.New("pg dsn not found")
	}
	return &cfg, nil
}

func (cfg *pgConfig) DSN() string {
	return cfg.DSNValue
}
