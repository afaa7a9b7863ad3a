package env

import (
	"fmt"
	"time"

	"slot_kiosk/internal/config"
)

type jwtConfig struct {
	SecretKey string        `env:"ACCESS_TOKEN"`
	TTL       time.Duration `env:"ACCESS_TOKEN_DURATION" envDefault:"15m"`
}

func NewJWTConfig() (config.JWTConfig, error) {
	cfg, err := parse[jwtConfig]()
	if err != nil {
		return nil, err
	}
	if len(cfg.SecretKey) == 0 {
		return nil, fmt.Errorf("access token secret key not found")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("invalid access token duration: %s", cfg.TTL)
	}
	return &cfg, nil
}

func (j *jwtConfig) AccessTokenSecretKey() []byte {
	return []byte(j.SecretKey)
}

func (j *jwtConfig) AccessTokenDuration() time.Duration {
	return j.TTL
}
