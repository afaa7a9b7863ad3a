package auth

import (
	"time"

	"slot_kiosk/internal/service"
)

type Config struct {
	// Operator - subject written into issued tokens
	Operator     string
	PasswordHash string
	SecretKey    []byte
	TTL          time.Duration
}

type serv struct {
	cfg Config
}

// NewAuthService - single-operator console login against a configured bcrypt hash
func NewAuthService(cfg Config) service.AuthService {
	if cfg.Operator == "" {
		cfg.Operator = "operator"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 15 * time.Minute
	}
	return &serv{cfg: cfg}
}
