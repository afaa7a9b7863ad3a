package auth

import (
	"context"
	"errors"

	"slot_kiosk/pkg/pass"
	"slot_kiosk/pkg/token"
)

var ErrInvalidCredentials = errors.New("invalid password")

func (s *serv) Login(_ context.Context, password string) (string, error) {
	if s.cfg.PasswordHash == "" || !pass.VerifyPassword(s.cfg.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	return token.GenerateAccessToken(s.cfg.Operator, s.cfg.SecretKey, s.cfg.TTL)
}
