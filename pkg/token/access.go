package token

import (
	"errors"
	"fmt"
	"time"

	"slot_kiosk/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GenerateAccessToken signs an HS256 console token for the operator
func GenerateAccessToken(operator string, secretKey []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := model.OperatorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   operator,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secretKey)
}

func VerifyToken(tokenStr string, secretKey []byte) (*model.OperatorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &model.OperatorClaims{}, func(token *jwt.Token) (interface{}, error) {
		_, ok := token.Method.(*jwt.SigningMethodHMAC)
		if !ok {
			return nil, errors.New("unexpected token signing method")
		}

		return secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*model.OperatorClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
