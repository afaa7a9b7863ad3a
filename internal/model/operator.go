package model

import "github.com/golang-jwt/jwt/v5"

// OperatorClaims - claims of a console access token
type OperatorClaims struct {
	jwt.RegisteredClaims
}
