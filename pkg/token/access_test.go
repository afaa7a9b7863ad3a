package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndVerify(t *testing.T) {
	secret := []byte("console-secret")
	tok, err := GenerateAccessToken("operator", secret, time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := VerifyToken(tok, secret)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Subject != "operator" || claims.ID == "" {
		t.Fatalf("claims = %+v", claims)
	}

	if _, err := VerifyToken(tok, []byte("other")); err == nil {
		t.Fatal("token accepted with wrong secret")
	}
}

func TestExpiredToken(t *testing.T) {
	secret := []byte("console-secret")
	tok, err := GenerateAccessToken("operator", secret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := VerifyToken(tok, secret); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestRejectsNoneAlgorithm(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "operator"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := VerifyToken(tok, []byte("console-secret")); err == nil {
		t.Fatal("unsigned token accepted")
	}
}
