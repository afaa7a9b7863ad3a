package middleware

import (
	"context"
	"net/http"
	"strings"

	"slot_kiosk/internal/model"
	"slot_kiosk/pkg/token"
)

type ctxKey struct{}

// Auth rejects requests without a valid Bearer access token
func Auth(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				http.Error(w, "missing access token", http.StatusUnauthorized)
				return
			}

			claims, err := token.VerifyToken(raw, secretKey)
			if err != nil {
				http.Error(w, "invalid access token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OperatorFromContext - claims stored by Auth
func OperatorFromContext(ctx context.Context) (*model.OperatorClaims, bool) {
	claims, ok := ctx.Value(ctxKey{}).(*model.OperatorClaims)
	return claims, ok
}
