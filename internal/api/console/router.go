package console

import (
	"net/http"

	authAPI "slot_kiosk/internal/api/auth"
	"slot_kiosk/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// NewRouter - console routes; everything except login needs a Bearer token
func NewRouter(auth *authAPI.Handler, h *Handler, secretKey []byte, allowedOrigins []string) chi.Router {
	r := chi.NewRouter()

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	r.Post("/auth/login", auth.Login)

	r.Group(func(rr chi.Router) {
		rr.Use(middleware.Auth(secretKey))

		rr.Post("/buttons/{button}", h.Press)
		rr.Get("/card", h.Card)
		rr.Put("/card", h.PlaceCard)
		rr.Delete("/card", h.RemoveCard)
		rr.Get("/state", h.State)
		rr.Get("/cards", h.Cards)
		rr.Get("/stats", h.Stats)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	return r
}
