package auth

import (
	"errors"
	"net/http"

	dto "slot_kiosk/internal/api/dto/console"
	"slot_kiosk/internal/service"
	authServ "slot_kiosk/internal/service/auth"
	"slot_kiosk/pkg/req"
	"slot_kiosk/pkg/resp"

	"go.uber.org/zap"
)

type HandlerDeps struct {
	Serv service.AuthService
	Log  *zap.Logger
}

type Handler struct {
	serv service.AuthService
	log  *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{serv: deps.Serv, log: log}
}

// Login checks the operator password and returns an access token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.LoginRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	accessToken, err := h.serv.Login(r.Context(), requestBody.Password)
	if err != nil {
		if errors.Is(err, authServ.ErrInvalidCredentials) {
			h.log.Warn("console login rejected", zap.String("remote", r.RemoteAddr))
			http.Error(w, "login failed", http.StatusUnauthorized)
			return
		}
		h.log.Error("console login", zap.Error(err))
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.LoginResponse{AccessToken: accessToken})
}
