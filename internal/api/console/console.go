package console

import (
	"errors"
	"net/http"

	dto "slot_kiosk/internal/api/dto/console"
	"slot_kiosk/internal/converter"
	"slot_kiosk/internal/model"
	"slot_kiosk/internal/repository"
	"slot_kiosk/internal/service"
	"slot_kiosk/pkg/req"
	"slot_kiosk/pkg/resp"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type HandlerDeps struct {
	Game    service.GameService
	Input   service.InputService
	Stats   repository.StatsRepository
	Session uuid.UUID
	// nil when the card ledger is disabled
	Ledger service.LedgerService
	Placer repository.CardPlacer
}

type Handler struct {
	game    service.GameService
	input   service.InputService
	stats   repository.StatsRepository
	session uuid.UUID
	ledger  service.LedgerService
	placer  repository.CardPlacer
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		game:    deps.Game,
		input:   deps.Input,
		stats:   deps.Stats,
		session: deps.Session,
		ledger:  deps.Ledger,
		placer:  deps.Placer,
	}
}

// Press queues a button press, as if the physical button was pushed
func (h *Handler) Press(w http.ResponseWriter, r *http.Request) {
	button, err := model.ParseButton(chi.URLParam(r, "button"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.input.Press(button); err != nil {
		if errors.Is(err, model.ErrInputBusy) {
			http.Error(w, err.Error(), http.StatusTooManyRequests)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusAccepted, dto.PressResponse{Button: string(button), Queued: true})
}

// PlaceCard puts a card on the simulated reader
func (h *Handler) PlaceCard(w http.ResponseWriter, r *http.Request) {
	if h.placer == nil {
		http.Error(w, "card reader disabled", http.StatusNotFound)
		return
	}
	payload, err := req.Decode[dto.PlaceCardRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, err := model.ParseIdentity(payload.UID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.placer.Place(id)
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCardResponse(id, true))
}

func (h *Handler) RemoveCard(w http.ResponseWriter, r *http.Request) {
	if h.placer == nil {
		http.Error(w, "card reader disabled", http.StatusNotFound)
		return
	}
	h.placer.Remove()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Card(w http.ResponseWriter, r *http.Request) {
	if h.placer == nil {
		http.Error(w, "card reader disabled", http.StatusNotFound)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCardResponse(h.placer.Current()))
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStateResponse(h.session, h.game.Snapshot()))
}

// Cards lists the card ledger mirror
func (h *Handler) Cards(w http.ResponseWriter, r *http.Request) {
	if h.ledger == nil {
		http.Error(w, "card ledger disabled", http.StatusNotFound)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCardsResponse(h.ledger.Loaded(), h.ledger.Records()))
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(h.stats.Stats()))
}
