package console

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authAPI "slot_kiosk/internal/api/auth"
	dto "slot_kiosk/internal/api/dto/console"
	"slot_kiosk/internal/bus"
	"slot_kiosk/internal/model"
	"slot_kiosk/internal/repository/eeprom_repo"
	"slot_kiosk/internal/repository/stats_repo"
	"slot_kiosk/internal/repository/token_repo"
	authServ "slot_kiosk/internal/service/auth"
	"slot_kiosk/internal/service/game"
	servModel "slot_kiosk/internal/service/game/model"
	"slot_kiosk/internal/service/ledger"
	"slot_kiosk/internal/session"
	"slot_kiosk/pkg/pass"

	"github.com/google/uuid"
)

const password = "bench"

var secret = []byte("console-test")

type fakeInput struct {
	pressed []model.Button
	busy    bool
}

func (f *fakeInput) Press(b model.Button) error {
	if f.busy {
		return model.ErrInputBusy
	}
	f.pressed = append(f.pressed, b)
	return nil
}

func (f *fakeInput) Run(context.Context) error { return nil }

type env struct {
	srv    *httptest.Server
	input  *fakeInput
	reader *token_repo.SimReader
	state  *session.State
}

func newEnv(t *testing.T) *env {
	t.Helper()
	hash, err := pass.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	state := session.New(5000, 500)
	reader := token_repo.NewSimReader()
	l := ledger.NewLedgerService(ledger.Deps{
		State:  state,
		Store:  eeprom_repo.NewMemory(64),
		Reader: reader,
	})
	if err := l.LoadAll(context.Background()); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	g := game.NewGameService(game.Deps{
		State:  state,
		Table:  servModel.Classic(),
		Ladder: model.BetLadder{Min: 500, Step: 500, Max: 2500},
		Pub:    bus.New(4, 1),
	})
	input := &fakeInput{}

	h := NewHandler(HandlerDeps{
		Game:    g,
		Input:   input,
		Stats:   stats_repo.NewStatsRepository(10),
		Session: uuid.New(),
		Ledger:  l,
		Placer:  reader,
	})
	a := authAPI.NewHandler(authAPI.HandlerDeps{
		Serv: authServ.NewAuthService(authServ.Config{PasswordHash: hash, SecretKey: secret, TTL: time.Minute}),
	})

	srv := httptest.NewServer(NewRouter(a, h, secret, nil))
	t.Cleanup(srv.Close)
	return &env{srv: srv, input: input, reader: reader, state: state}
}

func (e *env) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	r, err := http.NewRequest(method, e.srv.URL+path, &buf)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(r)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func (e *env) login(t *testing.T) string {
	t.Helper()
	res := e.do(t, http.MethodPost, "/auth/login", "", dto.LoginRequest{Password: password})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", res.StatusCode)
	}
	var body dto.LoginResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return body.AccessToken
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	e := newEnv(t)
	res := e.do(t, http.MethodPost, "/auth/login", "", dto.LoginRequest{Password: "nope"})
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", res.StatusCode)
	}
}

func TestButtonsNeedToken(t *testing.T) {
	e := newEnv(t)
	res := e.do(t, http.MethodPost, "/buttons/spin", "", nil)
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", res.StatusCode)
	}
	if len(e.input.pressed) != 0 {
		t.Fatalf("unauthenticated press reached input: %v", e.input.pressed)
	}
}

func TestPressButton(t *testing.T) {
	e := newEnv(t)
	tok := e.login(t)

	res := e.do(t, http.MethodPost, "/buttons/bet-max", tok, nil)
	if res.StatusCode != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", res.StatusCode)
	}
	if len(e.input.pressed) != 1 || e.input.pressed[0] != model.ButtonBetMax {
		t.Fatalf("pressed = %v", e.input.pressed)
	}

	if res := e.do(t, http.MethodPost, "/buttons/coin", tok, nil); res.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown button status = %d, want 400", res.StatusCode)
	}

	e.input.busy = true
	if res := e.do(t, http.MethodPost, "/buttons/spin", tok, nil); res.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("busy status = %d, want 429", res.StatusCode)
	}
}

func TestCardPlacement(t *testing.T) {
	e := newEnv(t)
	tok := e.login(t)

	res := e.do(t, http.MethodPut, "/card", tok, dto.PlaceCardRequest{UID: "50:f3:6d:14"})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("place status = %d", res.StatusCode)
	}
	id, ok := e.reader.Current()
	if !ok || id != (model.Identity{80, 243, 109, 20}) {
		t.Fatalf("reader holds %s %v", id, ok)
	}

	if res := e.do(t, http.MethodPut, "/card", tok, dto.PlaceCardRequest{UID: "zz"}); res.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad uid status = %d, want 400", res.StatusCode)
	}

	if res := e.do(t, http.MethodDelete, "/card", tok, nil); res.StatusCode != http.StatusNoContent {
		t.Fatalf("remove status = %d", res.StatusCode)
	}
	if _, ok := e.reader.Current(); ok {
		t.Fatal("card still present")
	}
}

func TestStateAndCards(t *testing.T) {
	e := newEnv(t)
	tok := e.login(t)

	res := e.do(t, http.MethodGet, "/state", tok, nil)
	var state dto.StateResponse
	if err := json.NewDecoder(res.Body).Decode(&state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Balance != 5000 || state.Bet != 500 || state.LastSpin != nil {
		t.Fatalf("state = %+v", state)
	}

	res = e.do(t, http.MethodGet, "/cards", tok, nil)
	var cards dto.CardsResponse
	if err := json.NewDecoder(res.Body).Decode(&cards); err != nil {
		t.Fatalf("decode cards: %v", err)
	}
	if !cards.Loaded || len(cards.Cards) != ledger.DefaultSlots || !cards.Cards[0].Blank {
		t.Fatalf("cards = %+v", cards)
	}

	res = e.do(t, http.MethodGet, "/stats", tok, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("stats status = %d", res.StatusCode)
	}
}

func TestDisabledLedger(t *testing.T) {
	h := NewHandler(HandlerDeps{Input: &fakeInput{}})
	w := httptest.NewRecorder()
	h.Cards(w, httptest.NewRequest(http.MethodGet, "/cards", nil))
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), "disabled") {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
}
