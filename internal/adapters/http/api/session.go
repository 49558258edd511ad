package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/riddlerush/internal/domain/model"
)

// SessionDependencies defines the interface for session lifecycle operations.
type SessionDependencies interface {
	CreateSession(ctx context.Context, gameName string, playerNames []string) (*model.GameSession, error)
	CurrentSession(ctx context.Context) (*model.GameSession, error)
	SubmitAnswer(ctx context.Context, playerID, answer string) (model.AnswerOutcome, error)
	AdvanceRound(ctx context.Context) (*model.GameSession, error)
	EndSession(ctx context.Context) (*model.GameSession, error)
	AbandonSession(ctx context.Context) (*model.GameSession, error)
}

// SessionHandler handles session lifecycle requests.
type SessionHandler struct {
	deps SessionDependencies
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(deps SessionDependencies) *SessionHandler {
	return &SessionHandler{deps: deps}
}

// createSessionRequest mirrors the body of POST /session.
type createSessionRequest struct {
	GameName string   `json:"gameName"`
	Players  []string `json:"players"`
}

// answerRequest mirrors the body of POST /session/answer.
type answerRequest struct {
	PlayerID string `json:"playerId"`
	Answer   string `json:"answer"`
}

func (a answerRequest) validate() error {
	if strings.TrimSpace(a.PlayerID) == "" {
		return fmt.Errorf("%w: missing playerId", ErrBadRequest)
	}
	return nil
}

// HandleSession dispatches POST and GET /session requests.
func (h *SessionHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleCreate(w, r)
	case http.MethodGet:
		h.handleGet(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *SessionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	sess, err := h.deps.CreateSession(r.Context(), req.GameName, req.Players)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (h *SessionHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	sess, err := h.deps.CurrentSession(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// HandleSubmitAnswer handles POST /session/answer requests.
func (h *SessionHandler) HandleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	outcome, err := h.deps.SubmitAnswer(r.Context(), req.PlayerID, req.Answer)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

// HandleAdvanceRound handles POST /session/round requests.
func (h *SessionHandler) HandleAdvanceRound(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	sess, err := h.deps.AdvanceRound(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// HandleEndSession handles POST /session/end requests.
func (h *SessionHandler) HandleEndSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	sess, err := h.deps.EndSession(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// HandleAbandonSession handles POST /session/abandon requests.
func (h *SessionHandler) HandleAbandonSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	sess, err := h.deps.AbandonSession(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}
