// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/riddlerush/internal/dataset"
	"github.com/okian/riddlerush/internal/domain/model"
	"github.com/okian/riddlerush/internal/domain/session"
	"github.com/okian/riddlerush/internal/domain/types"
	"github.com/okian/riddlerush/internal/domain/verify"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// CheckAnswer verifies a term against a category's word list for a letter.
	CheckAnswer(ctx context.Context, searchWord, letter, term string) (model.VerificationResult, error)

	// RandomCategory draws a category and letter for the next round.
	RandomCategory(ctx context.Context) (model.Category, string, error)

	// Session lifecycle operations.
	CreateSession(ctx context.Context, gameName string, playerNames []string) (*model.GameSession, error)
	CurrentSession(ctx context.Context) (*model.GameSession, error)
	SubmitAnswer(ctx context.Context, playerID, answer string) (model.AnswerOutcome, error)
	AdvanceRound(ctx context.Context) (*model.GameSession, error)
	EndSession(ctx context.Context) (*model.GameSession, error)
	AbandonSession(ctx context.Context) (*model.GameSession, error)

	// Read operations expose leaderboard data for the current session.
	Leaderboard(ctx context.Context) ([]Entry, error)
	PlayerRank(ctx context.Context, playerID string) (Entry, error)

	// InviteURL is the address encoded into the join QR code.
	InviteURL(ctx context.Context) (string, error)
}

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	checkHandler       *CheckHandler
	categoryHandler    *CategoryHandler
	sessionHandler     *SessionHandler
	leaderboardHandler *LeaderboardHandler
	rankHandler        *RankHandler
	qrHandler          *QRHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		checkHandler:       NewCheckHandler(deps),
		categoryHandler:    NewCategoryHandler(deps),
		sessionHandler:     NewSessionHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps),
		rankHandler:        NewRankHandler(deps),
		qrHandler:          NewQRHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/check-answer", MetricsMiddleware(s.checkHandler.HandleCheckAnswer, "check_answer"))
	mux.HandleFunc("/category", MetricsMiddleware(s.categoryHandler.HandleGetCategory, "category"))
	mux.HandleFunc("/session/answer", MetricsMiddleware(s.sessionHandler.HandleSubmitAnswer, "session_answer"))
	mux.HandleFunc("/session/round", MetricsMiddleware(s.sessionHandler.HandleAdvanceRound, "session_round"))
	mux.HandleFunc("/session/end", MetricsMiddleware(s.sessionHandler.HandleEndSession, "session_end"))
	mux.HandleFunc("/session/abandon", MetricsMiddleware(s.sessionHandler.HandleAbandonSession, "session_abandon"))
	mux.HandleFunc("/session/qr", MetricsMiddleware(s.qrHandler.HandleGetQR, "session_qr"))
	mux.HandleFunc("/session", MetricsMiddleware(s.sessionHandler.HandleSession, "session"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/rank/", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError maps domain sentinel errors onto HTTP statuses so
// handlers do not repeat the translation.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrEmptyName),
		errors.Is(err, session.ErrNameTooLong),
		errors.Is(err, session.ErrDuplicateName),
		errors.Is(err, session.ErrNoPlayers),
		errors.Is(err, verify.ErrUnknownProvider):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, session.ErrNoSession),
		errors.Is(err, session.ErrPlayerNotFound),
		errors.Is(err, dataset.ErrCategoryNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, session.ErrNotActive),
		errors.Is(err, session.ErrAlreadySubmitted),
		errors.Is(err, session.ErrRosterLocked),
		errors.Is(err, session.ErrStaleResult):
		writeError(w, http.StatusConflict, "conflict", err)
	case errors.Is(err, verify.ErrNotImplemented):
		writeError(w, http.StatusNotImplemented, "not_implemented", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
