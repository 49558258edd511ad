package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/riddlerush/internal/domain/model"
)

// CheckDependencies defines the interface for answer verification.
type CheckDependencies interface {
	CheckAnswer(ctx context.Context, searchWord, letter, term string) (model.VerificationResult, error)
}

// CheckHandler handles stateless answer checks.
type CheckHandler struct {
	deps CheckDependencies
}

// NewCheckHandler creates a new check handler.
func NewCheckHandler(deps CheckDependencies) *CheckHandler {
	return &CheckHandler{deps: deps}
}

// checkRequest mirrors the body of POST /check-answer.
type checkRequest struct {
	SearchWord string `json:"searchWord"`
	Letter     string `json:"letter"`
	Term       string `json:"term"`
}

func (c checkRequest) validate() error {
	switch {
	case strings.TrimSpace(c.SearchWord) == "":
		return fmt.Errorf("%w: missing searchWord", ErrBadRequest)
	case strings.TrimSpace(c.Letter) == "":
		return fmt.Errorf("%w: missing letter", ErrBadRequest)
	case strings.TrimSpace(c.Term) == "":
		return fmt.Errorf("%w: missing term", ErrBadRequest)
	}
	return nil
}

// HandleCheckAnswer handles POST /check-answer requests.
func (h *CheckHandler) HandleCheckAnswer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	res, err := h.deps.CheckAnswer(r.Context(), req.SearchWord, req.Letter, req.Term)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
