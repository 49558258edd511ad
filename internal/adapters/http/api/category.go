package api

import (
	"context"
	"net/http"

	"github.com/okian/riddlerush/internal/domain/model"
)

// CategoryDependencies defines the interface for category draws.
type CategoryDependencies interface {
	RandomCategory(ctx context.Context) (model.Category, string, error)
}

// CategoryHandler handles random category requests.
type CategoryHandler struct {
	deps CategoryDependencies
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(deps CategoryDependencies) *CategoryHandler {
	return &CategoryHandler{deps: deps}
}

// categoryResponse pairs a drawn category with its round letter.
type categoryResponse struct {
	Category model.Category `json:"category"`
	Letter   string         `json:"letter"`
}

// HandleGetCategory handles GET /category requests.
func (h *CategoryHandler) HandleGetCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	category, letter, err := h.deps.RandomCategory(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categoryResponse{Category: category, Letter: letter})
}
