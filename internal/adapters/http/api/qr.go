package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	qrcode "github.com/skip2/go-qrcode"
)

// QR image size bounds in pixels.
const (
	defaultQRSize = 256
	maxQRSize     = 1024
)

// QRDependencies defines the interface for invite QR generation.
type QRDependencies interface {
	InviteURL(ctx context.Context) (string, error)
}

// QRHandler serves the join link for the current session as a QR code.
type QRHandler struct {
	deps QRDependencies
}

// NewQRHandler creates a new QR handler.
func NewQRHandler(deps QRDependencies) *QRHandler {
	return &QRHandler{deps: deps}
}

// HandleGetQR handles GET /session/qr?size=N requests with a PNG body.
func (h *QRHandler) HandleGetQR(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	size := defaultQRSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxQRSize {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: invalid size", ErrBadRequest))
			return
		}
		size = n
	}
	target, err := h.deps.InviteURL(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	png, err := qrcode.Encode(target, qrcode.Medium, size)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%w: %v", ErrEncode, err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
