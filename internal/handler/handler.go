package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/taskboards/boards/internal/api"
	"github.com/taskboards/boards/internal/config"
	"github.com/taskboards/boards/internal/service"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	board  service.BoardService
	health Pinger
	cfg    *config.Config
}

func New(board service.BoardService, health Pinger, cfg *config.Config) *Handler {
	return &Handler{board: board, health: health, cfg: cfg}
}

// storeContext bounds a single request's store work by the configured timeout.
func (h *Handler) storeContext(r *http.Request) (context.Context, context.CancelFunc) {
	timeout := 5 * time.Second
	if h.cfg != nil && h.cfg.Public.StoreTimeout > 0 {
		timeout = h.cfg.Public.StoreTimeout
	}
	return context.WithTimeout(r.Context(), timeout)
}

func (h *Handler) assembler(r *http.Request) api.ResourceAssembler {
	var configured string
	if h.cfg != nil {
		configured = h.cfg.Public.PublicURL
	}
	return api.NewResourceAssembler(api.BaseURL(r, configured))
}
