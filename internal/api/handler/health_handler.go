package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/api/response"
	"github.com/RoyceAzure/lab/bookstore/internal/apperr"
	"golang.org/x/sync/errgroup"
)

// Pinger 任何可以檢查連線的依賴, 例如 db.IStore 與 redis cache
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	deps    map[string]Pinger
	timeout time.Duration
}

func NewHealthHandler(deps map[string]Pinger, timeout time.Duration) *HealthHandler {
	return &HealthHandler{
		deps:    deps,
		timeout: timeout,
	}
}

// @Summary health check
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=map[string]string} "all dependencies reachable"
// @Failure 503 {object} response.ResponseError "dependency unavailable"
// @Router /healthz [get]
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	for name, dep := range h.deps {
		g.Go(func() error {
			if err := dep.Ping(ctx); err != nil {
				return apperr.Transient(name+" unavailable", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	status := make(map[string]string, len(h.deps))
	for name := range h.deps {
		status[name] = "ok"
	}
	response.SuccessJSON(w, status)
}
