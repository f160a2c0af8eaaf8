// Package http provides http transport for demand analytics
package http

import (
	stdhttp "net/http"

	"openslots/internal/modkit/httpkit"
	"openslots/internal/services/trends/domain"
	svc "openslots/internal/services/trends/service"
)

// Register mounts trends endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// demand leaderboard over a trailing window
	httpkit.PostJSON[domain.TopInput](r, "/top", h.top)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /trends/top Trends trendsTop
// @Summary Top searched city and category pairs
// @Tags Trends
// @Accept json
// @Produce json
// @Param payload body domain.TopInput true "Window"
// @Success 200 {object} domain.TopResponse "ok"
// @Router /trends/top [post]
func (h *handlers) top(r *stdhttp.Request, in domain.TopInput) (any, error) {
	return h.svc.Top(r.Context(), in)
}
