package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether a backing service answers.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	deps map[string]Pinger
	now  func() time.Time
}

// NewHealthHandler checks every named dependency on each call.
func NewHealthHandler(deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{deps: deps, now: time.Now}
}

type healthResp struct {
	Status string            `json:"status"`
	Time   string            `json:"time"`
	Deps   map[string]string `json:"deps,omitempty"`
}

// Health answers 200 when the database and the replay store respond and
// 503 naming the failing ones otherwise.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.deps))
	for name := range h.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := healthResp{Status: "ok", Deps: make(map[string]string, len(names))}
	for _, name := range names {
		if err := h.deps[name](ctx); err != nil {
			resp.Status = "degraded"
			resp.Deps[name] = err.Error()
			continue
		}
		resp.Deps[name] = "ok"
	}
	resp.Time = h.now().UTC().Format(time.RFC3339Nano)

	code := http.StatusOK
	if resp.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, resp)
}
