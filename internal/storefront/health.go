package storefront

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	domain "github.com/donaldgifford/sleekshop-go/pkg/types"
)

// StatusChecker reports whether the backend answers.
type StatusChecker interface {
	Status(ctx context.Context) (*domain.Envelope[json.RawMessage], error)
}

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	checker StatusChecker
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(c StatusChecker) *HealthHandler {
	return &HealthHandler{checker: c}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 if the backend answers get_status, 503 otherwise.
func (h *HealthHandler) Readyz(c echo.Context) error {
	env, err := h.checker.Status(c.Request().Context())
	if err != nil || !env.OK() {
		return c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: "unavailable"})
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}
