package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping() error
}

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	db      Pinger
	version string
}

func NewHealthController(db Pinger, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
	}
}

// Status reports liveness and store connectivity.
// GET /health
func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "ok"

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			requestLogger(c).Warn("health check failed", zap.Error(err))
			checks["database"] = "unavailable"
			status = "unavailable"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	statusCode := http.StatusOK
	if status != "ok" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:  status,
		Time:    time.Now().UTC().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	})
}
