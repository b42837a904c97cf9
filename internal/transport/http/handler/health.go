package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"echoai/internal/config"
	"echoai/internal/model"
)

type HealthHandler struct {
	cfg *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// Check reports degraded when no generation provider credential is configured.
func (h *HealthHandler) Check(c *gin.Context) {
	status, message := "healthy", "All services operational"
	if !h.cfg.Configured() {
		status, message = "degraded", "No LLM API keys configured"
	}

	c.JSON(http.StatusOK, model.HealthResponse{
		Status:    status,
		Message:   message,
		Version:   h.cfg.App.Version,
		Timestamp: time.Now(),
	})
}
