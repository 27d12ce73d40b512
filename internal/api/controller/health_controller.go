package controller

import (
	"time"

	"github.com/gin-gonic/gin"

	"qrgen/qr-api/internal/api/models"
	"qrgen/qr-api/internal/api/response"
)

// Version is the service version reported by the health endpoint.
const Version = "1.0.0"

// HealthController serves the unauthenticated health check.
type HealthController struct{}

// NewHealthController creates a new HealthController.
func NewHealthController() *HealthController {
	return &HealthController{}
}

// Check handles GET /v1/health.
func (hc *HealthController) Check(c *gin.Context) {
	response.Success(c, models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   Version,
	})
}
