package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"qrgen/qr-api/internal/api/controller"
	"qrgen/qr-api/internal/api/response"
	"qrgen/qr-api/internal/api/service"
	"qrgen/qr-api/internal/server/middleware"
)

// Server owns the gin engine and the route table. Each request walks the
// same pipeline: logging, recovery, then the bearer gate for protected
// routes, then the handler. No state is retained between requests.
type Server struct {
	engine *gin.Engine
}

// NewServer builds the engine and registers all routes. The health and token
// endpoints skip the bearer gate; everything else behind /v1 requires a
// verified token.
func NewServer(
	authService service.AuthService,
	authController *controller.AuthController,
	qrController *controller.QRController,
	healthController *controller.HealthController,
) *Server {
	engine := gin.New()
	engine.Use(middleware.RequestLogger(), gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.ErrorContext(c.Request.Context(), "panic recovered", "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.NewError(
			response.KindInternal, "An unexpected error occurred while processing your request"))
	}))

	v1 := engine.Group("/v1")
	v1.GET("/health", healthController.Check)
	v1.POST("/auth/token", authController.Token)

	bearer := middleware.BearerAuth(authService)
	v1.POST("/auth/validate", bearer, authController.Validate)
	v1.POST("/qr-code", bearer, middleware.RequireScope(service.ScopeGenerate), qrController.Generate)

	return &Server{engine: engine}
}

// Engine exposes the underlying handler for the http.Server.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
