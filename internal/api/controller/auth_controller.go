package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"qrgen/qr-api/internal/api/models"
	"qrgen/qr-api/internal/api/response"
	"qrgen/qr-api/internal/api/service"
	"qrgen/qr-api/internal/server/middleware"
)

var tracer = otel.Tracer("controller")

// AuthController handles token issuance and validation requests.
type AuthController struct {
	authService service.AuthService
}

// NewAuthController creates a new AuthController.
func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Token handles POST /v1/auth/token.
func (ac *AuthController) Token(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "auth.Token")
	defer span.End()

	var req models.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.KindValidation, "username and password are required")
		return
	}
	span.SetAttributes(attribute.String("auth.username", req.Username))

	token, err := ac.authService.Issue(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, response.KindInvalidCredentials, "Invalid username or password")
			return
		}
		slog.ErrorContext(ctx, "token issuance failed", "error", err)
		response.Error(c, http.StatusInternalServerError, response.KindInternal, "Failed to generate access token")
		return
	}

	response.Success(c, models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(ac.authService.TTL().Seconds()),
	})
}

// Validate handles POST /v1/auth/validate. The bearer gate has already
// verified the token; this just echoes the claims back.
func (ac *AuthController) Validate(c *gin.Context) {
	_, span := tracer.Start(c.Request.Context(), "auth.Validate")
	defer span.End()

	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		response.AbortUnauthorized(c, response.KindUnauthorized, "Missing authentication token")
		return
	}

	response.Success(c, models.ValidateResponse{
		Valid:     true,
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Unix(),
	})
}
