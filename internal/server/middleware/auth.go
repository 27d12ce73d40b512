package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"qrgen/qr-api/internal/api/response"
	"qrgen/qr-api/internal/api/service"
)

const claimsContextKey = "auth.claims"

// BearerAuth is a composable gate that verifies the Authorization header and
// stores the token claims in the request context. Requests without a valid
// bearer token never reach the handler.
func BearerAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.AbortUnauthorized(c, response.KindUnauthorized, "Missing authentication token")
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.AbortUnauthorized(c, response.KindUnauthorized, "Invalid authentication token format. Expected: 'Bearer <token>'")
			return
		}

		claims, err := authService.Verify(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTokenExpired):
				response.AbortUnauthorized(c, response.KindTokenExpired, "Token has expired")
			default:
				response.AbortUnauthorized(c, response.KindTokenMalformed, "Invalid authentication token")
			}
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// RequireScope rejects authenticated requests whose token does not carry the
// given permission.
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok || !claims.HasScope(scope) {
			response.AbortUnauthorized(c, response.KindUnauthorized, "Token does not grant the required permission")
			return
		}
		c.Next()
	}
}

// ClaimsFromContext returns the verified claims stored by BearerAuth.
func ClaimsFromContext(c *gin.Context) (*service.Claims, bool) {
	v, ok := c.Get(claimsContextKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*service.Claims)
	return claims, ok
}
