package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success returns a 200 JSON response with the given payload.
func Success(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Error writes the standard error envelope.
func Error(c *gin.Context, status int, kind, message string) {
	c.JSON(status, NewError(kind, message))
}

// ErrorWithDetails writes the standard error envelope naming the violated
// field and constraint.
func ErrorWithDetails(c *gin.Context, status int, kind, message, field, constraint string) {
	body := NewError(kind, message)
	body.Details = &ErrorDetails{Field: field, Constraint: constraint}
	c.JSON(status, body)
}

// AbortUnauthorized aborts the request with a 401 envelope and the
// WWW-Authenticate challenge the bearer scheme requires.
func AbortUnauthorized(c *gin.Context, kind, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, NewError(kind, message))
}
