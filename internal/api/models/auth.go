package models

// TokenRequest defines the structure for a token issuance request.
type TokenRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse defines the structure for a successful token issuance.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// ValidateResponse defines the structure for a successful token validation.
type ValidateResponse struct {
	Valid     bool   `json:"valid"`
	Subject   string `json:"subject"`
	ExpiresAt int64  `json:"expires_at"`
}

// HealthResponse defines the structure for the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}
