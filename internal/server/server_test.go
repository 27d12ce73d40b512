package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrgen/qr-api/internal/api/controller"
	"qrgen/qr-api/internal/api/service"
	"qrgen/qr-api/internal/credentials"
)

func newTestServer(t *testing.T, ttl time.Duration) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := credentials.NewStore(map[string]string{
		"admin": "secure_password_123",
	})
	require.NoError(t, err)

	authService := service.NewAuthService(store, []byte("test-signing-key"), ttl)
	qrService := service.NewQRService(2)

	srv := NewServer(
		authService,
		controller.NewAuthController(authService),
		controller.NewQRController(qrService, 2000),
		controller.NewHealthController(),
	)
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

func issueToken(t *testing.T, srv *Server) string {
	t.Helper()

	rec := doJSON(t, srv, http.MethodPost, "/v1/auth/token", "", map[string]string{
		"username": "admin",
		"password": "secure_password_123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func TestHealth_NoAuth(t *testing.T) {
	srv := newTestServer(t, 30*time.Minute)

	rec := doJSON(t, srv, http.MethodGet, "/v1/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, body["timestamp"])
	assert.Equal(t, controller.Version, body["version"])
}

func TestToken_Issue(t *testing.T) {
	srv := newTestServer(t, 30*time.Minute)

	rec := doJSON(t, srv, http.MethodPost, "/v1/auth/token", "", map[string]string{
		"username": "admin",
		"password": "secure_password_123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.AccessToken)
	assert.Equal(t, "bearer", body.TokenType)
	assert.Equal(t, 1800, body.ExpiresIn)
}

func TestToken_InvalidCredentials(t *testing.T) {
	srv := newTestServer(t, 30*time.Minute)

	tests := []struct {
		name string
		body map[string]string
		code int
	}{
		{"wrong password", map[string]string{"username": "admin", "password": "nope"}, http.StatusUnauthorized},
		{"unknown user", map[string]string{"username": "ghost", "password": "secure_password_123"}, http.StatusUnauthorized},
		{"missing fields", map[string]string{"username": "admin"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/v1/auth/token", "", tt.body)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestValidate_Endpoint(t *testing.T) {
	srv := newTestServer(t, 30*time.Minute)
	token := issueToken(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/v1/auth/validate", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Valid     bool   `json:"valid"`
		Subject   string `json:"subject"`
		ExpiresAt int64  `json:"expires_at"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Valid)
	assert.Equal(t, "admin", body.Subject)
	assert.Greater(t, body.ExpiresAt, time.Now().Unix())
}

func TestValidate_ExpiredToken(t *testing.T) {
	srv := newTestServer(t, -1*time.Second)
	token := issueToken(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/v1/auth/validate", token, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "token_expired", body["error"])
}

func TestQRCode_MissingAuth(t *testing.T) {
	srv := newTestServer(t, 30*time.Minute)

	rec := doJSON(t, srv, http.MethodPost, "/v1/qr-code", "", map[string]string{"data": "Hello World!"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unauthorized", body["error"])
}

func TestQRCode_MalformedToken(t *testing.T) {
	srv := newTestServer(t, 30*time.Minute)

	rec := doJSON(t, srv, http.MethodPost, "/v1/qr-code", "garbage", map[string]string{"data": "x"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "token_malformed", body["error"])
}

func TestQRCode_GeneratePNG(t *testing.T) {
	srv := newTestServer(t, 30*time.Minute)
	token := issueToken(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/v1/qr-code", token, map[string]string{
		"data":   "Hello World!",
		"size":   "medium",
		"format": "png",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "medium", rec.Header().Get("X-QR-Size"))
	assert.Equal(t, "M", rec.Header().Get("X-Error-Correction"))
	assert.Equal(t, "binary", rec.Header().Get("X-Output-Format"))
	assert.NotEmpty(t, rec.Header().Get("X-Generation-Time-Ms"))

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestQRCode_GenerateBase64(t *testing.T) {
	srv := newTestServer(t, 30*time.Minute)
	token := issueToken(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/v1/qr-code", token, map[string]string{
		"data":          "Hello World!",
		"output_format": "base64",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body struct {
		Data            string `json:"data"`
		Format          string `json:"format"`
		Encoding        string `json:"encoding"`
		Size            string `json:"size"`
		ErrorCorrection string `json:"error_correction"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Data)
	assert.Equal(t, "png", body.Format)
	assert.Equal(t, "base64", body.Encoding)
	assert.Equal(t, "medium", body.Size)
	assert.Equal(t, "M", body.ErrorCorrection)
}

func TestQRCode_ValidationFailures(t *testing.T) {
	srv := newTestServer(t, 30*time.Minute)
	token := issueToken(t, srv)

	tests := []struct {
		name  string
		body  map[string]string
		code  int
		kind  string
		field string
	}{
		{
			name:  "empty data",
			body:  map[string]string{"data": ""},
			code:  http.StatusBadRequest,
			kind:  "validation_error",
			field: "data",
		},
		{
			name:  "oversized data",
			body:  map[string]string{"data": strings.Repeat("a", 2001)},
			code:  http.StatusRequestEntityTooLarge,
			kind:  "payload_too_large",
			field: "data",
		},
		{
			name:  "unsupported format",
			body:  map[string]string{"data": "x", "format": "bmp"},
			code:  http.StatusUnsupportedMediaType,
			kind:  "unsupported_format",
			field: "format",
		},
		{
			name:  "invalid size",
			body:  map[string]string{"data": "x", "size": "gigantic"},
			code:  http.StatusBadRequest,
			kind:  "validation_error",
			field: "size",
		},
		{
			name:  "invalid error correction",
			body:  map[string]string{"data": "x", "error_correction": "Z"},
			code:  http.StatusBadRequest,
			kind:  "validation_error",
			field: "error_correction",
		},
		{
			name:  "capacity exceeded",
			body:  map[string]string{"data": strings.Repeat("a", 800), "error_correction": "H"},
			code:  http.StatusBadRequest,
			kind:  "validation_error",
			field: "data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/v1/qr-code", token, tt.body)
			require.Equal(t, tt.code, rec.Code)

			var body struct {
				Kind    string `json:"error"`
				Message string `json:"message"`
				Details struct {
					Field      string `json:"field"`
					Constraint string `json:"constraint"`
				} `json:"details"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.kind, body.Kind)
			assert.Equal(t, tt.field, body.Details.Field)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestQRCode_AllFormats(t *testing.T) {
	srv := newTestServer(t, 30*time.Minute)
	token := issueToken(t, srv)

	tests := []struct {
		format      string
		contentType string
		prefix      []byte
	}{
		{"png", "image/png", []byte("\x89PNG")},
		{"jpeg", "image/jpeg", []byte("\xff\xd8")},
		{"svg", "image/svg+xml", []byte("<?xml")},
		{"pdf", "application/pdf", []byte("%PDF")},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/v1/qr-code", token, map[string]string{
				"data":   "https://example.com",
				"format": tt.format,
			})
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), tt.prefix))
		})
	}
}
