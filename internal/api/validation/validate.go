package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"qrgen/qr-api/internal/api/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
}

// Constraint identifiers reported in validation errors.
const (
	ConstraintMinLength = "min_length"
	ConstraintMaxLength = "max_length"
	ConstraintEnum      = "enum"
	ConstraintURL       = "url"
	ConstraintEncoding  = "encoding"
	ConstraintCapacity  = "capacity"
)

// ValidationError identifies the first violated field of a QR request.
type ValidationError struct {
	Field      string
	Constraint string
	Message    string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var urlPattern = regexp.MustCompile(
	`^https?://` +
		`(?:(?:[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?\.)+[A-Za-z]{2,6}\.?|` +
		`localhost|` +
		`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
		`(?::\d+)?` +
		`(?:/?|[/?]\S+)$`)

// ApplyDefaults fills unset optional fields with the documented defaults.
func ApplyDefaults(req *models.QRCodeRequest) {
	if req.Size == "" {
		req.Size = models.SizeMedium
	}
	if req.Format == "" {
		req.Format = models.FormatPNG
	}
	if req.ErrorCorrection == "" {
		req.ErrorCorrection = models.ErrorCorrectionM
	}
	if req.OutputFormat == "" {
		req.OutputFormat = models.EncodingBinary
	}
}

// Validate checks a QR request against the parameter contract and returns the
// first violation. Check order is fixed: data presence, data length, size
// enum, format enum, error_correction enum, output_format enum, capacity.
func Validate(req *models.QRCodeRequest, maxDataLength int) *ValidationError {
	if err := validate.Var(req.Data, "required"); err != nil || strings.TrimSpace(req.Data) == "" {
		return &ValidationError{
			Field:      "data",
			Constraint: ConstraintMinLength,
			Message:    "Data cannot be empty",
		}
	}

	if err := validate.Var(req.Data, fmt.Sprintf("max=%d", maxDataLength)); err != nil {
		return &ValidationError{
			Field:      "data",
			Constraint: ConstraintMaxLength,
			Message:    fmt.Sprintf("Data exceeds maximum length of %d characters", maxDataLength),
		}
	}

	if !utf8.ValidString(req.Data) {
		return &ValidationError{
			Field:      "data",
			Constraint: ConstraintEncoding,
			Message:    "Data contains invalid characters",
		}
	}

	// URL-like payloads must be well formed; a QR code of a broken link is
	// never what the caller wanted.
	if hasURLScheme(req.Data) && !urlPattern.MatchString(req.Data) {
		return &ValidationError{
			Field:      "data",
			Constraint: ConstraintURL,
			Message:    "Invalid URL format",
		}
	}

	if err := validate.Var(req.Size, "oneof=small medium large"); err != nil {
		return &ValidationError{
			Field:      "size",
			Constraint: ConstraintEnum,
			Message:    fmt.Sprintf("Invalid size %q. Valid sizes: small, medium, large", req.Size),
		}
	}

	if err := validate.Var(req.Format, "oneof=png svg jpeg pdf"); err != nil {
		return &ValidationError{
			Field:      "format",
			Constraint: ConstraintEnum,
			Message:    fmt.Sprintf("Invalid format %q. Valid formats: png, svg, jpeg, pdf", req.Format),
		}
	}

	if err := validate.Var(req.ErrorCorrection, "oneof=L M Q H"); err != nil {
		return &ValidationError{
			Field:      "error_correction",
			Constraint: ConstraintEnum,
			Message:    fmt.Sprintf("Invalid error correction %q. Valid levels: L, M, Q, H", req.ErrorCorrection),
		}
	}

	if err := validate.Var(req.OutputFormat, "oneof=binary base64"); err != nil {
		return &ValidationError{
			Field:      "output_format",
			Constraint: ConstraintEnum,
			Message:    fmt.Sprintf("Invalid output format %q. Valid encodings: binary, base64", req.OutputFormat),
		}
	}

	if size := len(req.Data); size > req.ErrorCorrection.Capacity() {
		return &ValidationError{
			Field:      "data",
			Constraint: ConstraintCapacity,
			Message: fmt.Sprintf(
				"Data too large for error correction level %s. Maximum: %d bytes, got: %d",
				req.ErrorCorrection, req.ErrorCorrection.Capacity(), size),
		}
	}

	return nil
}

func hasURLScheme(data string) bool {
	return strings.HasPrefix(data, "http://") ||
		strings.HasPrefix(data, "https://") ||
		strings.HasPrefix(data, "ftp://")
}
