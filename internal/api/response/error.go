package response

// ErrorBody is the JSON error envelope returned for every 4xx/5xx. Internal
// error detail never crosses this boundary.
type ErrorBody struct {
	Kind    string        `json:"error"`
	Message string        `json:"message"`
	Details *ErrorDetails `json:"details,omitempty"`
}

// ErrorDetails names the first violated field and constraint of a rejected
// request.
type ErrorDetails struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
}

func (e ErrorBody) Error() string {
	return e.Message
}

func NewError(kind, message string) ErrorBody {
	return ErrorBody{
		Kind:    kind,
		Message: message,
	}
}

// Error kinds used across the HTTP surface.
const (
	KindInvalidCredentials = "invalid_credentials"
	KindUnauthorized       = "unauthorized"
	KindTokenExpired       = "token_expired"
	KindTokenMalformed     = "token_malformed"
	KindValidation         = "validation_error"
	KindPayloadTooLarge    = "payload_too_large"
	KindUnsupportedFormat  = "unsupported_format"
	KindGeneration         = "generation_error"
	KindInternal           = "internal_error"
)
