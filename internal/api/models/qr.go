package models

// Size selects the rendered image dimensions.
type Size string

const (
	SizeSmall  Size = "small"  // 150x150 pixels
	SizeMedium Size = "medium" // 300x300 pixels
	SizeLarge  Size = "large"  // 600x600 pixels
)

// Valid reports whether the size is a member of the enum.
func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// Pixels returns the image edge length for the size.
func (s Size) Pixels() int {
	switch s {
	case SizeSmall:
		return 150
	case SizeLarge:
		return 600
	default:
		return 300
	}
}

// Format selects the output encoding of the rendered symbol.
type Format string

const (
	FormatPNG  Format = "png"
	FormatSVG  Format = "svg"
	FormatJPEG Format = "jpeg"
	FormatPDF  Format = "pdf"
)

// Valid reports whether the format is a member of the enum.
func (f Format) Valid() bool {
	switch f {
	case FormatPNG, FormatSVG, FormatJPEG, FormatPDF:
		return true
	}
	return false
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPDF:
		return "application/pdf"
	case FormatJPEG:
		return "image/jpeg"
	default:
		return "image/png"
	}
}

// ErrorCorrectionLevel is the QR symbol redundancy setting.
type ErrorCorrectionLevel string

const (
	ErrorCorrectionL ErrorCorrectionLevel = "L" // ~7% correction capacity
	ErrorCorrectionM ErrorCorrectionLevel = "M" // ~15% correction capacity
	ErrorCorrectionQ ErrorCorrectionLevel = "Q" // ~25% correction capacity
	ErrorCorrectionH ErrorCorrectionLevel = "H" // ~30% correction capacity
)

// Valid reports whether the level is a member of the enum.
func (l ErrorCorrectionLevel) Valid() bool {
	switch l {
	case ErrorCorrectionL, ErrorCorrectionM, ErrorCorrectionQ, ErrorCorrectionH:
		return true
	}
	return false
}

// Capacity returns the conservative byte ceiling for the level. These are the
// binary-mode limits of a version 40 symbol, the worst case for UTF-8 input.
// The rendering library owns the exact per-version capacity math.
func (l ErrorCorrectionLevel) Capacity() int {
	switch l {
	case ErrorCorrectionL:
		return 1663
	case ErrorCorrectionQ:
		return 927
	case ErrorCorrectionH:
		return 713
	default:
		return 1273
	}
}

// Encoding selects how the rendered bytes are returned to the caller.
type Encoding string

const (
	EncodingBinary Encoding = "binary"
	EncodingBase64 Encoding = "base64"
)

// Valid reports whether the encoding is a member of the enum.
func (e Encoding) Valid() bool {
	return e == EncodingBinary || e == EncodingBase64
}

// QRCodeRequest defines the structure for a QR generation request. Fields are
// bound as plain JSON; defaults and the parameter contract are applied by the
// validation package so errors name the first violated field.
type QRCodeRequest struct {
	Data            string               `json:"data"`
	Size            Size                 `json:"size"`
	Format          Format               `json:"format"`
	ErrorCorrection ErrorCorrectionLevel `json:"error_correction"`
	OutputFormat    Encoding             `json:"output_format"`
}

// QRCodeBase64Response defines the JSON envelope returned when the caller
// asks for base64 output.
type QRCodeBase64Response struct {
	Data            string `json:"data"`
	Format          string `json:"format"`
	Encoding        string `json:"encoding"`
	Size            string `json:"size"`
	ErrorCorrection string `json:"error_correction"`
}
