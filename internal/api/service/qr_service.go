package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/jpeg"
	"runtime"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"qrgen/qr-api/internal/api/models"
)

// ErrRenderFailed is returned when the QR library rejects the input or the
// symbol cannot be encoded in the requested format.
var ErrRenderFailed = errors.New("failed to generate QR code")

const jpegQuality = 85

// RenderResult is the rendered symbol plus the metadata echoed in response
// headers.
type RenderResult struct {
	Data        []byte
	ContentType string
	ElapsedMs   float64
}

// QRService renders QR symbols. Renders are CPU-bound, so they run through a
// bounded pool: one slow render must not starve token verification for other
// in-flight requests.
type QRService interface {
	Render(ctx context.Context, req *models.QRCodeRequest) (*RenderResult, error)
}

type qrService struct {
	slots chan struct{}
}

// NewQRService creates a QRService with the given number of render workers.
// A non-positive count means one worker per available CPU.
func NewQRService(workers int) QRService {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &qrService{
		slots: make(chan struct{}, workers),
	}
}

// Render encodes the request data into the requested format. It respects the
// request context while waiting for a pool slot.
func (s *qrService) Render(ctx context.Context, req *models.QRCodeRequest) (*RenderResult, error) {
	select {
	case s.slots <- struct{}{}:
		defer func() { <-s.slots }()
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	start := time.Now()

	var (
		data []byte
		err  error
	)
	switch req.Format {
	case models.FormatSVG:
		data, err = s.renderSVG(req)
	case models.FormatJPEG:
		data, err = s.jpegFrame(req)
	case models.FormatPDF:
		data, err = s.renderPDF(req)
	default:
		data, err = s.renderPNG(req)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}

	return &RenderResult{
		Data:        data,
		ContentType: req.Format.ContentType(),
		ElapsedMs:   float64(time.Since(start).Microseconds()) / 1000.0,
	}, nil
}

func (s *qrService) renderPNG(req *models.QRCodeRequest) ([]byte, error) {
	return qrcode.Encode(req.Data, recoveryLevel(req.ErrorCorrection), req.Size.Pixels())
}

func (s *qrService) renderSVG(req *models.QRCodeRequest) ([]byte, error) {
	code, err := qrcode.New(req.Data, recoveryLevel(req.ErrorCorrection))
	if err != nil {
		return nil, err
	}
	return buildSVG(code.Bitmap()), nil
}

func (s *qrService) renderPDF(req *models.QRCodeRequest) ([]byte, error) {
	frame, err := s.jpegFrame(req)
	if err != nil {
		return nil, err
	}
	edge := req.Size.Pixels()
	return buildPDF(frame, edge, edge)
}

// jpegFrame renders the symbol as a JPEG at the requested edge length. The
// PDF output embeds this frame directly as a DCTDecode image.
func (s *qrService) jpegFrame(req *models.QRCodeRequest) ([]byte, error) {
	code, err := qrcode.New(req.Data, recoveryLevel(req.ErrorCorrection))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	img := code.Image(req.Size.Pixels())
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func recoveryLevel(level models.ErrorCorrectionLevel) qrcode.RecoveryLevel {
	switch level {
	case models.ErrorCorrectionL:
		return qrcode.Low
	case models.ErrorCorrectionQ:
		return qrcode.High
	case models.ErrorCorrectionH:
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}
