package controller

import (
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"qrgen/qr-api/internal/api/models"
	"qrgen/qr-api/internal/api/response"
	"qrgen/qr-api/internal/api/service"
	"qrgen/qr-api/internal/api/validation"
)

// QRController handles QR code generation requests.
type QRController struct {
	qrService     service.QRService
	maxDataLength int
}

// NewQRController creates a new QRController.
func NewQRController(qrService service.QRService, maxDataLength int) *QRController {
	return &QRController{
		qrService:     qrService,
		maxDataLength: maxDataLength,
	}
}

// Generate handles POST /v1/qr-code.
func (qc *QRController) Generate(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "qr.Generate")
	defer span.End()

	var req models.QRCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.KindValidation, "invalid request body")
		return
	}

	validation.ApplyDefaults(&req)
	span.SetAttributes(
		attribute.Int("qr.data_length", len(req.Data)),
		attribute.String("qr.size", string(req.Size)),
		attribute.String("qr.format", string(req.Format)),
		attribute.String("qr.error_correction", string(req.ErrorCorrection)),
	)

	if verr := validation.Validate(&req, qc.maxDataLength); verr != nil {
		qc.rejectValidation(c, verr)
		return
	}

	result, err := qc.qrService.Render(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRenderFailed):
			slog.WarnContext(ctx, "qr generation rejected", "error", err)
			response.Error(c, http.StatusUnprocessableEntity, response.KindGeneration, "Failed to generate QR code for the given input")
		default:
			slog.ErrorContext(ctx, "qr generation failed", "error", err)
			response.Error(c, http.StatusInternalServerError, response.KindInternal, "An unexpected error occurred while processing your request")
		}
		return
	}

	slog.InfoContext(ctx, "qr generated",
		"data_length", len(req.Data),
		"size", req.Size,
		"format", req.Format,
		"error_correction", req.ErrorCorrection,
		"elapsed_ms", result.ElapsedMs,
	)

	c.Header("X-Generation-Time-Ms", strconv.FormatFloat(result.ElapsedMs, 'f', 2, 64))
	c.Header("X-QR-Size", string(req.Size))
	c.Header("X-Error-Correction", string(req.ErrorCorrection))
	c.Header("X-Output-Format", string(req.OutputFormat))

	if req.OutputFormat == models.EncodingBase64 {
		response.Success(c, models.QRCodeBase64Response{
			Data:            base64.StdEncoding.EncodeToString(result.Data),
			Format:          string(req.Format),
			Encoding:        string(models.EncodingBase64),
			Size:            string(req.Size),
			ErrorCorrection: string(req.ErrorCorrection),
		})
		return
	}

	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// rejectValidation maps a validation error to its HTTP status: oversized data
// is 413, an unknown format is 415, everything else is 400.
func (qc *QRController) rejectValidation(c *gin.Context, verr *validation.ValidationError) {
	status := http.StatusBadRequest
	kind := response.KindValidation

	switch {
	case verr.Field == "data" && verr.Constraint == validation.ConstraintMaxLength:
		status = http.StatusRequestEntityTooLarge
		kind = response.KindPayloadTooLarge
	case verr.Field == "format":
		status = http.StatusUnsupportedMediaType
		kind = response.KindUnsupportedFormat
	}

	response.ErrorWithDetails(c, status, kind, verr.Message, verr.Field, verr.Constraint)
}
