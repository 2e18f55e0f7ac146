package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/diagnosis-service/internal/api/dto"
	"github.com/spec-kit/diagnosis-service/internal/service"
	apperrors "github.com/spec-kit/diagnosis-service/pkg/util"
)

// DiagnosisHandler exposes the prediction, chat, and image endpoints.
type DiagnosisHandler struct {
	diagnosis *service.DiagnosisService
}

// NewDiagnosisHandler constructs handler.
func NewDiagnosisHandler(diagnosisService *service.DiagnosisService) *DiagnosisHandler {
	return &DiagnosisHandler{diagnosis: diagnosisService}
}

// Predict handles POST /predict.
func (h *DiagnosisHandler) Predict(c *fiber.Ctx) error {
	var req dto.PredictRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.diagnosis.Predict(c.Context(), req.Symptoms)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// Chat handles POST /chat.
func (h *DiagnosisHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	answer, err := h.diagnosis.Chat(c.Context(), req.Question)
	if err != nil {
		return err
	}
	return c.JSON(answer)
}

// AnalyzeImage handles POST /analyze-image (multipart upload).
func (h *DiagnosisHandler) AnalyzeImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return apperrors.NewValidationError("no image file provided", nil)
	}
	if fileHeader.Filename == "" {
		return apperrors.NewValidationError("no image file selected", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewValidationError("invalid image file", nil)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return apperrors.NewValidationError("invalid image file", nil)
	}

	result, err := h.diagnosis.AnalyzeImage(c.Context(), fileHeader.Filename, data)
	if err != nil {
		return err
	}
	return c.JSON(result)
}
