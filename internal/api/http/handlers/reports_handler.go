package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/diagnosis-service/internal/auth"
	"github.com/spec-kit/diagnosis-service/internal/service"
	apperrors "github.com/spec-kit/diagnosis-service/pkg/util"
)

// ReportsHandler manages the caller's diagnosis reports.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reportService}
}

// Create handles POST /api/reports. The report payload is arbitrary
// JSON; the owner and id are assigned server-side.
func (h *ReportsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	var payload map[string]any
	if err := c.BodyParser(&payload); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	report, err := h.reports.Save(c.Context(), principal.User.ID, payload)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(report.Body())
}

// List handles GET /api/reports.
func (h *ReportsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	reports, err := h.reports.List(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}

	items := make([]map[string]any, 0, len(reports))
	for i := range reports {
		items = append(items, reports[i].Body())
	}
	return c.JSON(items)
}
