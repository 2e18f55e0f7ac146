package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/diagnosis-service/internal/api/dto"
	"github.com/spec-kit/diagnosis-service/internal/auth"
	"github.com/spec-kit/diagnosis-service/internal/service"
	apperrors "github.com/spec-kit/diagnosis-service/pkg/util"
)

// ProfileHandler mutates the caller's own profile.
type ProfileHandler struct {
	auth *service.AuthService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(authService *service.AuthService) *ProfileHandler {
	return &ProfileHandler{auth: authService}
}

// Update handles PUT /api/user/profile.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" && (req.OldPassword == "" || req.NewPassword == "") {
		return apperrors.NewValidationError("nothing to update", nil)
	}

	user, err := h.auth.UpdateProfile(c.Context(), principal.User.ID, service.ProfileChanges{
		Name:        req.Name,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.ProfileResponse{
		Name:  user.Username,
		Email: user.Email,
	})
}
