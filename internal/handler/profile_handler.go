package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"worklink/internal/errors"
	"worklink/internal/service"
)

// ProfileHandler handles the caller's own profile endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// UpdateProfileRequest represents a profile update request. Role and rating
// are not accepted here.
type UpdateProfileRequest struct {
	FirstName      string `json:"first_name,omitempty" validate:"max=150"`
	LastName       string `json:"last_name,omitempty" validate:"max=150"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	Specialization string `json:"specialization,omitempty" validate:"max=255"`
	Portfolio      string `json:"portfolio,omitempty"`
}

// GetProfile godoc
// @Summary Get the calling user's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /me/profile [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	user, svcErr := h.profileService.Get(c.Request().Context(), caller)
	if svcErr != nil {
		return domainError(svcErr)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update the calling user's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile data"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /me/profile [put]
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	user, svcErr := h.profileService.Update(c.Request().Context(), caller, service.ProfileInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Specialization: req.Specialization,
		Portfolio:      req.Portfolio,
	})
	if svcErr != nil {
		return domainError(svcErr)
	}
	return c.JSON(http.StatusOK, user)
}
