package handlers

import (
	"net/http"

	"github.com/civicline/repcall/pkg/api/errors"
	"github.com/civicline/repcall/pkg/models"
	"github.com/civicline/repcall/pkg/phone"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// PhoneHandler exposes advisory phone number checks. These never gate
// writes; the storage format is enforced by the services themselves.
type PhoneHandler struct {
	validator *validator.Validate
}

// NewPhoneHandler creates a new phone handler.
func NewPhoneHandler() *PhoneHandler {
	return &PhoneHandler{validator: validator.New()}
}

// Validate godoc
// @Summary Validate a phone number
// @Description Checks a phone number against carrier metadata and reports its type
// @Tags Phone
// @Accept json
// @Produce json
// @Param request body models.PhoneValidateRequest true "Phone number and optional region"
// @Success 200 {object} phone.ValidationResult
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/phone/validate [post]
func (h *PhoneHandler) Validate(c echo.Context) error {
	var req models.PhoneValidateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	result, err := phone.Validate(req.Phone, req.Region)
	if err != nil {
		return errors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// Normalize godoc
// @Summary Normalize a phone number to E.164
// @Tags Phone
// @Accept json
// @Produce json
// @Param request body models.PhoneValidateRequest true "Phone number and optional region"
// @Success 200 {object} models.PhoneNormalizeResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/phone/normalize [post]
func (h *PhoneHandler) Normalize(c echo.Context) error {
	var req models.PhoneValidateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	e164, err := phone.Normalize(req.Phone, req.Region)
	if err != nil {
		return errors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, models.PhoneNormalizeResponse{
		Input:      req.Phone,
		E164Format: e164,
	})
}
