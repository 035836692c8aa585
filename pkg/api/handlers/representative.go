package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/civicline/repcall/pkg/api/errors"
	"github.com/civicline/repcall/pkg/models"
	"github.com/civicline/repcall/pkg/representatives"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RepresentativeHandler handles representative-related HTTP requests.
type RepresentativeHandler struct {
	service   *representatives.Service
	validator *validator.Validate
}

// NewRepresentativeHandler creates a new representative handler.
func NewRepresentativeHandler(service *representatives.Service) *RepresentativeHandler {
	return &RepresentativeHandler{
		service:   service,
		validator: validator.New(),
	}
}

// GetByZip godoc
// @Summary List representatives for a zip code
// @Description Returns all active representatives for a zip code with their phone numbers
// @Tags Representatives
// @Produce json
// @Param zip_code path string true "5-digit or ZIP+4 zip code"
// @Success 200 {array} models.RepresentativeResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/representatives/{zip_code} [get]
func (h *RepresentativeHandler) GetByZip(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	reps, err := h.service.GetByZip(ctx, c.Param("zip_code"))
	if err != nil {
		return errors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, reps)
}

// Create godoc
// @Summary Add a representative
// @Description Creates a representative for a zip code, with one or more phone numbers
// @Tags Representatives
// @Accept json
// @Produce json
// @Param request body models.CreateRepresentativeRequest true "Representative details"
// @Success 201 {object} models.RepresentativeResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/representatives [post]
func (h *RepresentativeHandler) Create(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var req models.CreateRepresentativeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	rep, err := h.service.Create(ctx, req)
	if err != nil {
		return errors.FromDomain(c, err)
	}

	return c.JSON(http.StatusCreated, rep)
}

// Delete godoc
// @Summary Remove a representative
// @Description Soft-deletes a representative; it disappears from lookups but stays recoverable
// @Tags Representatives
// @Produce json
// @Param id path int true "Representative ID"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/representatives/{id} [delete]
func (h *RepresentativeHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid representative ID",
		})
	}

	if err := h.service.SoftDelete(ctx, id); err != nil {
		return errors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, models.MessageResponse{Message: "Representative deleted"})
}

// AddPhone godoc
// @Summary Add a phone number to a representative
// @Tags Representatives
// @Accept json
// @Produce json
// @Param id path int true "Representative ID"
// @Param request body models.AddPhoneRequest true "Phone details"
// @Success 201 {object} models.PhoneResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/representatives/{id}/phones [post]
func (h *RepresentativeHandler) AddPhone(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid representative ID",
		})
	}

	var req models.AddPhoneRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	phone, err := h.service.AddPhone(ctx, id, req)
	if err != nil {
		return errors.FromDomain(c, err)
	}

	return c.JSON(http.StatusCreated, phone)
}

// DeletePhone godoc
// @Summary Remove a phone number from a representative
// @Tags Representatives
// @Produce json
// @Param id path int true "Representative ID"
// @Param phone_id path int true "Phone ID"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/representatives/{id}/phones/{phone_id} [delete]
func (h *RepresentativeHandler) DeletePhone(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid representative ID",
		})
	}

	phoneID, err := parseID(c.Param("phone_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid phone ID",
		})
	}

	if err := h.service.DeletePhone(ctx, id, phoneID); err != nil {
		return errors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, models.MessageResponse{Message: "Phone number deleted"})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
