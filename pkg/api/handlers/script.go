package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/civicline/repcall/pkg/api/errors"
	"github.com/civicline/repcall/pkg/models"
	"github.com/civicline/repcall/pkg/scripts"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ScriptHandler handles call script HTTP requests.
type ScriptHandler struct {
	service   *scripts.Service
	validator *validator.Validate
}

// NewScriptHandler creates a new script handler.
func NewScriptHandler(service *scripts.Service) *ScriptHandler {
	return &ScriptHandler{
		service:   service,
		validator: validator.New(),
	}
}

// List godoc
// @Summary List call scripts
// @Description Returns all call scripts, newest first
// @Tags Scripts
// @Produce json
// @Success 200 {array} models.ScriptResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/scripts [get]
func (h *ScriptHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	list, err := h.service.List(ctx)
	if err != nil {
		return errors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, list)
}

// Get godoc
// @Summary Get a call script
// @Tags Scripts
// @Produce json
// @Param id path int true "Script ID"
// @Success 200 {object} models.ScriptResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/scripts/{id} [get]
func (h *ScriptHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid script ID",
		})
	}

	script, err := h.service.Get(ctx, id)
	if err != nil {
		return errors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, script)
}

// Create godoc
// @Summary Create a call script
// @Tags Scripts
// @Accept json
// @Produce json
// @Param request body models.CreateScriptRequest true "Script details"
// @Success 201 {object} models.ScriptResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/scripts [post]
func (h *ScriptHandler) Create(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var req models.CreateScriptRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	script, err := h.service.Create(ctx, req)
	if err != nil {
		return errors.FromDomain(c, err)
	}

	return c.JSON(http.StatusCreated, script)
}

// Update godoc
// @Summary Update a call script
// @Description Merges the provided fields; omitted fields keep their value
// @Tags Scripts
// @Accept json
// @Produce json
// @Param id path int true "Script ID"
// @Param request body models.UpdateScriptRequest true "Fields to update"
// @Success 200 {object} models.ScriptResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/scripts/{id} [put]
func (h *ScriptHandler) Update(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid script ID",
		})
	}

	var req models.UpdateScriptRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	script, err := h.service.Update(ctx, id, req)
	if err != nil {
		return errors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, script)
}

// Delete godoc
// @Summary Delete a call script
// @Description Permanently removes a script; past call logs keep their copied title
// @Tags Scripts
// @Produce json
// @Param id path int true "Script ID"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/scripts/{id} [delete]
func (h *ScriptHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid script ID",
		})
	}

	if err := h.service.Delete(ctx, id); err != nil {
		return errors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, models.MessageResponse{Message: "Script deleted"})
}
