package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/civicline/repcall/pkg/api/errors"
	"github.com/civicline/repcall/pkg/models"
	"github.com/civicline/repcall/pkg/suggestions"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// SuggestionHandler handles suggestion-related HTTP requests.
type SuggestionHandler struct {
	service   *suggestions.Service
	validator *validator.Validate
}

// NewSuggestionHandler creates a new suggestion handler.
func NewSuggestionHandler(service *suggestions.Service) *SuggestionHandler {
	return &SuggestionHandler{
		service:   service,
		validator: validator.New(),
	}
}

// GetByZip godoc
// @Summary List candidate suggestions for a zip code
// @Description Returns externally-sourced representative suggestions not yet promoted
// @Tags Suggestions
// @Produce json
// @Param zip_code path string true "5-digit or ZIP+4 zip code"
// @Success 200 {array} models.SuggestionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/suggestions/{zip_code} [get]
func (h *SuggestionHandler) GetByZip(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	list, err := h.service.GetByZip(ctx, c.Param("zip_code"))
	if err != nil {
		return errors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, list)
}

// Accept godoc
// @Summary Promote suggestions into representatives
// @Description Copies the selected suggestions into the authoritative table, skipping duplicates
// @Tags Suggestions
// @Accept json
// @Produce json
// @Param request body models.AcceptSuggestionsRequest true "Zip code and suggestion IDs"
// @Success 200 {object} models.AcceptSuggestionsResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/suggestions/accept [post]
func (h *SuggestionHandler) Accept(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	var req models.AcceptSuggestionsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	result, err := h.service.Accept(ctx, req)
	if err != nil {
		return errors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, result)
}
