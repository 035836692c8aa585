package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/civicline/repcall/pkg/api/errors"
	"github.com/civicline/repcall/pkg/calllogs"
	"github.com/civicline/repcall/pkg/export"
	"github.com/civicline/repcall/pkg/middleware"
	"github.com/civicline/repcall/pkg/models"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CallLogHandler handles call log HTTP requests.
type CallLogHandler struct {
	service       *calllogs.Service
	exportService *export.Service
	validator     *validator.Validate
}

// NewCallLogHandler creates a new call log handler.
func NewCallLogHandler(service *calllogs.Service, exportService *export.Service) *CallLogHandler {
	return &CallLogHandler{
		service:       service,
		exportService: exportService,
		validator:     validator.New(),
	}
}

// Create godoc
// @Summary Record a call attempt
// @Description Appends one call attempt to the user's log. Name and script title are stored as snapshots.
// @Tags Call Logs
// @Accept json
// @Produce json
// @Param request body models.CreateCallLogRequest true "Call details"
// @Success 201 {object} models.CallLogResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/call-logs [post]
func (h *CallLogHandler) Create(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var req models.CreateCallLogRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	// A session token overrides whatever the body claims.
	if userID := middleware.UserID(c); userID != "" {
		req.UserID = userID
	}
	if sessionID := middleware.SessionID(c); sessionID != "" {
		req.SessionID = sessionID
	}

	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	entry, err := h.service.Append(ctx, req)
	if err != nil {
		return errors.FromDomain(c, err)
	}

	return c.JSON(http.StatusCreated, entry)
}

// List godoc
// @Summary List call logs
// @Description Returns the user's call logs, most recent call first
// @Tags Call Logs
// @Produce json
// @Param user_id query string false "User ID (defaults to the session user)"
// @Param start_date query string false "Inclusive start (RFC3339 or YYYY-MM-DD)"
// @Param end_date query string false "Inclusive end (RFC3339 or YYYY-MM-DD)"
// @Param outcome query string false "person, voicemail or failed"
// @Param include_test_data query bool false "Include seeded test logs"
// @Success 200 {object} models.CallLogListResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/call-logs [get]
func (h *CallLogHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	filter, err := h.bindFilter(c)
	if err != nil {
		return errors.ValidationError(c, err)
	}

	list, err := h.service.List(ctx, *filter)
	if err != nil {
		return errors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, list)
}

// Stats godoc
// @Summary Aggregate call statistics
// @Description Groups the user's call logs by outcome, date, representative and script
// @Tags Call Logs
// @Produce json
// @Param user_id query string false "User ID (defaults to the session user)"
// @Param start_date query string false "Inclusive start (RFC3339 or YYYY-MM-DD)"
// @Param end_date query string false "Inclusive end (RFC3339 or YYYY-MM-DD)"
// @Param include_test_data query bool false "Include seeded test logs"
// @Success 200 {object} models.CallStatsResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/call-logs/stats [get]
func (h *CallLogHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	filter, err := h.bindFilter(c)
	if err != nil {
		return errors.ValidationError(c, err)
	}

	stats, err := h.service.Stats(ctx, *filter)
	if err != nil {
		return errors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, stats)
}

// Export godoc
// @Summary Export call logs to a file
// @Description Generates a CSV or Excel file of the user's filtered call logs
// @Tags Call Logs
// @Accept json
// @Produce json
// @Param request body models.ExportCallLogsRequest true "Export parameters"
// @Success 201 {object} models.ExportResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/call-logs/exports [post]
func (h *CallLogHandler) Export(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	var req models.ExportCallLogsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	if userID := middleware.UserID(c); userID != "" {
		req.UserID = userID
	}

	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	resp, err := h.exportService.CreateExport(ctx, req)
	if err != nil {
		return errors.FromDomain(c, err)
	}

	return c.JSON(http.StatusCreated, resp)
}

// Download godoc
// @Summary Download an export file
// @Tags Call Logs
// @Produce octet-stream
// @Param id path int true "Export ID"
// @Success 200 {file} file
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/call-logs/exports/{id}/download [get]
func (h *CallLogHandler) Download(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid export ID",
		})
	}

	path, err := h.exportService.FilePath(ctx, middleware.UserID(c), id)
	if err != nil {
		return errors.FromDomain(c, err)
	}

	return c.Attachment(path, "call-logs"+fileExtension(path))
}

func (h *CallLogHandler) bindFilter(c echo.Context) (*models.CallLogFilter, error) {
	var filter models.CallLogFilter
	if err := c.Bind(&filter); err != nil {
		return nil, err
	}

	if userID := middleware.UserID(c); userID != "" {
		filter.UserID = userID
	}

	if err := h.validator.Struct(filter); err != nil {
		return nil, err
	}
	return &filter, nil
}

func fileExtension(path string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/'; i-- {
		if path[i] == '.' {
			return path[i:]
		}
	}
	return ""
}
