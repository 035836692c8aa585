package handlers

import (
	"net/http"
	"time"

	"github.com/civicline/repcall/pkg/api/errors"
	"github.com/civicline/repcall/pkg/auth"
	"github.com/civicline/repcall/pkg/domain"
	"github.com/civicline/repcall/pkg/models"
	"github.com/civicline/repcall/pkg/validation"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// SessionHandler issues the optional session tokens that attribute call
// logs to a caller across requests.
type SessionHandler struct {
	jwtSecret       string
	expirationHours int
	validator       *validator.Validate
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(jwtSecret string, expirationHours int) *SessionHandler {
	return &SessionHandler{
		jwtSecret:       jwtSecret,
		expirationHours: expirationHours,
		validator:       validator.New(),
	}
}

// Create godoc
// @Summary Start a calling session
// @Description Issues a bearer token tying subsequent call logs to one user and session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param request body models.CreateSessionRequest true "Optional user ID"
// @Success 201 {object} models.SessionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/sessions [post]
func (h *SessionHandler) Create(c echo.Context) error {
	var req models.CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	userID := validation.SanitizeInput(req.UserID)
	if userID == "" {
		userID = domain.DefaultUserID
	}

	sessionID, err := auth.NewSessionID()
	if err != nil {
		return errors.InternalError(c, err)
	}

	token, err := auth.GenerateJWT(userID, sessionID, h.jwtSecret, h.expirationHours)
	if err != nil {
		return errors.InternalError(c, err)
	}

	expiresAt := time.Now().Add(time.Duration(h.expirationHours) * time.Hour)

	return c.JSON(http.StatusCreated, models.SessionResponse{
		Token:     token,
		UserID:    userID,
		SessionID: sessionID,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	})
}
