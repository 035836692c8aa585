// Package scripts implements call-script CRUD. Scripts are independent of
// call logs, which keep their own denormalized copy of the title.
package scripts

import (
	"context"
	"errors"
	"time"

	"github.com/civicline/repcall/pkg/domain"
	"github.com/civicline/repcall/pkg/models"
	"github.com/civicline/repcall/pkg/validation"
	"gorm.io/gorm"
)

// Service handles call script business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new script service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns all scripts, newest first.
func (s *Service) List(ctx context.Context) ([]models.ScriptResponse, error) {
	var rows []domain.CallScript
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, domain.NewPersistenceError(err)
	}

	response := make([]models.ScriptResponse, 0, len(rows))
	for i := range rows {
		response = append(response, toResponse(&rows[i]))
	}
	return response, nil
}

// Get returns one script by id.
func (s *Service) Get(ctx context.Context, id uint) (*models.ScriptResponse, error) {
	var script domain.CallScript
	if err := s.db.WithContext(ctx).First(&script, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("script")
		}
		return nil, domain.NewPersistenceError(err)
	}

	response := toResponse(&script)
	return &response, nil
}

// Create persists a new script.
func (s *Service) Create(ctx context.Context, req models.CreateScriptRequest) (*models.ScriptResponse, error) {
	title := validation.SanitizeInput(req.Title)
	content := validation.SanitizeInput(req.Content)
	if title == "" {
		return nil, domain.NewValidationError("title is required")
	}
	if content == "" {
		return nil, domain.NewValidationError("content is required")
	}

	script := domain.CallScript{Title: title, Content: content}
	if err := s.db.WithContext(ctx).Create(&script).Error; err != nil {
		return nil, domain.NewPersistenceError(err)
	}

	response := toResponse(&script)
	return &response, nil
}

// Update merges the provided fields into an existing script; nil fields
// keep their current value.
func (s *Service) Update(ctx context.Context, id uint, req models.UpdateScriptRequest) (*models.ScriptResponse, error) {
	var script domain.CallScript
	if err := s.db.WithContext(ctx).First(&script, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("script")
		}
		return nil, domain.NewPersistenceError(err)
	}

	if req.Title != nil {
		title := validation.SanitizeInput(*req.Title)
		if title == "" {
			return nil, domain.NewValidationError("title cannot be empty")
		}
		script.Title = title
	}
	if req.Content != nil {
		content := validation.SanitizeInput(*req.Content)
		if content == "" {
			return nil, domain.NewValidationError("content cannot be empty")
		}
		script.Content = content
	}

	if err := s.db.WithContext(ctx).Save(&script).Error; err != nil {
		return nil, domain.NewPersistenceError(err)
	}

	response := toResponse(&script)
	return &response, nil
}

// Delete removes a script permanently. Call logs that referenced it keep
// their copied title.
func (s *Service) Delete(ctx context.Context, id uint) error {
	var script domain.CallScript
	if err := s.db.WithContext(ctx).First(&script, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewNotFoundError("script")
		}
		return domain.NewPersistenceError(err)
	}

	if err := s.db.WithContext(ctx).Delete(&script).Error; err != nil {
		return domain.NewPersistenceError(err)
	}
	return nil
}

func toResponse(script *domain.CallScript) models.ScriptResponse {
	return models.ScriptResponse{
		ID:        script.ID,
		Title:     script.Title,
		Content:   script.Content,
		CreatedAt: script.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: script.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
