// Package suggestions manages externally-sourced candidate representatives
// and their promotion into the authoritative table.
package suggestions

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/civicline/repcall/pkg/cache"
	"github.com/civicline/repcall/pkg/domain"
	"github.com/civicline/repcall/pkg/models"
	"github.com/civicline/repcall/pkg/representatives"
	"github.com/civicline/repcall/pkg/validation"
	"gorm.io/gorm"
)

// Service handles suggestion queries and promotion
type Service struct {
	db    *gorm.DB
	cache *cache.Client
}

// NewService creates a new suggestion service
func NewService(db *gorm.DB, cacheClient *cache.Client) *Service {
	return &Service{
		db:    db,
		cache: cacheClient,
	}
}

// GetByZip returns all candidate suggestions for a zip code with their
// phone numbers.
func (s *Service) GetByZip(ctx context.Context, zipCode string) ([]models.SuggestionResponse, error) {
	zip, err := validation.ZipCode(zipCode)
	if err != nil {
		return nil, err
	}

	var rows []domain.RepresentativeSuggestion
	err = s.db.WithContext(ctx).
		Where("zip_code = ?", zip).
		Preload("Phones", func(db *gorm.DB) *gorm.DB {
			return db.Order("representative_suggestion_phones.id")
		}).
		Order("representative_suggestions.id").
		Find(&rows).Error
	if err != nil {
		return nil, domain.NewPersistenceError(err)
	}

	response := make([]models.SuggestionResponse, 0, len(rows))
	for i := range rows {
		response = append(response, toResponse(&rows[i]))
	}
	return response, nil
}

// Accept promotes a batch of suggestion ids into the representatives table.
// Non-numeric ids reject the whole request. Within the batch, ids whose
// suggestion is missing or belongs to another zip code are skipped
// silently, and duplicates of an existing live representative are skipped
// by name. Everything added in one call commits or rolls back together.
func (s *Service) Accept(ctx context.Context, req models.AcceptSuggestionsRequest) (*models.AcceptSuggestionsResponse, error) {
	zip, err := validation.ZipCode(req.ZipCode)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(req.SuggestionIDs))
	for _, raw := range req.SuggestionIDs {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return nil, domain.NewValidationError(fmt.Sprintf("invalid suggestion id: %q", raw))
		}
		ids = append(ids, uint(id))
	}

	var added []models.RepresentativeResponse
	var skipped []string

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range ids {
			var suggestion domain.RepresentativeSuggestion
			err := tx.Preload("Phones").First(&suggestion, id).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}

			// Stale or foreign ids are dropped rather than failing the batch.
			if suggestion.ZipCode != zip {
				continue
			}

			var count int64
			err = tx.Model(&domain.Representative{}).
				Where("zip_code = ? AND first_name = ? AND last_name = ? AND position = ?",
					suggestion.ZipCode, suggestion.FirstName, suggestion.LastName, suggestion.Position).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count > 0 {
				skipped = append(skipped, suggestion.FullName())
				continue
			}

			rep := domain.Representative{
				ZipCode:   suggestion.ZipCode,
				FirstName: suggestion.FirstName,
				LastName:  suggestion.LastName,
				Position:  suggestion.Position,
				// Suggestions only carry the fixed position enum.
				CustomPosition: nil,
			}
			if err := tx.Create(&rep).Error; err != nil {
				return err
			}

			// Numbers arrive pre-normalized from the batch loader; copy
			// them verbatim without re-validation.
			for _, sp := range suggestion.Phones {
				phone := domain.RepresentativePhone{
					RepresentativeID: rep.ID,
					Phone:            sp.Phone,
					Extension:        sp.Extension,
					PhoneType:        sp.PhoneType,
				}
				if err := tx.Create(&phone).Error; err != nil {
					return err
				}
				rep.Phones = append(rep.Phones, phone)
			}

			added = append(added, representatives.ToResponse(&rep))
		}
		return nil
	})
	if err != nil {
		return nil, domain.NewPersistenceError(err)
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, cache.RepsByZipKey(zip))
	}

	return &models.AcceptSuggestionsResponse{
		Added:   added,
		Skipped: skipped,
		Message: summaryMessage(len(added), skipped),
	}, nil
}

func summaryMessage(addedCount int, skipped []string) string {
	switch {
	case addedCount == 0 && len(skipped) == 0:
		return "No suggestions were added"
	case len(skipped) == 0:
		return fmt.Sprintf("Added %d representative(s)", addedCount)
	case addedCount == 0:
		return fmt.Sprintf("Skipped %d duplicate(s)", len(skipped))
	}
	return fmt.Sprintf("Added %d representative(s), skipped %d duplicate(s)", addedCount, len(skipped))
}

func toResponse(s *domain.RepresentativeSuggestion) models.SuggestionResponse {
	phones := make([]models.PhoneResponse, 0, len(s.Phones))
	for i := range s.Phones {
		p := &s.Phones[i]
		display := p.Phone
		link := p.Phone
		if p.Extension != "" {
			display += " ext. " + p.Extension
			link += "," + p.Extension
		}
		phones = append(phones, models.PhoneResponse{
			ID:           p.ID,
			Phone:        p.Phone,
			Extension:    p.Extension,
			PhoneType:    p.PhoneType,
			DisplayPhone: display,
			PhoneLink:    link,
		})
	}

	return models.SuggestionResponse{
		ID:           s.ID,
		ZipCode:      s.ZipCode,
		FirstName:    s.FirstName,
		LastName:     s.LastName,
		FullName:     s.FullName(),
		Position:     string(s.Position),
		State:        s.State,
		District:     s.District,
		Source:       s.Source,
		PhoneNumbers: phones,
	}
}
