// Package representatives implements the authoritative representative and
// phone-number records: zip-code lookup, creation, and soft deletion.
package representatives

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/civicline/repcall/pkg/cache"
	"github.com/civicline/repcall/pkg/domain"
	"github.com/civicline/repcall/pkg/models"
	"github.com/civicline/repcall/pkg/validation"
	"gorm.io/gorm"
)

// Service handles representative business logic
type Service struct {
	db    *gorm.DB
	cache *cache.Client
}

// NewService creates a new representative service. The cache is optional;
// a nil client disables lookup caching.
func NewService(db *gorm.DB, cacheClient *cache.Client) *Service {
	return &Service{
		db:    db,
		cache: cacheClient,
	}
}

// GetByZip returns all live representatives for a zip code, each with its
// live phone numbers, in insertion order. The zip code is validated before
// any query executes.
func (s *Service) GetByZip(ctx context.Context, zipCode string) ([]models.RepresentativeResponse, error) {
	zip, err := validation.ZipCode(zipCode)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cache.RepsByZipKey(zip)); err == nil && cached != "" {
			var response []models.RepresentativeResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				return response, nil
			}
		}
	}

	var reps []domain.Representative
	err = s.db.WithContext(ctx).
		Where("zip_code = ?", zip).
		Preload("Phones", func(db *gorm.DB) *gorm.DB { return db.Order("representative_phones.id") }).
		Order("representatives.id").
		Find(&reps).Error
	if err != nil {
		return nil, domain.NewPersistenceError(err)
	}

	response := make([]models.RepresentativeResponse, 0, len(reps))
	for i := range reps {
		response = append(response, ToResponse(&reps[i]))
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			_ = s.cache.Set(ctx, cache.RepsByZipKey(zip), payload, cache.RepsByZipTTL)
		}
	}

	return response, nil
}

// Create validates and persists a representative with its phone numbers in
// one transaction. Any validation failure rejects the whole operation
// before a single row is written.
func (s *Service) Create(ctx context.Context, req models.CreateRepresentativeRequest) (*models.RepresentativeResponse, error) {
	zip, err := validation.ZipCode(req.ZipCode)
	if err != nil {
		return nil, err
	}

	name, err := validation.Name(validation.SanitizeInput(req.Name))
	if err != nil {
		return nil, err
	}
	firstName, lastName := validation.SplitName(name)

	position := domain.Position(req.Position)
	if !domain.ValidPosition(position) {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid position: %q", req.Position))
	}

	var customPosition *string
	if position == domain.PositionOther {
		custom := validation.SanitizeInput(req.CustomPosition)
		if custom == "" {
			return nil, domain.NewValidationError("custom_position is required when position is Other")
		}
		customPosition = &custom
	}

	phones, err := s.validatePhones(req)
	if err != nil {
		return nil, err
	}

	rep := domain.Representative{
		ZipCode:        zip,
		FirstName:      firstName,
		LastName:       lastName,
		Position:       position,
		CustomPosition: customPosition,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rep).Error; err != nil {
			return err
		}
		for i := range phones {
			phones[i].RepresentativeID = rep.ID
			if err := tx.Create(&phones[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, domain.NewPersistenceError(err)
	}

	rep.Phones = phones
	s.invalidateZip(ctx, zip)

	response := ToResponse(&rep)
	return &response, nil
}

// validatePhones normalizes every phone tuple on the request, preferring
// the phones array over the legacy single-phone fields.
func (s *Service) validatePhones(req models.CreateRepresentativeRequest) ([]domain.RepresentativePhone, error) {
	inputs := req.Phones
	if len(inputs) == 0 && req.Phone != "" {
		inputs = []models.PhoneInput{{
			Phone:     req.Phone,
			Extension: req.Extension,
			PhoneType: req.PhoneType,
		}}
	}

	phones := make([]domain.RepresentativePhone, 0, len(inputs))
	for _, in := range inputs {
		normalized, err := validation.PhoneNumber(in.Phone)
		if err != nil {
			return nil, err
		}
		phoneType := validation.SanitizeInput(in.PhoneType)
		if phoneType == "" {
			phoneType = "Main"
		}
		phones = append(phones, domain.RepresentativePhone{
			Phone:     normalized,
			Extension: validation.SanitizeInput(in.Extension),
			PhoneType: phoneType,
		})
	}
	return phones, nil
}

// SoftDelete tombstones a representative. Already-deleted rows read as
// absent, so deleting one again resolves to not found.
func (s *Service) SoftDelete(ctx context.Context, id uint) error {
	var rep domain.Representative
	if err := s.db.WithContext(ctx).First(&rep, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewNotFoundError("representative")
		}
		return domain.NewPersistenceError(err)
	}

	if err := s.db.WithContext(ctx).Delete(&rep).Error; err != nil {
		return domain.NewPersistenceError(err)
	}

	s.invalidateZip(ctx, rep.ZipCode)
	return nil
}

// AddPhone validates and attaches a phone number to a live representative.
func (s *Service) AddPhone(ctx context.Context, repID uint, req models.AddPhoneRequest) (*models.PhoneResponse, error) {
	var rep domain.Representative
	if err := s.db.WithContext(ctx).First(&rep, repID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("representative")
		}
		return nil, domain.NewPersistenceError(err)
	}

	normalized, err := validation.PhoneNumber(req.Phone)
	if err != nil {
		return nil, err
	}

	phoneType := validation.SanitizeInput(req.PhoneType)
	if phoneType == "" {
		phoneType = "Main"
	}

	phone := domain.RepresentativePhone{
		RepresentativeID: rep.ID,
		Phone:            normalized,
		Extension:        validation.SanitizeInput(req.Extension),
		PhoneType:        phoneType,
	}
	if err := s.db.WithContext(ctx).Create(&phone).Error; err != nil {
		return nil, domain.NewPersistenceError(err)
	}

	s.invalidateZip(ctx, rep.ZipCode)

	response := phoneResponse(&phone)
	return &response, nil
}

// DeletePhone tombstones one phone number belonging to the representative.
func (s *Service) DeletePhone(ctx context.Context, repID, phoneID uint) error {
	var phone domain.RepresentativePhone
	err := s.db.WithContext(ctx).
		Where("id = ? AND representative_id = ?", phoneID, repID).
		First(&phone).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewNotFoundError("phone number")
		}
		return domain.NewPersistenceError(err)
	}

	if err := s.db.WithContext(ctx).Delete(&phone).Error; err != nil {
		return domain.NewPersistenceError(err)
	}

	var rep domain.Representative
	if err := s.db.WithContext(ctx).Unscoped().First(&rep, repID).Error; err == nil {
		s.invalidateZip(ctx, rep.ZipCode)
	}
	return nil
}

// GetByIDAdmin retrieves a representative by id regardless of tombstone
// state. Used by administrative and history views; normal lookups never
// see deleted rows.
func (s *Service) GetByIDAdmin(ctx context.Context, id uint) (*models.RepresentativeResponse, error) {
	var rep domain.Representative
	err := s.db.WithContext(ctx).Unscoped().
		Preload("Phones", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped().Order("representative_phones.id")
		}).
		First(&rep, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("representative")
		}
		return nil, domain.NewPersistenceError(err)
	}

	response := ToResponse(&rep)
	return &response, nil
}

func (s *Service) invalidateZip(ctx context.Context, zip string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, cache.RepsByZipKey(zip))
}

// ToResponse maps a representative row and its loaded phones to the API
// shape.
func ToResponse(rep *domain.Representative) models.RepresentativeResponse {
	phones := make([]models.PhoneResponse, 0, len(rep.Phones))
	for i := range rep.Phones {
		phones = append(phones, phoneResponse(&rep.Phones[i]))
	}

	return models.RepresentativeResponse{
		ID:              rep.ID,
		ZipCode:         rep.ZipCode,
		FirstName:       rep.FirstName,
		LastName:        rep.LastName,
		FullName:        rep.FullName(),
		Position:        string(rep.Position),
		CustomPosition:  rep.CustomPosition,
		DisplayPosition: rep.DisplayPosition(),
		PhoneNumbers:    phones,
		CreatedAt:       rep.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func phoneResponse(p *domain.RepresentativePhone) models.PhoneResponse {
	return models.PhoneResponse{
		ID:           p.ID,
		Phone:        p.Phone,
		Extension:    p.Extension,
		PhoneType:    p.PhoneType,
		DisplayPhone: p.DisplayPhone(),
		PhoneLink:    p.DialString(),
	}
}
