package domain

import "time"

// RepresentativeSuggestion is an externally-sourced candidate awaiting human
// promotion into the representatives table. Suggestions are never
// soft-deleted: the batch loader inserts them, the UI reads them, accepted
// ones are copied out, and stale rows are simply left in place.
type RepresentativeSuggestion struct {
	ID        uint     `json:"id" gorm:"primaryKey"`
	ZipCode   string   `json:"zip_code" gorm:"size:10;not null;index"`
	FirstName string   `json:"first_name" gorm:"size:100;not null"`
	LastName  string   `json:"last_name" gorm:"size:100;not null"`
	Position  Position `json:"position" gorm:"size:100;not null"`
	State     string   `json:"state" gorm:"size:2"`
	District  string   `json:"district" gorm:"size:10"`
	Source    string   `json:"source" gorm:"size:100"`
	CreatedAt time.Time `json:"created_at"`

	Phones []RepresentativeSuggestionPhone `json:"-" gorm:"foreignKey:SuggestionID;constraint:OnDelete:CASCADE"`
}

func (RepresentativeSuggestion) TableName() string {
	return "representative_suggestions"
}

// FullName joins first and last name.
func (s *RepresentativeSuggestion) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

// RepresentativeSuggestionPhone mirrors RepresentativePhone for a candidate
// record. Numbers arrive already normalized from the batch loader and are
// copied verbatim on promotion.
type RepresentativeSuggestionPhone struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	SuggestionID uint      `json:"suggestion_id" gorm:"not null;index"`
	Phone        string    `json:"phone" gorm:"size:20;not null"`
	Extension    string    `json:"extension" gorm:"size:10"`
	PhoneType    string    `json:"phone_type" gorm:"size:50;not null;default:Main"`
	CreatedAt    time.Time `json:"created_at"`
}

func (RepresentativeSuggestionPhone) TableName() string {
	return "representative_suggestion_phones"
}
