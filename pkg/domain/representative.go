package domain

import (
	"time"

	"gorm.io/gorm"
)

// Position is the fixed set of representative positions. Anything outside
// the set is stored as PositionOther plus a custom label.
type Position string

const (
	PositionSenator        Position = "Senator"
	PositionRepresentative Position = "Representative"
	PositionOther          Position = "Other"
)

// ValidPosition reports whether p is one of the fixed positions.
func ValidPosition(p Position) bool {
	switch p {
	case PositionSenator, PositionRepresentative, PositionOther:
		return true
	}
	return false
}

// Representative is an elected official reachable from a zip code. Rows are
// never hard-deleted by the application; DeletedAt tombstones them out of
// default queries while administrative (Unscoped) queries can still see them.
type Representative struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	ZipCode        string         `json:"zip_code" gorm:"size:10;not null;index"`
	FirstName      string         `json:"first_name" gorm:"size:100;not null"`
	LastName       string         `json:"last_name" gorm:"size:100;not null"`
	Position       Position       `json:"position" gorm:"size:100;not null"`
	CustomPosition *string        `json:"custom_position" gorm:"size:100"`
	CreatedAt      time.Time      `json:"created_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	// Phones are exclusively owned; hard-deleting a representative cascades,
	// though the application only ever soft-deletes.
	Phones []RepresentativePhone `json:"-" gorm:"foreignKey:RepresentativeID;constraint:OnDelete:CASCADE"`
}

func (Representative) TableName() string {
	return "representatives"
}

// FullName joins first and last name, tolerating an empty last name
// (single-token input names keep the whole string in FirstName).
func (r *Representative) FullName() string {
	if r.LastName == "" {
		return r.FirstName
	}
	return r.FirstName + " " + r.LastName
}

// DisplayPosition resolves the label shown to callers: the custom text for
// PositionOther, the enum value otherwise.
func (r *Representative) DisplayPosition() string {
	if r.Position == PositionOther && r.CustomPosition != nil {
		return *r.CustomPosition
	}
	return string(r.Position)
}

// RepresentativePhone is one dialable number for a representative.
// Phone holds the normalized "(AAA) BBB-CCCC" form at persistence time.
type RepresentativePhone struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	RepresentativeID uint           `json:"representative_id" gorm:"not null;index"`
	Phone            string         `json:"phone" gorm:"size:20;not null"`
	Extension        string         `json:"extension" gorm:"size:10"`
	PhoneType        string         `json:"phone_type" gorm:"size:50;not null;default:Main"`
	CreatedAt        time.Time      `json:"created_at"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"`
}

func (RepresentativePhone) TableName() string {
	return "representative_phones"
}

// DisplayPhone renders the number with its extension for UI use.
func (p *RepresentativePhone) DisplayPhone() string {
	if p.Extension != "" {
		return p.Phone + " ext. " + p.Extension
	}
	return p.Phone
}

// DialString renders the number in tel:-link form, pausing before the
// extension.
func (p *RepresentativePhone) DialString() string {
	if p.Extension != "" {
		return p.Phone + "," + p.Extension
	}
	return p.Phone
}
