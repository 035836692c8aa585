package domain

import "time"

// CallOutcome is the result of a single call attempt.
type CallOutcome string

const (
	OutcomePerson    CallOutcome = "person"
	OutcomeVoicemail CallOutcome = "voicemail"
	OutcomeFailed    CallOutcome = "failed"
)

// ValidOutcome reports whether o is one of the known outcomes.
func ValidOutcome(o CallOutcome) bool {
	switch o {
	case OutcomePerson, OutcomeVoicemail, OutcomeFailed:
		return true
	}
	return false
}

// DefaultUserID attributes calls logged without a session token.
const DefaultUserID = "default_user"

// CallLog is an immutable, append-only record of one call attempt.
// RepresentativeName and ScriptTitle are value snapshots copied at write
// time, not foreign keys: a log stays meaningful after the representative
// or script it mentions is deleted.
type CallLog struct {
	ID                 uint        `json:"id" gorm:"primaryKey"`
	UserID             string      `json:"user_id" gorm:"size:100;not null;default:default_user;index"`
	RepresentativeName string      `json:"representative_name" gorm:"size:200;not null"`
	PhoneNumber        string      `json:"phone_number" gorm:"size:50;not null"`
	PhoneType          string      `json:"phone_type" gorm:"size:50;not null"`
	CallDatetime       time.Time   `json:"call_datetime" gorm:"not null;index"`
	CallOutcome        CallOutcome `json:"call_outcome" gorm:"size:50;not null"`
	CallNotes          string      `json:"call_notes" gorm:"type:text"`
	ScriptID           *uint       `json:"script_id"`
	ScriptTitle        string      `json:"script_title" gorm:"size:200"`
	SessionID          string      `json:"session_id" gorm:"size:100"`
	IsTestData         bool        `json:"is_test_data" gorm:"not null;default:false"`
	CreatedAt          time.Time   `json:"created_at"`
}

func (CallLog) TableName() string {
	return "call_logs"
}
