package domain

import "time"

// CallScript is a reusable talking-points template. Scripts are
// independently owned: call logs keep a denormalized copy of the title, so
// deleting a script (a real delete, not a tombstone) never touches history.
type CallScript struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:200;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CallScript) TableName() string {
	return "call_scripts"
}
