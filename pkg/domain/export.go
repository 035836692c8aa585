package domain

import "time"

// ExportStatus tracks the lifecycle of a generated export file.
type ExportStatus string

const (
	ExportStatusReady  ExportStatus = "ready"
	ExportStatusFailed ExportStatus = "failed"
)

// ExportRecord is the bookkeeping row for one generated call-log export.
// The file itself lives on disk under the export storage path and is
// purged after ExpiresAt.
type ExportRecord struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	UserID    string       `json:"user_id" gorm:"size:100;not null;index"`
	Format    string       `json:"format" gorm:"size:10;not null"`
	Status    ExportStatus `json:"status" gorm:"size:20;not null"`
	RowCount  int          `json:"row_count" gorm:"not null;default:0"`
	FilePath  string       `json:"-" gorm:"size:500"`
	ExpiresAt time.Time    `json:"expires_at" gorm:"not null;index"`
	CreatedAt time.Time    `json:"created_at"`
}

func (ExportRecord) TableName() string {
	return "export_records"
}
