package models

// ExportCallLogsRequest asks for a file export of the user's filtered logs
type ExportCallLogsRequest struct {
	Format          string `json:"format" validate:"required,oneof=csv excel"`
	UserID          string `json:"user_id"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	IncludeTestData bool   `json:"include_test_data"`
}

// ExportResponse describes a generated export file
type ExportResponse struct {
	ID        uint   `json:"id"`
	Format    string `json:"format"`
	Status    string `json:"status"`
	RowCount  int    `json:"row_count"`
	FileURL   string `json:"file_url"`
	ExpiresAt string `json:"expires_at"`
	CreatedAt string `json:"created_at"`
}

// SessionResponse carries a freshly issued session token
type SessionResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	ExpiresAt string `json:"expires_at"`
}

// CreateSessionRequest optionally names the user a session is issued for
type CreateSessionRequest struct {
	UserID string `json:"user_id" validate:"omitempty,max=100"`
}
