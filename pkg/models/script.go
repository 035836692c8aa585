package models

// CreateScriptRequest is the payload for creating a call script
type CreateScriptRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

// UpdateScriptRequest is a partial merge: nil fields keep their current
// value
type UpdateScriptRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=200"`
	Content *string `json:"content" validate:"omitempty,min=1"`
}

// ScriptResponse is a call script in API responses
type ScriptResponse struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
