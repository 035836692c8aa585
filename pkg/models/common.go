package models

// ErrorResponse is the standard error payload for all endpoints
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// MessageResponse is a generic success payload
type MessageResponse struct {
	Message string `json:"message"`
}
