package models

// SuggestionResponse is one candidate representative for a zip code
type SuggestionResponse struct {
	ID           uint            `json:"id"`
	ZipCode      string          `json:"zip_code"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	FullName     string          `json:"full_name"`
	Position     string          `json:"position"`
	State        string          `json:"state"`
	District     string          `json:"district,omitempty"`
	Source       string          `json:"source"`
	PhoneNumbers []PhoneResponse `json:"phone_numbers"`
}

// AcceptSuggestionsRequest promotes a batch of suggestion ids for a zip code
type AcceptSuggestionsRequest struct {
	ZipCode       string   `json:"zip_code" validate:"required"`
	SuggestionIDs []string `json:"suggestion_ids" validate:"required,min=1"`
}

// AcceptSuggestionsResponse reports the outcome of a promotion batch:
// everything added, every duplicate skipped by name, and a summary line.
type AcceptSuggestionsResponse struct {
	Added   []RepresentativeResponse `json:"added"`
	Skipped []string                 `json:"skipped"`
	Message string                   `json:"message"`
}
