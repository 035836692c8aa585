package models

// PhoneInput is one phone tuple on a create request
type PhoneInput struct {
	Phone     string `json:"phone" validate:"required"`
	Extension string `json:"extension"`
	PhoneType string `json:"phone_type"`
}

// CreateRepresentativeRequest is the payload for adding a representative.
// Either the single phone fields or the phones array may be used; the
// single form is kept for backward compatibility with older clients.
type CreateRepresentativeRequest struct {
	ZipCode        string       `json:"zip_code" validate:"required"`
	Name           string       `json:"name" validate:"required"`
	Position       string       `json:"position" validate:"required"`
	CustomPosition string       `json:"custom_position"`
	Phone          string       `json:"phone"`
	Extension      string       `json:"extension"`
	PhoneType      string       `json:"phone_type"`
	Phones         []PhoneInput `json:"phones"`
}

// AddPhoneRequest is the payload for attaching a phone to a live
// representative
type AddPhoneRequest struct {
	Phone     string `json:"phone" validate:"required"`
	Extension string `json:"extension"`
	PhoneType string `json:"phone_type"`
}

// PhoneResponse is one phone number in API responses
type PhoneResponse struct {
	ID           uint   `json:"id"`
	Phone        string `json:"phone"`
	Extension    string `json:"extension,omitempty"`
	PhoneType    string `json:"phone_type"`
	DisplayPhone string `json:"display_phone"`
	PhoneLink    string `json:"phone_link"`
}

// RepresentativeResponse is a representative with its live phone numbers
type RepresentativeResponse struct {
	ID              uint            `json:"id"`
	ZipCode         string          `json:"zip_code"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	FullName        string          `json:"full_name"`
	Position        string          `json:"position"`
	CustomPosition  *string         `json:"custom_position"`
	DisplayPosition string          `json:"display_position"`
	PhoneNumbers    []PhoneResponse `json:"phone_numbers"`
	CreatedAt       string          `json:"created_at"`
}
