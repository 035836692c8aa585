package models

// PhoneValidateRequest asks for an advisory check of a phone number
type PhoneValidateRequest struct {
	Phone  string `json:"phone" validate:"required"`
	Region string `json:"region" validate:"omitempty,len=2"`
}

// PhoneNormalizeResponse carries the E.164 form of a phone number
type PhoneNormalizeResponse struct {
	Input      string `json:"input"`
	E164Format string `json:"e164_format"`
}
