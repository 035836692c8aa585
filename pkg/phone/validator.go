// Package phone inspects phone numbers against libphonenumber metadata.
// This is advisory only: the stored representative-phone format is produced
// by pkg/validation, which enforces the stricter 10/11-digit US rule.
package phone

import (
	"fmt"

	"github.com/civicline/repcall/pkg/domain"
	"github.com/nyaruka/phonenumbers"
)

// LineType classifies a number by its carrier metadata.
type LineType string

const (
	LineFixed         LineType = "FIXED_LINE"
	LineMobile        LineType = "MOBILE"
	LineFixedOrMobile LineType = "FIXED_LINE_OR_MOBILE"
	LineTollFree      LineType = "TOLL_FREE"
	LineVoip          LineType = "VOIP"
	LineUnknown       LineType = "UNKNOWN"
)

// ValidationResult contains the result of phone number inspection.
type ValidationResult struct {
	IsValid        bool     `json:"is_valid"`
	E164Format     string   `json:"e164_format"`
	NationalFormat string   `json:"national_format"`
	Region         string   `json:"region"`
	LineType       LineType `json:"line_type"`
}

// Validate parses a phone number and reports validity, canonical formats,
// region, and line type. The region defaults to US when not given.
func Validate(phone, region string) (*ValidationResult, error) {
	if phone == "" {
		return nil, domain.NewValidationError("phone number cannot be empty")
	}
	if region == "" {
		region = "US"
	}

	parsed, err := phonenumbers.Parse(phone, region)
	if err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("failed to parse phone number: %v", err))
	}

	return &ValidationResult{
		IsValid:        phonenumbers.IsValidNumber(parsed),
		E164Format:     phonenumbers.Format(parsed, phonenumbers.E164),
		NationalFormat: phonenumbers.Format(parsed, phonenumbers.NATIONAL),
		Region:         phonenumbers.GetRegionCodeForNumber(parsed),
		LineType:       lineTypeOf(phonenumbers.GetNumberType(parsed)),
	}, nil
}

// Normalize returns the E.164 form of a valid phone number.
func Normalize(phone, region string) (string, error) {
	if phone == "" {
		return "", domain.NewValidationError("phone number cannot be empty")
	}
	if region == "" {
		region = "US"
	}

	parsed, err := phonenumbers.Parse(phone, region)
	if err != nil {
		return "", domain.NewValidationError(fmt.Sprintf("failed to parse phone number: %v", err))
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", domain.NewValidationError("invalid phone number")
	}

	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}

func lineTypeOf(t phonenumbers.PhoneNumberType) LineType {
	switch t {
	case phonenumbers.FIXED_LINE:
		return LineFixed
	case phonenumbers.MOBILE:
		return LineMobile
	case phonenumbers.FIXED_LINE_OR_MOBILE:
		return LineFixedOrMobile
	case phonenumbers.TOLL_FREE:
		return LineTollFree
	case phonenumbers.VOIP:
		return LineVoip
	default:
		return LineUnknown
	}
}
