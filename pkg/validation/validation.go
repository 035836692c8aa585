// Package validation normalizes user-facing input before anything touches
// storage: zip codes, phone numbers, person names, and free text.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/civicline/repcall/pkg/domain"
)

var (
	zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	tagPattern = regexp.MustCompile(`<[^>]*>`)
)

// ZipCode validates a US zip code (5-digit or 5+4) and returns the trimmed
// canonical string.
func ZipCode(input string) (string, error) {
	zip := strings.TrimSpace(input)
	if !zipPattern.MatchString(zip) {
		return "", domain.NewValidationError(fmt.Sprintf("invalid zip code: %q", input))
	}
	return zip, nil
}

// PhoneNumber strips every non-digit character and accepts exactly 10
// digits, or 11 digits with a leading country code 1. The result is always
// formatted "(AAA) BBB-CCCC".
func PhoneNumber(input string) (string, error) {
	var digits strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	d := digits.String()
	switch {
	case len(d) == 10:
		return formatNational(d), nil
	case len(d) == 11 && d[0] == '1':
		return formatNational(d[1:]), nil
	}
	return "", domain.NewValidationError(fmt.Sprintf("invalid phone number: %q", input))
}

func formatNational(d string) string {
	return fmt.Sprintf("(%s) %s-%s", d[:3], d[3:6], d[6:])
}

// Name validates a person name: 2-100 characters drawn from letters,
// spaces, hyphens, apostrophes, and periods.
func Name(input string) (string, error) {
	name := strings.TrimSpace(input)
	if len(name) < 2 {
		return "", domain.NewValidationError("name must be at least 2 characters")
	}
	if len(name) > 100 {
		return "", domain.NewValidationError("name must be at most 100 characters")
	}
	for _, r := range name {
		if unicode.IsLetter(r) {
			continue
		}
		switch r {
		case ' ', '-', '\'', '.':
			continue
		}
		return "", domain.NewValidationError(fmt.Sprintf("name contains invalid character %q", r))
	}
	return name, nil
}

// SplitName splits a full name on the first space into first and last name.
// A single-token name keeps everything in first with an empty last name.
func SplitName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	if i := strings.IndexByte(full, ' '); i >= 0 {
		return full[:i], strings.TrimSpace(full[i+1:])
	}
	return full, ""
}

// SanitizeInput strips HTML-like tags and control characters from free-text
// fields before storage.
func SanitizeInput(text string) string {
	text = tagPattern.ReplaceAllString(text, "")
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
