package checkout

import (
	"regexp"
	"strings"
)

// Form field names, matching the wire names the commerce API expects
const (
	FieldFullName        = "fullName"
	FieldEmail           = "email"
	FieldContactNumber   = "contactNumber"
	FieldShippingAddress = "shippingAddress"
	FieldNotes           = "notes"
)

// contactNumberLength is the required local mobile number length
const contactNumberLength = 9

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// KnownField reports whether name is a checkout form field
func KnownField(name string) bool {
	switch name {
	case FieldFullName, FieldEmail, FieldContactNumber, FieldShippingAddress, FieldNotes:
		return true
	}
	return false
}

// NormalizeContactNumber strips non-digit characters and truncates to the
// required length, mirroring what the checkout form does as the user types
func NormalizeContactNumber(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == contactNumberLength {
				break
			}
		}
	}
	return b.String()
}

// ValidateContactNumber checks a local mobile number: required, starts with
// 5, exactly 9 digits, digits only. Returns "" when valid.
func ValidateContactNumber(value string) string {
	if value == "" {
		return "Contact number is required"
	}
	if !strings.HasPrefix(value, "5") {
		return "Contact number must start with 5"
	}
	if len(value) != contactNumberLength {
		return "Contact number must be exactly 9 digits"
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return "Contact number must contain digits only"
		}
	}
	return ""
}

// ValidateEmail checks for a simple local@domain.tld shape
func ValidateEmail(value string) string {
	if value == "" {
		return "Email is required"
	}
	if !emailPattern.MatchString(value) {
		return "Enter a valid email address"
	}
	return ""
}

// ValidateFullName requires a non-empty name
func ValidateFullName(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Full name is required"
	}
	return ""
}

// ValidateShippingAddress requires a non-empty address
func ValidateShippingAddress(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Shipping address is required"
	}
	return ""
}

// ValidateField runs the validator associated with a field. Fields without
// a validator (notes) always pass.
func ValidateField(name, value string) string {
	switch name {
	case FieldFullName:
		return ValidateFullName(value)
	case FieldEmail:
		return ValidateEmail(value)
	case FieldContactNumber:
		return ValidateContactNumber(value)
	case FieldShippingAddress:
		return ValidateShippingAddress(value)
	default:
		return ""
	}
}

// ValidateAll re-runs every field validator and returns the field-scoped
// error messages. An empty map means the form may be submitted.
func ValidateAll(fields map[string]string) map[string]string {
	errs := make(map[string]string)
	for _, name := range []string{FieldFullName, FieldEmail, FieldContactNumber, FieldShippingAddress} {
		if msg := ValidateField(name, fields[name]); msg != "" {
			errs[name] = msg
		}
	}
	return errs
}
