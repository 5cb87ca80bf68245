// Package phone normalizes phone numbers captured on leads and customers.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used when a number has no country prefix.
const DefaultRegion = "ID"

// NormalizeE164 formats input as E.164 using region for local numbers
// (e.g. "0812-3456-7890" in ID). Unparseable or invalid input is returned trimmed.
func NormalizeE164(input, region string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}
	if region == "" {
		region = DefaultRegion
	}

	number, err := phonenumbers.Parse(trimmed, region)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return trimmed
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

// NormalizePtr applies NormalizeE164 to an optional value; blanks become nil.
func NormalizePtr(input *string, region string) *string {
	if input == nil {
		return nil
	}
	out := NormalizeE164(*input, region)
	if out == "" {
		return nil
	}
	return &out
}

// WhatsAppLink returns a wa.me link for an E.164 number.
func WhatsAppLink(e164 string) string {
	digits := strings.TrimPrefix(e164, "+")
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits
}
