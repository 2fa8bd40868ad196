// Package phone normalizes phone numbers to their canonical E.164 form.
// Every key derived from a phone number must go through Normalize so raw
// input and canonical form never diverge between call sites.
package phone

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"

	"github.com/dtroode/referral-server/internal/model"
)

// Normalize parses an international phone number and returns its E.164
// representation. Returns model.ErrInvalidPhoneNumber for anything that is
// not a parseable, valid number.
func Normalize(raw string) (string, error) {
	parsed, err := phonenumbers.Parse(raw, "")
	if err != nil {
		return "", fmt.Errorf("%w: %s", model.ErrInvalidPhoneNumber, err)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", model.ErrInvalidPhoneNumber
	}
	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}
