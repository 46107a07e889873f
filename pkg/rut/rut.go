package rut

import (
	"errors"
	"strings"
)

// Sentinel errors for malformed identifiers. Callers translate them into
// their own error taxonomy; Validate never returns them.
var (
	// ErrInvalidFormat indicates the cleaned input is too short to hold a
	// body and a check character.
	ErrInvalidFormat = errors.New("invalid RUT format: body and verification digit are required")

	// ErrNonDigitBody indicates the body contains characters other than 0-9.
	ErrNonDigitBody = errors.New("invalid RUT body: only decimal digits are allowed")

	// ErrCheckDigitMismatch indicates the check character does not match the body.
	ErrCheckDigitMismatch = errors.New("invalid RUT: verification digit does not match")
)

// separators are stripped anywhere in the input, not only at canonical positions.
var separators = strings.NewReplacer(".", "", ",", "", "-", "")

// Clean removes every '.', ',' and '-' first and only then trims surrounding
// whitespace. The order is the reverse of trim-then-strip, so whitespace
// exposed by a removed separator at either end is trimmed too and Clean stays
// idempotent. No digit validation happens here.
//
//	Clean("12.312.312-3") // "123123123"
//	Clean("- 1-9")        // "19"
//	Clean("1-9 .")        // "19"
func Clean(raw string) string {
	return strings.TrimSpace(separators.Replace(raw))
}

// Number returns the body of raw: the cleaned input without its last character.
func Number(raw string) string {
	clean := Clean(raw)
	if clean == "" {
		return ""
	}
	return clean[:len(clean)-1]
}

// VerificationDigit returns the last character of the cleaned input.
func VerificationDigit(raw string) string {
	clean := Clean(raw)
	if clean == "" {
		return ""
	}
	return clean[len(clean)-1:]
}

// Split separates an already cleaned identifier into body and check character.
// Returns ErrInvalidFormat when either part would be empty.
func Split(clean string) (body, dv string, err error) {
	if len(clean) < 2 {
		return "", "", ErrInvalidFormat
	}
	return clean[:len(clean)-1], clean[len(clean)-1:], nil
}

// ComputeVerificationDigit computes the modulo-11 check character for body.
//
// Digits are weighted 2,3,4,5,6,7,2,3,... starting from the rightmost one.
// The result is 11 - sum%11, where 10 maps to "K" and 11 maps to "0".
func ComputeVerificationDigit(body string) (string, error) {
	if body == "" {
		return "", ErrInvalidFormat
	}

	sum, weight := 0, 2
	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			return "", ErrNonDigitBody
		}
		sum += int(c-'0') * weight
		weight++
		if weight > 7 {
			weight = 2
		}
	}

	switch dv := 11 - sum%11; dv {
	case 10:
		return "K", nil
	case 11:
		return "0", nil
	default:
		return string(rune('0' + dv)), nil
	}
}

// Verify checks raw and reports why it is not a valid RUT.
func Verify(raw string) error {
	body, dv, err := Split(Clean(raw))
	if err != nil {
		return err
	}
	expected, err := ComputeVerificationDigit(body)
	if err != nil {
		return err
	}
	if !strings.EqualFold(expected, dv) {
		return ErrCheckDigitMismatch
	}
	return nil
}

// Validate reports whether raw is a well-formed RUT whose check character
// matches its body. The check character is compared case-insensitively.
func Validate(raw string) bool {
	return Verify(raw) == nil
}
