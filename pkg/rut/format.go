package rut

import (
	"strconv"
	"strings"
)

// Format renders a full identifier (body followed by its check character, in
// any punctuation) in canonical form.
//
//	Format("123123123") // "12.312.312-3"
//	Format("19")        // "1-9"
func Format(rut string) (string, error) {
	body, dv, err := Split(Clean(rut))
	if err != nil {
		return "", err
	}
	return FormatParts(body, dv)
}

// FormatParts groups body in thousands with '.' and appends '-' and dv.
// Leading zeros of body are dropped the way a numeric rendering would drop them.
// dv is written as given; it is not checked against body.
func FormatParts(body, dv string) (string, error) {
	if body == "" || len(dv) != 1 {
		return "", ErrInvalidFormat
	}
	if !isDigits(body) {
		return "", ErrNonDigitBody
	}
	return groupThousands(body) + "-" + dv, nil
}

// FormatWithoutDV computes the check character for body and formats both.
//
//	FormatWithoutDV("12312312") // "12.312.312-3"
func FormatWithoutDV(body string) (string, error) {
	body = Clean(body)
	dv, err := ComputeVerificationDigit(body)
	if err != nil {
		return "", err
	}
	return FormatParts(body, dv)
}

// FormatNumber is FormatWithoutDV over an integer body.
func FormatNumber(body uint64) string {
	digits := strconv.FormatUint(body, 10)
	// digits is never empty and never holds a non-digit.
	dv, _ := ComputeVerificationDigit(digits)
	return groupThousands(digits) + "-" + dv
}

func groupThousands(digits string) string {
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return "0"
	}

	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}

	var sb strings.Builder
	sb.Grow(len(digits) + len(digits)/3)
	sb.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		sb.WriteByte('.')
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
