package rut

import (
	"strconv"
	"strings"
)

// RUT is a validated Chilean national identifier.
//
// Invariants:
//   - body is a non-empty string of decimal digits without leading zeros
//   - dv is the check character computed from body ("0"-"9" or "K")
type RUT struct {
	body string
	dv   string
}

// Parse validates raw and returns the identifier it denotes.
// Lowercase 'k' is accepted and normalized to 'K'.
func Parse(raw string) (RUT, error) {
	if err := Verify(raw); err != nil {
		return RUT{}, err
	}
	body, dv, _ := Split(Clean(raw))
	body = strings.TrimLeft(body, "0")
	if body == "" {
		body = "0"
	}
	return RUT{body: body, dv: strings.ToUpper(dv)}, nil
}

// MustParse is like Parse but panics if raw is invalid.
// Use only in tests or with known-good constants.
func MustParse(raw string) RUT {
	r, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return r
}

// New builds the identifier for body, computing its check character.
func New(body uint64) RUT {
	digits := strconv.FormatUint(body, 10)
	dv, _ := ComputeVerificationDigit(digits)
	return RUT{body: digits, dv: dv}
}

// Body returns the digits before the check character.
func (r RUT) Body() string {
	return r.body
}

// CheckDigit returns the verification character.
func (r RUT) CheckDigit() string {
	return r.dv
}

// String returns the canonical form, e.g. 12.312.312-3.
func (r RUT) String() string {
	if r.IsZero() {
		return ""
	}
	return groupThousands(r.body) + "-" + r.dv
}

// Compact returns the body and check character joined by a dash, e.g. 12312312-3.
func (r RUT) Compact() string {
	if r.IsZero() {
		return ""
	}
	return r.body + "-" + r.dv
}

// IsZero returns true if this is the zero value (uninitialized).
func (r RUT) IsZero() bool {
	return r.body == ""
}
