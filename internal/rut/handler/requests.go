package handler

import (
	"bytes"
	"encoding/json"
	"strings"

	dErrors "rutkit/pkg/domain-errors"
)

// maxRUTLength bounds a single identifier field; canonical RUTs are at most
// 12 characters, the slack allows for whitespace and odd punctuation.
const maxRUTLength = 64

// RUTRequest is the body of POST /clean and POST /validate.
type RUTRequest struct {
	RUT string `json:"rut"`
}

// Validate implements httputil.Validatable.
func (r *RUTRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.RUT) > maxRUTLength {
		return dErrors.New(dErrors.CodeValidation, "rut must be at most 64 characters")
	}
	r.RUT = strings.TrimSpace(r.RUT)
	return nil
}

// BatchRequest is the body of POST /validate/batch.
type BatchRequest struct {
	RUTs []string `json:"ruts"`
}

// Validate implements httputil.Validatable.
func (r *BatchRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.RUTs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "ruts must contain at least one identifier")
	}
	for _, v := range r.RUTs {
		if len(v) > maxRUTLength {
			return dErrors.New(dErrors.CodeValidation, "each rut must be at most 64 characters")
		}
	}
	return nil
}

// FormatRequest is the body of POST /format. Exactly one of RUT (body and
// check character) or Body (check character computed) must be set.
type FormatRequest struct {
	RUT  string `json:"rut"`
	Body string `json:"body"`
}

// Validate implements httputil.Validatable.
func (r *FormatRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.RUT) > maxRUTLength || len(r.Body) > maxRUTLength {
		return dErrors.New(dErrors.CodeValidation, "rut and body must be at most 64 characters")
	}
	r.RUT = strings.TrimSpace(r.RUT)
	r.Body = strings.TrimSpace(r.Body)
	switch {
	case r.RUT == "" && r.Body == "":
		return dErrors.New(dErrors.CodeValidation, "one of rut or body is required")
	case r.RUT != "" && r.Body != "":
		return dErrors.New(dErrors.CodeValidation, "rut and body are mutually exclusive")
	}
	return nil
}

// DigitRequest is the body of POST /digit.
type DigitRequest struct {
	Body string `json:"body"`
}

// Validate implements httputil.Validatable.
func (r *DigitRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Body) > maxRUTLength {
		return dErrors.New(dErrors.CodeValidation, "body must be at most 64 characters")
	}
	r.Body = strings.TrimSpace(r.Body)
	if r.Body == "" {
		return dErrors.New(dErrors.CodeValidation, "body is required")
	}
	return nil
}

// Base is a generation base that accepts either a JSON string or a JSON number.
type Base string

// UnmarshalJSON implements json.Unmarshaler.
func (b *Base) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*b = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = Base(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*b = Base(n.String())
	return nil
}

// GenerateRequest is the body of POST /generate. Count defaults to 1.
type GenerateRequest struct {
	Base  Base `json:"base"`
	Count *int `json:"count"`

	parsedCount int
}

// Validate implements httputil.Validatable.
func (r *GenerateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Base) > maxRUTLength {
		return dErrors.New(dErrors.CodeValidation, "base must be at most 64 characters")
	}
	r.parsedCount = 1
	if r.Count != nil {
		if *r.Count < 0 {
			return dErrors.New(dErrors.CodeValidation, "count must not be negative")
		}
		r.parsedCount = *r.Count
	}
	return nil
}

// ParsedCount returns the validated count.
func (r *GenerateRequest) ParsedCount() int {
	return r.parsedCount
}
