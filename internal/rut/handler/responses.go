package handler

import (
	"time"

	"rutkit/internal/rut/models"
)

// CleanResponse is the HTTP response for POST /clean.
type CleanResponse struct {
	Clean string `json:"clean"`
}

// InspectionResponse is the HTTP response for POST /validate and GET /{rut}.
type InspectionResponse struct {
	RUT               string `json:"rut"`
	Valid             bool   `json:"valid"`
	Outcome           string `json:"outcome"`
	Clean             string `json:"clean"`
	Body              string `json:"body,omitempty"`
	VerificationDigit string `json:"verification_digit,omitempty"`
	ExpectedDigit     string `json:"expected_digit,omitempty"`
	Formatted         string `json:"formatted,omitempty"`
	Reason            string `json:"reason,omitempty"`
}

// BatchResponse is the HTTP response for POST /validate/batch.
type BatchResponse struct {
	Results      []InspectionResponse `json:"results"`
	ValidCount   int                  `json:"valid_count"`
	InvalidCount int                  `json:"invalid_count"`
	CheckedAt    time.Time            `json:"checked_at"`
}

// FormatResponse is the HTTP response for POST /format.
type FormatResponse struct {
	Formatted string `json:"formatted"`
}

// DigitResponse is the HTTP response for POST /digit.
type DigitResponse struct {
	Body              string `json:"body"`
	VerificationDigit string `json:"verification_digit"`
}

// GenerateResponse is the HTTP response for POST /generate.
type GenerateResponse struct {
	RUTs        []string  `json:"ruts"`
	GeneratedAt time.Time `json:"generated_at"`
}

// FromInspection converts a domain Inspection to an HTTP response.
func FromInspection(i *models.Inspection) InspectionResponse {
	return InspectionResponse{
		RUT:               i.Input,
		Valid:             i.Valid,
		Outcome:           string(i.Outcome),
		Clean:             i.Clean,
		Body:              i.Body,
		VerificationDigit: i.VerificationDigit,
		ExpectedDigit:     i.ExpectedDigit,
		Formatted:         i.Formatted,
		Reason:            i.Reason,
	}
}

// FromBatch converts a domain BatchResult to an HTTP response.
func FromBatch(b *models.BatchResult, checkedAt time.Time) *BatchResponse {
	results := make([]InspectionResponse, 0, len(b.Results))
	for i := range b.Results {
		results = append(results, FromInspection(&b.Results[i]))
	}
	return &BatchResponse{
		Results:      results,
		ValidCount:   b.ValidCount,
		InvalidCount: b.InvalidCount,
		CheckedAt:    checkedAt,
	}
}
