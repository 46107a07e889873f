package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"rutkit/internal/rut/metrics"
	"rutkit/internal/rut/models"
	dErrors "rutkit/pkg/domain-errors"
	pstrings "rutkit/pkg/platform/strings"
	"rutkit/pkg/requestcontext"
	"rutkit/pkg/rut"
)

// Default limits used when none are configured.
const (
	DefaultMaxGenerateCount = 1000
	DefaultMaxBatchSize     = 500
)

// Generator produces consecutive valid identifiers. *rut.Generator satisfies it.
type Generator interface {
	Generate(base string, count int) ([]string, error)
}

// Service exposes the RUT toolkit to transports: it translates toolkit
// sentinel errors into coded domain errors, enforces request limits and
// records metrics.
type Service struct {
	generator        Generator
	logger           *slog.Logger
	metrics          *metrics.Metrics
	maxGenerateCount int
	maxBatchSize     int
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithGenerator replaces the default math/rand backed generator.
func WithGenerator(g Generator) Option {
	return func(s *Service) {
		s.generator = g
	}
}

// WithLimits sets the maximum generate count and batch size. Non-positive
// values keep the defaults.
func WithLimits(maxGenerateCount, maxBatchSize int) Option {
	return func(s *Service) {
		if maxGenerateCount > 0 {
			s.maxGenerateCount = maxGenerateCount
		}
		if maxBatchSize > 0 {
			s.maxBatchSize = maxBatchSize
		}
	}
}

// New constructs a Service.
func New(opts ...Option) *Service {
	s := &Service{
		maxGenerateCount: DefaultMaxGenerateCount,
		maxBatchSize:     DefaultMaxBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.generator == nil {
		s.generator = rut.NewGenerator(nil)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// Clean strips whitespace and separators from raw.
func (s *Service) Clean(_ context.Context, raw string) string {
	return rut.Clean(raw)
}

// Validate inspects raw. Malformed input is reported in the Inspection,
// never as an error.
func (s *Service) Validate(ctx context.Context, raw string) *models.Inspection {
	start := time.Now()
	result := inspect(raw)
	s.metrics.IncrementValidation(string(result.Outcome))
	s.metrics.ObserveOperation("validate", time.Since(start))

	s.logger.DebugContext(ctx, "rut validated",
		"request_id", requestcontext.RequestID(ctx),
		"outcome", result.Outcome,
	)
	return result
}

// ValidateBatch inspects every distinct identifier in ruts. Inputs that clean
// to the same identifier (ignoring the case of 'K') are reported once.
func (s *Service) ValidateBatch(ctx context.Context, ruts []string) (*models.BatchResult, error) {
	start := time.Now()
	if len(ruts) > s.maxBatchSize {
		return nil, dErrors.New(dErrors.CodeValidation, "too many identifiers in batch")
	}

	distinct := pstrings.DedupeAndTrimFunc(ruts, func(v string) string {
		return strings.ToUpper(rut.Clean(v))
	})

	out := &models.BatchResult{Results: make([]models.Inspection, 0, len(distinct))}
	for _, raw := range distinct {
		result := inspect(raw)
		s.metrics.IncrementValidation(string(result.Outcome))
		if result.Valid {
			out.ValidCount++
		} else {
			out.InvalidCount++
		}
		out.Results = append(out.Results, *result)
	}
	s.metrics.ObserveOperation("batch", time.Since(start))

	s.logger.InfoContext(ctx, "rut batch validated",
		"request_id", requestcontext.RequestID(ctx),
		"submitted", len(ruts),
		"distinct", len(distinct),
		"valid", out.ValidCount,
		"invalid", out.InvalidCount,
	)
	return out, nil
}

// Format renders a full identifier (body and check character) in canonical form.
// The check character is not verified.
func (s *Service) Format(ctx context.Context, raw string) (string, error) {
	start := time.Now()
	formatted, err := rut.Format(raw)
	s.metrics.ObserveOperation("format", time.Since(start))
	if err != nil {
		s.metrics.IncrementFormatFailure()
		return "", translate(err)
	}
	return formatted, nil
}

// FormatWithoutDV computes the check character for body and renders both.
func (s *Service) FormatWithoutDV(ctx context.Context, body string) (string, error) {
	start := time.Now()
	formatted, err := rut.FormatWithoutDV(body)
	s.metrics.ObserveOperation("format", time.Since(start))
	if err != nil {
		s.metrics.IncrementFormatFailure()
		return "", translate(err)
	}
	return formatted, nil
}

// ComputeVerificationDigit returns the check character for body.
func (s *Service) ComputeVerificationDigit(_ context.Context, body string) (string, error) {
	dv, err := rut.ComputeVerificationDigit(rut.Clean(body))
	if err != nil {
		return "", translate(err)
	}
	return dv, nil
}

// Generate returns count consecutive valid identifiers starting at base,
// or at a random body when base is empty or not numeric.
func (s *Service) Generate(ctx context.Context, base string, count int) ([]string, error) {
	start := time.Now()
	if count > s.maxGenerateCount {
		return nil, dErrors.New(dErrors.CodeValidation, "count exceeds the maximum allowed")
	}

	ruts, err := s.generator.Generate(base, count)
	if err != nil {
		translated := translate(err)
		if dErrors.GetCode(translated) == dErrors.CodeInternal {
			s.logger.ErrorContext(ctx, "rut generation failed",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
		}
		return nil, translated
	}
	s.metrics.AddGenerated(len(ruts))
	s.metrics.ObserveOperation("generate", time.Since(start))

	s.logger.InfoContext(ctx, "ruts generated",
		"request_id", requestcontext.RequestID(ctx),
		"count", len(ruts),
	)
	return ruts, nil
}

func inspect(raw string) *models.Inspection {
	result := &models.Inspection{
		Input: raw,
		Clean: rut.Clean(raw),
	}

	body, dv, err := rut.Split(result.Clean)
	if err != nil {
		return malformed(result, err)
	}
	result.Body = body
	result.VerificationDigit = dv

	expected, err := rut.ComputeVerificationDigit(body)
	if err != nil {
		return malformed(result, err)
	}
	result.ExpectedDigit = expected

	if !strings.EqualFold(expected, dv) {
		result.Outcome = models.OutcomeMismatch
		result.Reason = rut.ErrCheckDigitMismatch.Error()
		return result
	}

	// Body is all digits here, so formatting cannot fail.
	result.Formatted, _ = rut.FormatParts(body, strings.ToUpper(dv))
	result.Valid = true
	result.Outcome = models.OutcomeValid
	return result
}

func malformed(result *models.Inspection, err error) *models.Inspection {
	result.Outcome = models.OutcomeMalformed
	result.Reason = err.Error()
	return result
}

// translate maps toolkit sentinels onto coded domain errors.
func translate(err error) error {
	switch {
	case errors.Is(err, rut.ErrInvalidFormat),
		errors.Is(err, rut.ErrNonDigitBody),
		errors.Is(err, rut.ErrCheckDigitMismatch):
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, err.Error())
	case errors.Is(err, rut.ErrInvalidCount),
		errors.Is(err, rut.ErrBaseOutOfRange):
		return dErrors.Wrap(err, dErrors.CodeValidation, err.Error())
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "internal error")
	}
}
