package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"rutkit/internal/rut/models"
	dErrors "rutkit/pkg/domain-errors"
	"rutkit/pkg/platform/httputil"
	"rutkit/pkg/requestcontext"
)

// Service defines the RUT operations the handler exposes.
type Service interface {
	Clean(ctx context.Context, raw string) string
	Validate(ctx context.Context, raw string) *models.Inspection
	ValidateBatch(ctx context.Context, ruts []string) (*models.BatchResult, error)
	Format(ctx context.Context, raw string) (string, error)
	FormatWithoutDV(ctx context.Context, body string) (string, error)
	ComputeVerificationDigit(ctx context.Context, body string) (string, error)
	Generate(ctx context.Context, base string, count int) ([]string, error)
}

// Handler wires RUT endpoints to the RUT service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a RUT handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts RUT endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/clean", h.HandleClean)
	r.Post("/validate", h.HandleValidate)
	r.Post("/validate/batch", h.HandleValidateBatch)
	r.Post("/format", h.HandleFormat)
	r.Post("/digit", h.HandleDigit)
	r.Post("/generate", h.HandleGenerate)
	r.Get("/{rut}", h.HandleInspect)
}

// HandleClean handles POST /clean requests.
func (h *Handler) HandleClean(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[RUTRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, CleanResponse{Clean: h.service.Clean(ctx, req.RUT)})
}

// HandleValidate handles POST /validate requests. An invalid identifier is a
// successful response with valid=false, not an error.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[RUTRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromInspection(h.service.Validate(ctx, req.RUT)))
}

// HandleInspect handles GET /{rut} requests.
func (h *Handler) HandleInspect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	raw, err := url.PathUnescape(chi.URLParam(r, "rut"))
	if err != nil || raw == "" || len(raw) > maxRUTLength {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid rut path parameter"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromInspection(h.service.Validate(ctx, raw)))
}

// HandleValidateBatch handles POST /validate/batch requests.
func (h *Handler) HandleValidateBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	req, ok := httputil.DecodeAndPrepare[BatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.ValidateBatch(ctx, req.RUTs)
	if err != nil {
		h.logger.WarnContext(ctx, "batch validation rejected",
			"request_id", requestID,
			"submitted", len(req.RUTs),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromBatch(result, requestcontext.Now(ctx)))
}

// HandleFormat handles POST /format requests.
func (h *Handler) HandleFormat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	req, ok := httputil.DecodeAndPrepare[FormatRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	var (
		formatted string
		err       error
	)
	if req.Body != "" {
		formatted, err = h.service.FormatWithoutDV(ctx, req.Body)
	} else {
		formatted, err = h.service.Format(ctx, req.RUT)
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FormatResponse{Formatted: formatted})
}

// HandleDigit handles POST /digit requests.
func (h *Handler) HandleDigit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[DigitRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	dv, err := h.service.ComputeVerificationDigit(ctx, req.Body)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, DigitResponse{Body: req.Body, VerificationDigit: dv})
}

// HandleGenerate handles POST /generate requests.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[GenerateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	ruts, err := h.service.Generate(ctx, string(req.Base), req.ParsedCount())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "ruts generated",
		"request_id", requestID,
		"count", len(ruts),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, GenerateResponse{RUTs: ruts, GeneratedAt: requestcontext.Now(ctx)})
}
