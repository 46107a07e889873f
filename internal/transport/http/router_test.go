package httptransport

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rutkit/internal/platform/metrics"
	ruthandler "rutkit/internal/rut/handler"
	rutmetrics "rutkit/internal/rut/metrics"
	"rutkit/internal/rut/service"
	"rutkit/pkg/platform/middleware/requestid"
	"rutkit/pkg/rut"
	"rutkit/pkg/testutil"
)

type fixedSource struct{ n uint64 }

func (s fixedSource) Uint64N(uint64) uint64 { return s.n }

// newTestRouter wires the real service behind the full middleware chain.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(
		service.WithLogger(logger),
		service.WithMetrics(rutmetrics.New(reg)),
		service.WithGenerator(rut.NewGenerator(fixedSource{n: 12312311})),
		service.WithLimits(10, 10),
	)
	return NewRouter(Deps{
		RUT:      ruthandler.New(svc, logger),
		Logger:   logger,
		Metrics:  metrics.New(reg),
		Gatherer: reg,
	})
}

func TestRouter_Scenarios(t *testing.T) {
	router := newTestRouter(t)

	testutil.Given(t, "a canonical identifier", func(t *testing.T) {
		testutil.When(t, "it is validated", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/v1/rut/validate", map[string]string{"rut": "12.312.312-3"}))

			testutil.Then(t, "it is reported valid", func(t *testing.T) {
				require.Equal(t, http.StatusOK, rr.Code)
				resp := testutil.UnmarshalResponse[ruthandler.InspectionResponse](t, rr)
				assert.True(t, resp.Valid)
				assert.Equal(t, "12.312.312-3", resp.Formatted)
				assert.NotEmpty(t, rr.Header().Get(requestid.Header))
			})
		})
	})

	testutil.Given(t, "an identifier with the wrong check digit", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/v1/rut/15123423-7", nil))

		testutil.Then(t, "the expected digit is reported", func(t *testing.T) {
			require.Equal(t, http.StatusOK, rr.Code)
			resp := testutil.UnmarshalResponse[ruthandler.InspectionResponse](t, rr)
			assert.False(t, resp.Valid)
			assert.Equal(t, "2", resp.ExpectedDigit)
		})
	})

	testutil.Given(t, "a body without check digit", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/v1/rut/format", map[string]string{"body": "15123423"}))

		testutil.Then(t, "it is formatted with its computed digit", func(t *testing.T) {
			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "15.123.423-2", testutil.UnmarshalResponse[ruthandler.FormatResponse](t, rr).Formatted)
		})
	})

	testutil.Given(t, "a generate request without base", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/v1/rut/generate", map[string]int{"count": 3}))

		testutil.Then(t, "consecutive valid identifiers are returned", func(t *testing.T) {
			require.Equal(t, http.StatusOK, rr.Code)
			resp := testutil.UnmarshalResponse[ruthandler.GenerateResponse](t, rr)
			assert.Equal(t, []string{"12.312.312-3", "12.312.313-1", "12.312.314-K"}, resp.RUTs)
			for _, g := range resp.RUTs {
				assert.True(t, rut.Validate(g))
			}
		})
	})

	testutil.Given(t, "a blank identifier", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/v1/rut/validate", map[string]string{"rut": "   "}))

		testutil.Then(t, "it is reported malformed rather than rejected", func(t *testing.T) {
			require.Equal(t, http.StatusOK, rr.Code)
			resp := testutil.UnmarshalResponse[ruthandler.InspectionResponse](t, rr)
			assert.False(t, resp.Valid)
			assert.Equal(t, "malformed", resp.Outcome)
		})
	})

	testutil.Given(t, "a generate request for zero identifiers", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/v1/rut/generate", map[string]int{"count": 0}))

		testutil.Then(t, "an empty list is returned", func(t *testing.T) {
			require.Equal(t, http.StatusOK, rr.Code)
			resp := testutil.UnmarshalResponse[ruthandler.GenerateResponse](t, rr)
			assert.NotNil(t, resp.RUTs)
			assert.Empty(t, resp.RUTs)
		})
	})

	testutil.Given(t, "a generate request above the limit", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/v1/rut/generate", map[string]int{"count": 11}))

		testutil.Then(t, "it is rejected", func(t *testing.T) {
			testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")
		})
	})
}

func TestRouter_Operational(t *testing.T) {
	router := newTestRouter(t)

	t.Run("health", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("metrics exposes module counters", func(t *testing.T) {
		testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/v1/rut/validate", map[string]string{"rut": "1-9"}))

		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.True(t, strings.Contains(body, `rutkit_rut_validations_total{outcome="valid"} 1`), body)
		assert.Contains(t, body, "rutkit_http_requests_total")
	})

	t.Run("unknown route", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/v2/rut/1-9", nil))
		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
	})

	t.Run("wrong method", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/v1/rut/validate/batch", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	})
}

func TestRouter_AccessLogRecordsClientMetadata(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	router := NewRouter(Deps{
		RUT:    ruthandler.New(service.New(), logger),
		Logger: logger,
	})

	req := testutil.NewJSONRequest(t, http.MethodGet, "/health", nil)
	req.Header.Set("User-Agent", "rut-cli/1.0")
	rr := testutil.DoRequest(router, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, logs.String(), "user_agent=rut-cli/1.0")
	assert.Contains(t, logs.String(), "status=200")
}
