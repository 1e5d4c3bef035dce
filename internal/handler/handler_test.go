package handler

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"roi-engine/internal/calculators"
	"roi-engine/internal/engine"
	"roi-engine/internal/metrics"
	"roi-engine/internal/model"
)

func newHandler() *Handler {
	prom := metrics.NewPrometheus()
	return New(engine.New(calculators.Builtin(), prom), Options{
		ServiceName: "roi-engine",
		Currency:    "EUR",
		Observer:    prom,
		Metrics:     prom.Handler(),
	})
}

func do(h *Handler, method, uri, body string) *fasthttp.RequestCtx {
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	if body != "" {
		ctx.Request.SetBodyString(body)
		ctx.Request.Header.SetContentType("application/json")
	}
	h.Handle(&ctx)
	return &ctx
}

func decodeBody(t *testing.T, ctx *fasthttp.RequestCtx, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), v))
}

func TestCalculate(t *testing.T) {
	ctx := do(newHandler(), fasthttp.MethodPost, "/calculate", `{
		"tenant_id": "acme",
		"use_cases": [
			{"use_case_id": "on_time_billing", "scenario": "realistic", "inputs": {"annualBills": "1,200,000"}}
		]
	}`)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))

	var resp model.CalculationResponse
	decodeBody(t, ctx, &resp)
	assert.Equal(t, "acme", resp.CalculationMetadata.TenantID)
	assert.Equal(t, model.OutcomeSuccess, resp.CalculationMetadata.CalculationOutcome)
	require.Len(t, resp.CalculationResult.UseCases, 1)
	assert.InDelta(t, 182115, resp.CalculationResult.Totals.TotalAnnualValue, 1e-6)
	assert.InDelta(t, 383400, resp.CalculationResult.UseCases[0].Outcome.BaselineCost, 1e-6)
}

func TestCalculate_BadRequests(t *testing.T) {
	h := newHandler()
	tests := []struct {
		name, method, body string
		status             int
		message            string
	}{
		{"invalid json", fasthttp.MethodPost, `{"use_cases": [`, fasthttp.StatusBadRequest, "Invalid request body"},
		{"no use cases", fasthttp.MethodPost, `{"tenant_id": "acme"}`, fasthttp.StatusBadRequest, "At least one use case is required"},
		{"wrong method", fasthttp.MethodGet, "", fasthttp.StatusMethodNotAllowed, "Method not allowed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := do(h, tt.method, "/calculate", tt.body)
			assert.Equal(t, tt.status, ctx.Response.StatusCode())

			var e model.ErrorResponse
			decodeBody(t, ctx, &e)
			assert.Equal(t, tt.status, e.Status)
			assert.Contains(t, e.Message, tt.message)
		})
	}
}

func TestExport_JSON(t *testing.T) {
	ctx := do(newHandler(), fasthttp.MethodPost, "/export", `{
		"use_cases": [{"use_case_id": "on_time_billing"}, {"use_case_id": "meter_readings"}, {"use_case_id": "nope"}],
		"selection": ["meter_readings"],
		"notes": " for the board "
	}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp ExportResponse
	decodeBody(t, ctx, &resp)
	assert.Equal(t, model.OutcomeFailure, resp.CalculationMetadata.CalculationOutcome)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, model.CodeUnknownUseCase, resp.Messages[0].Code)

	require.Len(t, resp.Export.Entries, 1)
	assert.Equal(t, calculators.IDMeterReadings, resp.Export.Entries[0].ID)
	assert.Equal(t, "EUR", resp.Export.Currency)
	assert.Equal(t, "for the board", resp.Export.Notes)
	assert.InDelta(t, resp.Export.Entries[0].AnnualValue, resp.Export.Totals.TotalAnnualValue, 1e-6)
}

func TestExport_Text(t *testing.T) {
	ctx := do(newHandler(), fasthttp.MethodPost, "/export?format=text", `{
		"currency": "USD",
		"use_cases": [{"use_case_id": "on_time_billing"}]
	}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.True(t, strings.HasPrefix(string(ctx.Response.Header.ContentType()), "text/plain"))
	body := string(ctx.Response.Body())
	assert.Contains(t, body, "Value Summary")
	assert.Contains(t, body, "$182,115")
}

func TestUseCases(t *testing.T) {
	h := newHandler()

	ctx := do(h, fasthttp.MethodGet, "/use-cases", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var defs []model.UseCaseDefinition
	decodeBody(t, ctx, &defs)
	require.Len(t, defs, 6)
	assert.Equal(t, calculators.IDOnTimeBilling, defs[0].ID)
	for _, d := range defs {
		assert.Contains(t, d.Scenarios, model.ScenarioRealistic, d.ID)
	}

	ctx = do(h, fasthttp.MethodGet, "/use-cases/reduce_delayed_bills", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var def model.UseCaseDefinition
	decodeBody(t, ctx, &def)
	assert.Equal(t, calculators.IDReduceDelayedBills, def.ID)

	ctx = do(h, fasthttp.MethodGet, "/use-cases/nope", "")
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}

func TestHealthAndMetrics(t *testing.T) {
	h := newHandler()

	ctx := do(h, fasthttp.MethodGet, "/health", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var health model.HealthResponse
	decodeBody(t, ctx, &health)
	assert.Equal(t, model.HealthResponse{Status: "ok", Service: "roi-engine", UseCases: 6}, health)

	do(h, fasthttp.MethodPost, "/calculate", `{"use_cases":[{"use_case_id":"meter_readings","scenario":"bogus"}]}`)

	ctx = do(h, fasthttp.MethodGet, "/metrics", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	body := string(ctx.Response.Body())
	assert.Contains(t, body, `roi_calculations_total{scenario="bogus",use_case="meter_readings"} 1`)
	assert.Contains(t, body, `roi_scenario_fallbacks_total{use_case="meter_readings"} 1`)
	assert.Contains(t, body, `roi_request_duration_seconds_count{route="/health"} 1`)
}

func TestNotFound(t *testing.T) {
	ctx := do(newHandler(), fasthttp.MethodGet, "/nowhere", "")
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())

	noMetrics := New(engine.New(calculators.Builtin(), nil), Options{})
	ctx = do(noMetrics, fasthttp.MethodGet, "/metrics", "")
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}
