package handler

import (
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"roi-engine/internal/engine"
	"roi-engine/internal/logging"
	"roi-engine/internal/metrics"
	"roi-engine/internal/model"
	"roi-engine/internal/report"
	"roi-engine/internal/valuemodel"
)

type Options struct {
	ServiceName string
	// Currency is used for exports that do not name one.
	Currency string
	Observer metrics.Observer
	// Metrics serves GET /metrics when set.
	Metrics fasthttp.RequestHandler
}

type Handler struct {
	engine   *engine.Engine
	opts     Options
	observer metrics.Observer
}

func New(e *engine.Engine, opts Options) *Handler {
	observer := opts.Observer
	if observer == nil {
		observer = metrics.Noop{}
	}
	return &Handler{engine: e, opts: opts, observer: observer}
}

// ExportResponse wraps an export with the calculation it was built from.
type ExportResponse struct {
	CalculationMetadata model.CalculationMetadata  `json:"calculation_metadata"`
	Messages            []model.CalculationMessage `json:"messages"`
	Export              report.Export              `json:"export"`
}

// Handle routes a request. It is the server's fasthttp.RequestHandler.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	path := string(ctx.Path())
	route := path

	switch {
	case path == "/calculate":
		h.allow(ctx, fasthttp.MethodPost, h.handleCalculate)
	case path == "/export":
		h.allow(ctx, fasthttp.MethodPost, h.handleExport)
	case path == "/use-cases":
		h.allow(ctx, fasthttp.MethodGet, h.handleUseCases)
	case strings.HasPrefix(path, "/use-cases/"):
		route = "/use-cases/{id}"
		h.allow(ctx, fasthttp.MethodGet, func(ctx *fasthttp.RequestCtx) {
			h.handleUseCase(ctx, strings.TrimPrefix(path, "/use-cases/"))
		})
	case path == "/health":
		h.allow(ctx, fasthttp.MethodGet, h.handleHealth)
	case path == "/metrics" && h.opts.Metrics != nil:
		h.allow(ctx, fasthttp.MethodGet, h.opts.Metrics)
	default:
		route = "unmatched"
		writeError(ctx, fasthttp.StatusNotFound, "Not found: "+path)
	}

	elapsed := time.Since(start)
	h.observer.ObserveRequest(route, elapsed)
	logging.Debug(ctx).
		Str("method", string(ctx.Method())).
		Str("path", path).
		Int("status", ctx.Response.StatusCode()).
		Dur("elapsed", elapsed).
		Msg("request served")
}

func (h *Handler) allow(ctx *fasthttp.RequestCtx, method string, next fasthttp.RequestHandler) {
	if string(ctx.Method()) != method {
		ctx.Response.Header.Set("Allow", method)
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	next(ctx)
}

func (h *Handler) handleCalculate(ctx *fasthttp.RequestCtx) {
	var req model.CalculationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.UseCases) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "At least one use case is required")
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, h.engine.Process(ctx, &req))
}

func (h *Handler) handleExport(ctx *fasthttp.RequestCtx) {
	var req model.ExportRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.UseCases) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "At least one use case is required")
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = h.opts.Currency
	}

	resp := h.engine.Process(ctx, &req.CalculationRequest)
	ex := report.Build(resp.CalculationResult.UseCases, report.Options{
		Selection: req.Selection,
		Currency:  currency,
		Notes:     req.Notes,
	})

	if string(ctx.QueryArgs().Peek("format")) == "text" {
		ctx.SetContentType("text/plain; charset=utf-8")
		ctx.SetStatusCode(fasthttp.StatusOK)
		if err := report.Render(ctx, ex); err != nil {
			writeError(ctx, fasthttp.StatusInternalServerError, "Render failed: "+err.Error())
		}
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, ExportResponse{
		CalculationMetadata: resp.CalculationMetadata,
		Messages:            resp.CalculationResult.Messages,
		Export:              ex,
	})
}

func (h *Handler) handleUseCases(ctx *fasthttp.RequestCtx) {
	defs := h.engine.Registry().Definitions()
	for i := range defs {
		defs[i] = catalogView(defs[i])
	}
	writeJSON(ctx, fasthttp.StatusOK, defs)
}

func (h *Handler) handleUseCase(ctx *fasthttp.RequestCtx, id string) {
	calc, err := h.engine.Registry().Get(id)
	if err != nil {
		writeError(ctx, fasthttp.StatusNotFound, err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, catalogView(calc.Definition()))
}

func (h *Handler) handleHealth(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, model.HealthResponse{
		Status:   "ok",
		Service:  h.opts.ServiceName,
		UseCases: h.engine.Registry().Len(),
	})
}

// catalogView fills in the scenario set a use case actually calculates with.
func catalogView(def model.UseCaseDefinition) model.UseCaseDefinition {
	def.Scenarios = valuemodel.EffectiveSet(def.Scenarios)
	return def
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "Encoding failed: "+err.Error())
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(model.ErrorResponse{
		Status:  status,
		Message: message,
	})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
