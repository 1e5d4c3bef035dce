package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"roi-engine/internal/calculators"
	"roi-engine/internal/cart"
	"roi-engine/internal/logging"
	"roi-engine/internal/metrics"
	"roi-engine/internal/model"
	"roi-engine/internal/telemetry"
	"roi-engine/internal/valuemodel"
)

type Engine struct {
	registry *calculators.Registry
	observer metrics.Observer
	tracer   trace.Tracer
}

// New returns an engine over registry. A nil observer discards metrics.
func New(registry *calculators.Registry, observer metrics.Observer) *Engine {
	if observer == nil {
		observer = metrics.Noop{}
	}
	return &Engine{
		registry: registry,
		observer: observer,
		tracer:   telemetry.Tracer(),
	}
}

func (e *Engine) Registry() *calculators.Registry {
	return e.registry
}

// Process evaluates every selection in req against a fresh cart. Problems with
// individual entries are reported as messages; an unknown use case is critical
// and marks the calculation as failed, but the remaining entries still run.
func (e *Engine) Process(ctx context.Context, req *model.CalculationRequest) *model.CalculationResponse {
	start := time.Now()

	ctx, span := e.tracer.Start(ctx, "engine.Process", trace.WithAttributes(
		attribute.String("tenant_id", req.TenantID),
		attribute.Int("use_case_count", len(req.UseCases)),
	))
	defer span.End()

	c := cart.New(e.registry)

	allMessages := []model.CalculationMessage{}
	results := make([]model.UseCaseResult, 0, len(req.UseCases))
	instances := make([]*cart.Instance, 0, len(req.UseCases))
	outcome := model.OutcomeSuccess

	addMessage := func(level, code, format string, args ...any) int {
		msg := model.CalculationMessage{
			ID:      len(allMessages),
			Level:   level,
			Code:    code,
			Message: fmt.Sprintf(format, args...),
		}
		allMessages = append(allMessages, msg)
		return msg.ID
	}

	for _, sel := range req.UseCases {
		inst, err := c.Add(sel.UseCaseID)
		if err != nil {
			var idx int
			if errors.Is(err, cart.ErrAlreadyInCart) {
				idx = addMessage(model.LevelWarning, model.CodeDuplicateUseCase, "Use case %s already selected; later entry ignored", sel.UseCaseID)
			} else {
				idx = addMessage(model.LevelCritical, model.CodeUnknownUseCase, "Unknown use case: %s", sel.UseCaseID)
				outcome = model.OutcomeFailure
			}
			results = append(results, model.UseCaseResult{
				UseCaseID:                 sel.UseCaseID,
				CalculationMessageIndexes: []int{idx},
			})
			instances = append(instances, nil)
			continue
		}

		var msgIndexes []int

		if sel.Scenario != "" {
			if err := c.SetScenario(sel.UseCaseID, sel.Scenario); err != nil {
				logging.Error(ctx).Err(err).Str("use_case", sel.UseCaseID).Msg("scenario not applied")
			}
		}
		_, res := valuemodel.ResolveScenario(inst.Definition().Scenarios, inst.Scenario)
		if res != valuemodel.Requested {
			span.AddEvent("scenario_fallback", trace.WithAttributes(
				attribute.String("use_case", sel.UseCaseID),
				attribute.String("scenario", inst.Scenario),
				attribute.String("resolution", res.String()),
			))
		}
		switch res {
		case valuemodel.Fallback:
			msgIndexes = append(msgIndexes, addMessage(model.LevelWarning, model.CodeUnknownScenario,
				"Scenario %q is not defined for %s; using %s", inst.Scenario, sel.UseCaseID, valuemodel.DefaultScenarioKey))
			e.observer.ObserveScenarioFallback(sel.UseCaseID)
		case valuemodel.Missing:
			msgIndexes = append(msgIndexes, addMessage(model.LevelWarning, model.CodeUnknownScenario,
				"Scenario %q is not defined for %s; no reduction applied", inst.Scenario, sel.UseCaseID))
			e.observer.ObserveScenarioFallback(sel.UseCaseID)
		}

		for _, inputID := range sortedInputIDs(sel.Inputs) {
			msgIndexes = append(msgIndexes, e.applyInput(c, sel.UseCaseID, inputID, sel.Inputs[inputID], addMessage)...)
		}

		results = append(results, model.UseCaseResult{
			UseCaseID:                 sel.UseCaseID,
			CalculationMessageIndexes: msgIndexes,
		})
		instances = append(instances, inst)
	}

	totals := c.Totals()
	for i, inst := range instances {
		if inst == nil {
			continue
		}
		r := inst.UseCaseResult()
		r.CalculationMessageIndexes = results[i].CalculationMessageIndexes
		results[i] = r
		e.observer.ObserveCalculation(inst.UseCaseID, inst.Scenario, inst.Result.AnnualValue)
	}

	elapsed := time.Since(start)
	now := time.Now().UTC()

	span.SetAttributes(
		attribute.String("outcome", outcome),
		attribute.Float64("total_annual_value", totals.TotalAnnualValue),
		attribute.Int("message_count", len(allMessages)),
	)
	if outcome == model.OutcomeFailure {
		span.SetStatus(codes.Error, "unknown use case in request")
	}

	logging.Debug(ctx).
		Str("tenant_id", req.TenantID).
		Int("use_cases", c.Len()).
		Int("messages", len(allMessages)).
		Float64("total_annual_value", totals.TotalAnnualValue).
		Dur("elapsed", elapsed).
		Msg("calculation processed")

	return &model.CalculationResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          uuid.New().String(),
			TenantID:               req.TenantID,
			CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CalculationCompletedAt: now.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     outcome,
		},
		CalculationResult: model.CalculationResult{
			Messages: allMessages,
			UseCases: results,
			Totals:   totals,
		},
	}
}

type messageFunc func(level, code, format string, args ...any) int

func (e *Engine) applyInput(c *cart.Cart, useCaseID, inputID string, raw any, addMessage messageFunc) []int {
	value := valuemodel.ParseNumber(raw, math.NaN())
	if math.IsNaN(value) {
		return []int{addMessage(model.LevelWarning, model.CodeInvalidInput,
			"Input %s.%s is not a number; default kept", useCaseID, inputID)}
	}

	kept, err := c.SetInput(useCaseID, inputID, value)
	if errors.Is(err, cart.ErrUnknownInput) {
		return []int{addMessage(model.LevelWarning, model.CodeUnknownInput,
			"Input %s is not defined for %s; ignored", inputID, useCaseID)}
	}
	if err != nil {
		return nil
	}
	if kept != value {
		return []int{addMessage(model.LevelWarning, model.CodeInputClamped,
			"Input %s.%s raised from %g to minimum %g", useCaseID, inputID, value, kept)}
	}
	return nil
}

func sortedInputIDs(inputs map[string]any) []string {
	ids := make([]string, 0, len(inputs))
	for id := range inputs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
