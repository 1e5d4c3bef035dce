package model

type CalculationResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	CalculationResult   CalculationResult   `json:"calculation_result"`
}

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	TenantID               string `json:"tenant_id"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
}

type CalculationResult struct {
	Messages []CalculationMessage `json:"messages"`
	UseCases []UseCaseResult      `json:"use_cases"`
	Totals   AggregateTotals      `json:"totals"`
}

type UseCaseResult struct {
	UseCaseID                 string       `json:"use_case_id"`
	Name                      string       `json:"name,omitempty"`
	Description               string       `json:"description,omitempty"`
	Scenario                  ScenarioInfo `json:"scenario"`
	Inputs                    Inputs       `json:"inputs,omitempty"`
	Outcome                   *Outcome     `json:"outcome,omitempty"`
	CalculationMessageIndexes []int        `json:"calculation_message_indexes,omitempty"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	UseCases int    `json:"use_cases"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
