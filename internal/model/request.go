package model

type CalculationRequest struct {
	TenantID string             `json:"tenant_id"`
	Currency string             `json:"currency,omitempty"`
	UseCases []UseCaseSelection `json:"use_cases"`
}

// UseCaseSelection is one cart entry as submitted by a client. Input values
// may be numbers or numeric strings; missing inputs take their defaults.
type UseCaseSelection struct {
	UseCaseID string         `json:"use_case_id"`
	Scenario  string         `json:"scenario,omitempty"`
	Inputs    map[string]any `json:"inputs,omitempty"`
}

type ExportRequest struct {
	CalculationRequest
	// Selection limits the export to these use case ids; empty means all.
	Selection []string `json:"selection,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}
