package model

type CalculationMessage struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
)

const (
	CodeUnknownUseCase   = "UNKNOWN_USE_CASE"
	CodeDuplicateUseCase = "DUPLICATE_USE_CASE"
	CodeUnknownScenario  = "UNKNOWN_SCENARIO"
	CodeUnknownInput     = "UNKNOWN_INPUT"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInputClamped     = "INPUT_CLAMPED"
)
