package dto

// AlertEvaluation is the outcome of one alert evaluator run.
type AlertEvaluation struct {
	Evaluated int      `json:"evaluated"`
	Triggered int      `json:"triggered"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors"`
}
