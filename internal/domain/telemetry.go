package domain

import "time"

// OperationKind selects which rolling window a timed operation feeds.
type OperationKind string

const (
	OperationFastPath OperationKind = "fast_path"
	OperationLLM      OperationKind = "llm"
)

// TelemetrySnapshot is a point-in-time view of the aggregator. It is derived
// on demand and never stored.
type TelemetrySnapshot struct {
	Status          string     `json:"status"`
	LastRequestTime *time.Time `json:"last_request_time"`

	FastPathAvgResponseTime  float64 `json:"fast_path_avg_response_time"`
	FastPathLastResponseTime float64 `json:"fast_path_last_response_time"`
	LLMAvgResponseTime       float64 `json:"llm_avg_response_time"`
	LLMLastResponseTime      float64 `json:"llm_last_response_time"`

	FastPathHits   int     `json:"fast_path_hits"`
	FastPathMisses int     `json:"fast_path_misses"`
	FastPathRate   float64 `json:"fast_path_rate"`

	PreResolveHits     int     `json:"pre_resolve_hits"`
	PreResolveAttempts int     `json:"pre_resolve_attempts"`
	PreResolveRate     float64 `json:"pre_resolve_rate"`

	LLMCallsTotal   int `json:"llm_calls_total"`
	LLMCallsToday   int `json:"llm_calls_today"`
	LLMErrors       int `json:"llm_errors"`
	TokensUsedTotal int `json:"tokens_used_total"`
	TokensUsedToday int `json:"tokens_used_today"`

	RequestsToday int `json:"requests_today"`
}
