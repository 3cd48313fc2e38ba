package domain

// SessionRequest is one incoming request for the orchestration layer. A
// request naming a Domain is a structured (fast path) command; one without
// is free-form text for the responder.
type SessionRequest struct {
	ConversationID string
	Utterance      string
	Domain         string
	Action         string
	EntityIDs      []string
	Params         map[string]any
}

// Structured reports whether the request names a target domain.
func (r SessionRequest) Structured() bool {
	return r.Domain != ""
}

// SessionResponse is the result handed back to the conversational layer.
type SessionResponse struct {
	Reply     string
	Service   string
	Outcome   AuditOutcome
	Rejection *ValidationError
	Actions   []ActionRecord
}

// ServiceCall is a validated call handed to the platform executor.
type ServiceCall struct {
	Domain    string
	Service   string
	EntityIDs []string
	Data      map[string]any
}

// ServiceResult is what the platform executor reports back.
type ServiceResult struct {
	Message string
}

// Diagnostics bundles history and telemetry state for a diagnostics surface.
type Diagnostics struct {
	History   HistoryStats      `json:"history"`
	Telemetry TelemetrySnapshot `json:"telemetry"`
}
