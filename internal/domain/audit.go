package domain

import "time"

// AuditOutcome classifies how a session request ended.
type AuditOutcome string

const (
	OutcomeExecuted AuditOutcome = "executed"
	OutcomeRejected AuditOutcome = "rejected"
	OutcomeFailed   AuditOutcome = "failed"
	OutcomeAnswered AuditOutcome = "answered"
)

// AuditRecord captures one handled request in the append-only journal.
type AuditRecord struct {
	Timestamp      time.Time    `json:"timestamp"`
	ConversationID string       `json:"conversation_id"`
	Utterance      string       `json:"utterance"`
	Domain         string       `json:"domain,omitempty"`
	Action         string       `json:"action,omitempty"`
	Service        string       `json:"service,omitempty"`
	Outcome        AuditOutcome `json:"outcome"`
	Reason         string       `json:"reason,omitempty"`
	DurationMS     float64      `json:"duration_ms"`
}
