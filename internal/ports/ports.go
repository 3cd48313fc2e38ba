// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the action governance core and
// the collaborators around it. The platform's service-call executor, the LLM
// responder and the entity pre-resolver all live outside this module and are
// consumed only through the narrow interfaces declared here.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., ServiceExecutor, Responder)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"
	"time"

	"github.com/doeshing/assist-core/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.assist/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// Clock abstracts time so eviction, day rollover and timing are testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

// Now returns the wall clock time (with its monotonic reading).
func (SystemClock) Now() time.Time { return time.Now() }

// ActionRegistry validates requested actions against the domain catalog.
// Rejections come back as *domain.ValidationError.
type ActionRegistry interface {
	ValidateAction(domainName, action string) (string, error)
	ValidateParameters(domainName, service string, provided map[string]any) error
}

// ServiceExecutor runs a validated service call on the smart-home platform.
// The platform owns the side effects; this module only decides and records.
type ServiceExecutor interface {
	CallService(ctx context.Context, call domain.ServiceCall) (domain.ServiceResult, error)
}

// ResponderRequest carries the prompt material for a free-form request.
type ResponderRequest struct {
	ConversationID string
	Utterance      string
	RecentContext  string
}

// ResponderResponse is the language model's reply plus its token usage.
type ResponderResponse struct {
	Reply   string
	Tokens  int
	Actions []domain.ActionRecord
}

// Responder answers free-form requests, typically by calling an LLM.
type Responder interface {
	Respond(ctx context.Context, req ResponderRequest) (ResponderResponse, error)
}

// EntityResolver attempts to pin an utterance to concrete entity ids before
// full entity discovery runs.
type EntityResolver interface {
	Resolve(ctx context.Context, utterance, domainName string) ([]string, bool)
}

// AuditRepository persists handled requests to an append-only journal.
type AuditRepository interface {
	Save(domain.AuditRecord) error
	Records(limit int, search string) ([]domain.AuditRecord, error)
	Clear() error
	ExportJSON(dest string) error
	PruneOlderThan(days int) error
	Path() string
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
