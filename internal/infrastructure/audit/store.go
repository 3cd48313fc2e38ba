// Package audit keeps an append-only journal of handled requests. Nothing in
// the journal is ever read back into conversation history or telemetry.
package audit

import (
	"fmt"
	"strings"

	"github.com/doeshing/assist-core/internal/domain"
	"github.com/doeshing/assist-core/internal/ports"
)

// Open returns the store for the configured backend.
func Open(settings domain.AuditSettings) (ports.AuditRepository, error) {
	switch strings.ToLower(settings.Backend) {
	case "", domain.AuditBackendSQLite:
		return NewSQLiteStore(settings.Path), nil
	case domain.AuditBackendJSONL:
		return NewFileStore(settings.Path), nil
	default:
		return nil, fmt.Errorf("unknown audit backend %q", settings.Backend)
	}
}
