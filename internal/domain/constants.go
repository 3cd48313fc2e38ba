package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// History constants
const (
	// DefaultHistoryMaxAge is how long a turn stays retained
	DefaultHistoryMaxAge = 24 * time.Hour
	// DefaultMaxTurnsPerConversation caps the turns kept per conversation
	DefaultMaxTurnsPerConversation = 20
	// DefaultContextTurns is the number of turns rendered into prompt context
	DefaultContextTurns = 3
)

// Telemetry constants
const (
	// DefaultWindowSize is the capacity of each rolling response-time window
	DefaultWindowSize = 100
	// StatusOnline is the initial aggregator status
	StatusOnline = "online"
)

// Audit constants
const (
	AuditBackendSQLite = "sqlite"
	AuditBackendJSONL  = "jsonl"
	// DefaultAuditRetainDays is the default number of days to retain audit records
	DefaultAuditRetainDays = 30
	// DefaultAuditListLimit is the default number of audit records to display
	DefaultAuditListLimit = 20
	// DefaultAuditSearchLimit is the default number of search results to return
	DefaultAuditSearchLimit = 50
)

// Logging constants
const (
	// DefaultMaxFieldLength truncates long log field values
	DefaultMaxFieldLength = 500
)

// Registry limits
const (
	// MaxDomainSuggestions bounds "did you mean" suggestions
	MaxDomainSuggestions = 3
	// MaxListedServices bounds the services listed in an unsupported-action message
	MaxListedServices = 5
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
