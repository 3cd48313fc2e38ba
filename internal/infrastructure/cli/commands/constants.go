package commands

import "github.com/doeshing/assist-core/internal/domain"

// Defaults
const (
	DefaultAuditLimit       = domain.DefaultAuditListLimit
	DefaultAuditSearchLimit = domain.DefaultAuditSearchLimit
	DefaultAuditRetainDays  = domain.DefaultAuditRetainDays
	TimestampFormat         = "2006-01-02 15:04:05"
	SessionPrompt           = "> "
)

// Error messages
const (
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrAuditStoreUnavailable    = "audit journal disabled or unavailable"
	ErrSessionUnavailable       = "session service unavailable"
	ErrKeyRequired              = "--key is required"
	ErrQueryRequired            = "--query required"
	ErrInvalidRetainDays        = "--days must be > 0"
	ErrInvalidPriority          = "--priority must be between 1 and 5"
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
	MsgNoAuditRecorded          = "No audit records yet."
	MsgNoHistory                = "No turns retained for this conversation."
	MsgClearCancelled           = "Clear cancelled."
)
