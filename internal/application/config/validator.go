package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/assist-core/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if cfg.ConfigFormatVersion != "" && cfg.ConfigFormatVersion != "1" {
		return fmt.Errorf("unsupported config_format_version %s", cfg.ConfigFormatVersion)
	}
	if err := validateHistory(cfg.History); err != nil {
		return err
	}
	if err := validateTelemetry(cfg.Telemetry); err != nil {
		return err
	}
	if err := validateAudit(cfg.Audit); err != nil {
		return err
	}
	if err := validateLogging(cfg.Logging); err != nil {
		return err
	}
	return nil
}

func validateHistory(history domain.HistorySettings) error {
	if history.MaxAge <= 0 {
		return fmt.Errorf("history.max_age must be > 0")
	}
	if history.MaxTurns <= 0 {
		return fmt.Errorf("history.max_turns must be > 0")
	}
	if history.ContextTurns <= 0 {
		return fmt.Errorf("history.context_turns must be > 0")
	}
	if history.ContextTurns > history.MaxTurns {
		return fmt.Errorf("history.context_turns (%d) cannot exceed history.max_turns (%d)", history.ContextTurns, history.MaxTurns)
	}
	return nil
}

func validateTelemetry(telemetry domain.TelemetrySettings) error {
	if telemetry.WindowSize <= 0 {
		return fmt.Errorf("telemetry.window_size must be > 0")
	}
	if strings.TrimSpace(telemetry.InitialStatus) == "" {
		return errors.New("telemetry.initial_status must be set")
	}
	return nil
}

func validateAudit(audit domain.AuditSettings) error {
	switch strings.ToLower(audit.Backend) {
	case domain.AuditBackendSQLite, domain.AuditBackendJSONL:
	default:
		return fmt.Errorf("audit.backend must be sqlite|jsonl, got %s", audit.Backend)
	}
	if audit.RetainDays <= 0 {
		return fmt.Errorf("audit.retain_days must be > 0")
	}
	if audit.Enabled && audit.Path == "" {
		return errors.New("audit.path must be set when audit is enabled")
	}
	return nil
}

func validateLogging(logging domain.LoggingSettings) error {
	if logging.MaxFieldLength < 0 {
		return fmt.Errorf("logging.max_field_length must be >= 0")
	}
	return nil
}
