package domain

import "time"

// Config mirrors ~/.assist/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	History             HistorySettings   `yaml:"history"`
	Telemetry           TelemetrySettings `yaml:"telemetry"`
	Audit               AuditSettings     `yaml:"audit"`
	Logging             LoggingSettings   `yaml:"logging"`
}

// HistorySettings bounds the conversation history buffer.
type HistorySettings struct {
	MaxAge       time.Duration `yaml:"max_age"`
	MaxTurns     int           `yaml:"max_turns"`
	ContextTurns int           `yaml:"context_turns"`
}

// TelemetrySettings configures the telemetry aggregator.
type TelemetrySettings struct {
	WindowSize    int    `yaml:"window_size"`
	InitialStatus string `yaml:"initial_status"`
}

// AuditSettings controls the append-only audit journal.
type AuditSettings struct {
	Enabled    bool   `yaml:"enabled"`
	Backend    string `yaml:"backend"`
	Path       string `yaml:"path"`
	RetainDays int    `yaml:"retain_days"`
}

// LoggingSettings controls the std logger.
type LoggingSettings struct {
	Verbose        bool `yaml:"verbose"`
	MaxFieldLength int  `yaml:"max_field_length"`
}
