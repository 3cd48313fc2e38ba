package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/assist-core/assets"
	"github.com/doeshing/assist-core/internal/domain"
	"github.com/doeshing/assist-core/internal/pkg/filesystem"
	"github.com/doeshing/assist-core/internal/ports"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "ASSIST_CONFIG"

// FileLoader loads YAML configuration from ~/.assist/config.yaml (overridable via ASSIST_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Path returns the file Load reads.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

// Load implements ports.ConfigProvider. A missing file is created from the
// embedded default.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := writeDefault(path); err != nil {
				return domain.Config{}, err
			}
			return DefaultConfig()
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	return hydrateDefaults(cfg), nil
}

// Save writes cfg to the config path.
func (l *FileLoader) Save(cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// RawValues returns the config file exactly as written, without defaults
// filled in. A missing file yields the embedded default's values.
func (l *FileLoader) RawValues() (map[string]interface{}, error) {
	data, err := os.ReadFile(l.resolvePath())
	if errors.Is(err, fs.ErrNotExist) {
		data = assets.DefaultConfigYAML
	} else if err != nil {
		return nil, err
	}

	raw := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", l.resolvePath(), err)
	}
	return raw, nil
}

// Parse decodes raw file values into a config with defaults filled in.
func Parse(raw map[string]interface{}) (domain.Config, error) {
	data, err := yaml.Marshal(raw)
	if err != nil {
		return domain.Config{}, err
	}
	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("decode config: %w", err)
	}
	return hydrateDefaults(cfg), nil
}

// SaveRaw writes raw file values to the config path. Unlike Save it keeps
// unset values unset, so defaults such as the audit path stay derived.
func (l *FileLoader) SaveRaw(raw map[string]interface{}) error {
	data, err := yaml.Marshal(raw)
	if err != nil {
		return err
	}
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, domain.SecureFilePermissions)
}

// Reset overwrites the config file with the embedded default.
func (l *FileLoader) Reset() (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}
	if err := writeDefault(path); err != nil {
		return domain.Config{}, err
	}
	return DefaultConfig()
}

// Backup copies the current config file next to itself with a timestamp
// suffix and returns the copy's path.
func (l *FileLoader) Backup() (string, error) {
	path := l.resolvePath()
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	backup := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102T150405"))
	if err := os.WriteFile(backup, data, domain.SecureFilePermissions); err != nil {
		return "", err
	}
	return backup, nil
}

// DefaultConfig parses the embedded default configuration.
func DefaultConfig() (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse embedded config: %w", err)
	}
	return hydrateDefaults(cfg), nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.AppDir(), "config.yaml")
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, domain.DirectoryPermissions)
}

func writeDefault(path string) error {
	return os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.History.MaxAge == 0 {
		cfg.History.MaxAge = domain.DefaultHistoryMaxAge
	}
	if cfg.History.MaxTurns == 0 {
		cfg.History.MaxTurns = domain.DefaultMaxTurnsPerConversation
	}
	if cfg.History.ContextTurns == 0 {
		cfg.History.ContextTurns = domain.DefaultContextTurns
	}
	if cfg.Telemetry.WindowSize == 0 {
		cfg.Telemetry.WindowSize = domain.DefaultWindowSize
	}
	if cfg.Telemetry.InitialStatus == "" {
		cfg.Telemetry.InitialStatus = domain.StatusOnline
	}
	if cfg.Audit.RetainDays == 0 {
		cfg.Audit.RetainDays = domain.DefaultAuditRetainDays
	}
	if cfg.Audit.Backend == "" {
		cfg.Audit.Backend = domain.AuditBackendSQLite
	}
	if cfg.Audit.Path == "" {
		cfg.Audit.Path = defaultAuditPath(cfg.Audit.Backend)
	} else {
		cfg.Audit.Path = filesystem.ExpandPath(cfg.Audit.Path)
	}
	if cfg.Logging.MaxFieldLength == 0 {
		cfg.Logging.MaxFieldLength = domain.DefaultMaxFieldLength
	}
	return cfg
}

func defaultAuditPath(backend string) string {
	if backend == domain.AuditBackendJSONL {
		return filepath.Join(filesystem.AppDir(), "audit.jsonl")
	}
	return filepath.Join(filesystem.AppDir(), "audit.db")
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
