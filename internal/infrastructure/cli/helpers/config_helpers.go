package helpers

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/assist-core/internal/app"
	configapp "github.com/doeshing/assist-core/internal/application/config"
	"github.com/doeshing/assist-core/internal/domain"
	configinfra "github.com/doeshing/assist-core/internal/infrastructure/config"
)

// GetConfigLoader extracts the config loader from container with error handling
func GetConfigLoader(container *app.Container) (*configinfra.FileLoader, error) {
	if container.ConfigLoader == nil {
		return nil, fmt.Errorf("config loader unavailable")
	}
	return container.ConfigLoader, nil
}

// SetConfigValue changes one key in the config file. The key must name a
// leaf of the config schema. Only the file's own values are rewritten, so
// derived defaults are never persisted.
func SetConfigValue(container *app.Container, keyPath string, value interface{}) (domain.Config, error) {
	loader, err := GetConfigLoader(container)
	if err != nil {
		return domain.Config{}, err
	}

	keys := strings.Split(keyPath, ".")
	if err := checkSchemaKey(keys); err != nil {
		return domain.Config{}, err
	}

	raw, err := loader.RawValues()
	if err != nil {
		return domain.Config{}, fmt.Errorf("failed to read configuration: %w", err)
	}
	if !SetNestedMapValue(raw, keys, value) {
		return domain.Config{}, fmt.Errorf("unable to set key %s", keyPath)
	}

	cfg, err := configinfra.Parse(raw)
	if err != nil {
		return domain.Config{}, fmt.Errorf("invalid value for %s: %w", keyPath, err)
	}
	if err := configapp.Validate(cfg); err != nil {
		return domain.Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := createBackupIfExists(loader); err != nil {
		return domain.Config{}, err
	}
	if err := loader.SaveRaw(raw); err != nil {
		return domain.Config{}, fmt.Errorf("failed to save configuration: %w", err)
	}
	return cfg, nil
}

// checkSchemaKey rejects key paths that are not a leaf of domain.Config.
func checkSchemaKey(keys []string) error {
	schema, err := ConfigToMap(domain.Config{})
	if err != nil {
		return err
	}
	keyPath := strings.Join(keys, ".")
	node, found := TraverseNestedMap(schema, keys)
	if !found {
		return fmt.Errorf("unknown key %s", keyPath)
	}
	if _, section := node.(map[string]interface{}); section {
		return fmt.Errorf("key %s is a section, set one of its fields", keyPath)
	}
	return nil
}

// createBackupIfExists creates a backup of the config file if it exists
func createBackupIfExists(loader *configinfra.FileLoader) error {
	if _, err := os.Stat(loader.Path()); err == nil {
		if _, err := loader.Backup(); err != nil {
			return fmt.Errorf("failed to create configuration backup: %w", err)
		}
	}
	return nil
}

// ParseYAMLValue parses a string value as YAML, falling back to literal string
func ParseYAMLValue(input string) (interface{}, error) {
	var parsed interface{}
	if err := yaml.Unmarshal([]byte(input), &parsed); err != nil {
		// If YAML parsing fails, treat as literal string
		return input, nil
	}
	if parsed == nil && input != "" && input != "null" && input != "~" {
		return input, nil
	}
	return parsed, nil
}

// ConfigToMap converts domain.Config to its YAML-shaped map form
func ConfigToMap(cfg domain.Config) (map[string]interface{}, error) {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	var cfgMap map[string]interface{}
	if err := yaml.Unmarshal(raw, &cfgMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal to map: %w", err)
	}

	return cfgMap, nil
}

// SetNestedMapValue sets a value in a nested map using a key path
// Returns true if successful, false otherwise
func SetNestedMapValue(root map[string]interface{}, keyPath []string, value interface{}) bool {
	if len(keyPath) == 0 {
		return false
	}

	current := root
	for i := 0; i < len(keyPath)-1; i++ {
		key := keyPath[i]
		next, exists := current[key]

		if !exists {
			newChild := map[string]interface{}{}
			current[key] = newChild
			current = newChild
			continue
		}

		child, isMap := next.(map[string]interface{})
		if !isMap {
			// Overwrite non-map value with new map
			child = map[string]interface{}{}
			current[key] = child
		}
		current = child
	}

	current[keyPath[len(keyPath)-1]] = value
	return true
}

// TraverseNestedMap retrieves a value from a nested map using a key path
// Returns the value and true if found, nil and false otherwise
func TraverseNestedMap(data interface{}, keyPath []string) (interface{}, bool) {
	if len(keyPath) == 0 {
		return data, true
	}

	switch node := data.(type) {
	case map[string]interface{}:
		next, exists := node[keyPath[0]]
		if !exists {
			return nil, false
		}
		return TraverseNestedMap(next, keyPath[1:])
	default:
		return nil, false
	}
}
