package implint

import (
	"os"

	"gopkg.in/yaml.v3"

	tt "github.com/implint/implint/internal/types"
)

// DefaultConfigPath is where implint looks for configuration when no
// --config flag is given.
const DefaultConfigPath = ".implint.yaml"

// Config represents the overall configuration: per-rule severity overrides
// and paths excluded from checking.
type Config struct {
	Name        string                   `yaml:"name"`
	Rules       map[string]tt.ConfigRule `yaml:"rules"`
	IgnorePaths []string                 `yaml:"ignore-paths"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Name:  "implint",
		Rules: map[string]tt.ConfigRule{},
	}
}

// ParseConfigurationFile reads and decodes a YAML configuration file.
func ParseConfigurationFile(path string) (Config, error) {
	var config Config

	f, err := os.Open(path)
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil {
		return config, err
	}
	return config, nil
}

// WriteConfigurationFile writes the configuration as YAML, creating or
// truncating the file at path.
func WriteConfigurationFile(path string, config Config) error {
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, d, 0o644)
}
