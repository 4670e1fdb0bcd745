package cliconfig

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalConfigFileNames are the names to search for local config (in order).
var LocalConfigFileNames = []string{".bookstore.yaml", ".bookstore.yml"}

// FindLocalConfig searches for .bookstore.yaml or .bookstore.yml in dir.
// Returns empty string if none exists.
func FindLocalConfig(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = cwd
	}
	for _, name := range LocalConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// LoadConfigFile loads a CLIConfig from a YAML file.
func LoadConfigFile(path string) (*CLIConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, newConfigError(path, err)
	}

	// Decode a second time into a generic map to learn which keys were set.
	var keys map[string]any
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, newConfigError(path, err)
	}
	cfg.SetFields = make(map[string]bool, len(keys))
	for k := range keys {
		cfg.SetFields[k] = true
	}

	cfg.Sources = make(map[string]string)
	return &cfg, nil
}

// ConfigError represents a configuration file error.
// yaml.v3 messages already carry the line number.
type ConfigError struct {
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Path + ": " + e.Message
}

func newConfigError(path string, err error) *ConfigError {
	ce := &ConfigError{Path: path, Message: err.Error()}
	var te *yaml.TypeError
	if errors.As(err, &te) && len(te.Errors) > 0 {
		ce.Message = te.Errors[0]
	}
	return ce
}

// LoadOptions controls LoadAll.
type LoadOptions struct {
	// ConfigFile is an explicit config file. When empty, the working
	// directory is searched for a local config file.
	ConfigFile string
	// Dir overrides the directory searched for a local config file.
	Dir string
	// Getenv overrides os.Getenv.
	Getenv func(string) string
}

// LoadAll loads configuration from all sources and merges them.
// Precedence: env > config file > defaults. Flags are applied by the caller.
func LoadAll(opts LoadOptions) (*CLIConfig, error) {
	cfg := NewDefault()

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	path, source := opts.ConfigFile, SourceFile
	if path == "" {
		path = getenv(EnvConfig)
	}
	if path == "" {
		found, err := FindLocalConfig(opts.Dir)
		if err != nil {
			return nil, err
		}
		path, source = found, SourceLocal
	}

	if path != "" {
		fileCfg, err := LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		MergeConfig(cfg, fileCfg, source)
	}

	LoadEnvConfig(cfg, getenv)

	return cfg, nil
}
