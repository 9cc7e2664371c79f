// Package config provides hierarchical configuration management for tfdiag using koanf.
// Configuration is loaded with priority: environment variables (TFDIAG_*) > project config
// (.tfdiag/config.yml) > user config (~/.config/tfdiag/config.yml) > defaults.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/nerdtronik/tfdiag/internal/outcome"
	"github.com/nerdtronik/tfdiag/internal/tferrors"
)

const envPrefix = "TFDIAG_"

// Configuration represents the tfdiag CLI configuration
type Configuration struct {
	// NoColor disables colored output even on a terminal.
	// Can be set via TFDIAG_NO_COLOR env var.
	NoColor bool `koanf:"no_color"`

	// Output selects the result format: "text" or "yaml".
	Output string `koanf:"output" validate:"oneof=text yaml"`

	// MaxParallel bounds how many outcome records are classified concurrently.
	MaxParallel int `koanf:"max_parallel" validate:"min=1,max=64"`

	// SuccessCodes lists, per kind, the exit codes that count as success.
	// Kinds not listed use the generic contract (exit code 0).
	// Example: plan: [0, 2] for 'terraform plan -detailed-exitcode'.
	SuccessCodes map[string][]int `koanf:"success_codes"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .tfdiag/config.yml)
	ProjectConfigPath string
	// UserConfigPath overrides the user config path (default: XDG config dir)
	UserConfigPath string
	// WarningWriter receives warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	userPath := opts.UserConfigPath
	if userPath == "" {
		userPath, _ = UserConfigPath()
	}
	if err := loadConfigFile(k, userPath, "user", warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	projectPath := opts.ProjectConfigPath
	if projectPath == "" {
		projectPath = ProjectConfigPath()
	}
	if err := loadConfigFile(k, projectPath, "project", warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k, projectPath)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadConfigFile loads a YAML config file, or a JSON one when the path ends
// in .json. A missing file is not an error.
func loadConfigFile(k *koanf.Koanf, path, configType string, warningWriter io.Writer, skipWarnings bool) error {
	if !fileExists(path) {
		return nil
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return tferrors.ConfigParseError(path, err)
		}
		if !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Using JSON config at %s\n", path)
			fmt.Fprintf(warningWriter, "  YAML (%s) is the preferred format.\n\n", filepath.Base(ProjectConfigPath()))
		}
		return nil
	}
	if err := ValidateYAMLSyntax(path); err != nil {
		return tferrors.ConfigParseError(path, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged configuration
func finalizeConfig(k *koanf.Koanf, source string) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, source); err != nil {
		return nil, tferrors.WrapWithMessage(err, tferrors.Configuration,
			"config validation failed",
			"Check "+source+" and TFDIAG_* environment variables",
		)
	}

	return &cfg, nil
}

// Classifier builds an outcome classifier from the configured success codes.
func (c *Configuration) Classifier() (*outcome.Classifier, error) {
	kinds, err := successCodeKinds(c.SuccessCodes)
	if err != nil {
		return nil, tferrors.WrapWithMessage(err, tferrors.Configuration, "invalid success_codes")
	}

	opts := make([]outcome.ClassifierOption, 0, len(kinds))
	for _, kind := range tferrors.Kinds() {
		if codes, ok := kinds[kind]; ok {
			opts = append(opts, outcome.WithSuccessCodes(kind, codes...))
		}
	}
	return outcome.NewClassifier(opts...)
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: TFDIAG_MAX_PARALLEL -> max_parallel
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}
