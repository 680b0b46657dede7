package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from the specified file path.
// It supports YAML files and performs environment variable substitution.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Read the config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := DefaultConfig()

	// Unmarshal into config struct
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Perform environment variable substitution
	substituteEnvVars(cfg)

	return cfg, nil
}

// LoadFromViper creates a Config from an existing Viper instance.
// Useful for testing or when Viper is configured externally.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	substituteEnvVars(cfg)

	return cfg, nil
}

// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// substituteEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func substituteEnvVars(cfg *Config) {
	// Substitute in mongo source config
	cfg.Source.Mongo.URI = expandEnvVar(cfg.Source.Mongo.URI)
	cfg.Source.Mongo.Host = expandEnvVar(cfg.Source.Mongo.Host)
	cfg.Source.Mongo.User = expandEnvVar(cfg.Source.Mongo.User)
	cfg.Source.Mongo.Password = expandEnvVar(cfg.Source.Mongo.Password)
	cfg.Source.Mongo.Database = expandEnvVar(cfg.Source.Mongo.Database)

	// Substitute in mysql source config
	cfg.Source.MySQL.Host = expandEnvVar(cfg.Source.MySQL.Host)
	cfg.Source.MySQL.User = expandEnvVar(cfg.Source.MySQL.User)
	cfg.Source.MySQL.Password = expandEnvVar(cfg.Source.MySQL.Password)
	cfg.Source.MySQL.Database = expandEnvVar(cfg.Source.MySQL.Database)

	// Substitute in file target paths
	for name, target := range cfg.Targets {
		target.Path = expandEnvVar(target.Path)
		cfg.Targets[name] = target
	}

	// Substitute in logging config
	cfg.Logging.Output = expandEnvVar(cfg.Logging.Output)
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		// Return original if env var not found
		return match
	})
}

// GetTarget retrieves a specific target configuration by name.
func (c *Config) GetTarget(name string) (*TargetConfig, error) {
	target, exists := c.Targets[name]
	if !exists {
		return nil, fmt.Errorf("target %q not found in configuration", name)
	}
	return &target, nil
}

// ListTargets returns all target names defined in the configuration, sorted.
func (c *Config) ListTargets() []string {
	targets := make([]string, 0, len(c.Targets))
	for name := range c.Targets {
		targets = append(targets, name)
	}
	sort.Strings(targets)
	return targets
}

// ApplyOverrides applies CLI flag overrides to the global configuration.
// Only non-zero/non-empty values are applied.
func (c *Config) ApplyOverrides(logLevel, logFormat string, sampleSize, maxSubdocuments, workers int) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if sampleSize > 0 {
		c.Analysis.SampleSize = sampleSize
	}
	if maxSubdocuments > 0 {
		c.Analysis.MaxSubdocuments = maxSubdocuments
	}
	if workers > 0 {
		c.Analysis.Workers = workers
	}
}

// ApplyTargetOverrides applies CLI flag overrides on top of a target's
// effective analysis configuration.
func (c *Config) ApplyTargetOverrides(targetName string, sampleSize, maxSubdocuments, workers int) AnalysisConfig {
	analysis := c.GetTargetAnalysis(targetName)

	if sampleSize > 0 {
		analysis.SampleSize = sampleSize
	}
	if maxSubdocuments > 0 {
		analysis.MaxSubdocuments = maxSubdocuments
	}
	if workers > 0 {
		analysis.Workers = workers
	}

	return analysis
}
