// Package config provides configuration structures and loading for GoSchema.
package config

// Config represents the complete application configuration.
type Config struct {
	Source   SourceConfig            `yaml:"source" mapstructure:"source"`
	Targets  map[string]TargetConfig `yaml:"targets" mapstructure:"targets"`
	Analysis AnalysisConfig          `yaml:"analysis" mapstructure:"analysis"`
	Logging  LoggingConfig           `yaml:"logging" mapstructure:"logging"`
}

// SourceConfig selects and configures the document source.
type SourceConfig struct {
	Type  string      `yaml:"type" mapstructure:"type"` // mongo, mysql, or file
	Mongo MongoConfig `yaml:"mongo" mapstructure:"mongo"`
	MySQL MySQLConfig `yaml:"mysql" mapstructure:"mysql"`
}

// MongoConfig represents a MongoDB connection configuration.
// URI takes precedence over the discrete fields when set.
type MongoConfig struct {
	URI            string `yaml:"uri" mapstructure:"uri"`
	Host           string `yaml:"host" mapstructure:"host"`
	Port           int    `yaml:"port" mapstructure:"port"`
	User           string `yaml:"user" mapstructure:"user"`
	Password       string `yaml:"password" mapstructure:"password"`
	Database       string `yaml:"database" mapstructure:"database"`
	ConnectTimeout int    `yaml:"connect_timeout" mapstructure:"connect_timeout"` // seconds
}

// MySQLConfig represents a MySQL connection configuration for sources that
// sample JSON documents out of a table column.
type MySQLConfig struct {
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	TLS                string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
}

// TargetConfig represents one named analysis target.
// Exactly one of Collection (mongo), Table+Column (mysql), or Path (file)
// applies, matching the configured source type.
type TargetConfig struct {
	Collection string          `yaml:"collection" mapstructure:"collection"`
	Table      string          `yaml:"table" mapstructure:"table"`
	Column     string          `yaml:"column" mapstructure:"column"`
	Path       string          `yaml:"path" mapstructure:"path"`
	Analysis   *AnalysisConfig `yaml:"analysis,omitempty" mapstructure:"analysis"`
}

// AnalysisConfig represents sampling and traversal settings.
type AnalysisConfig struct {
	SampleSize      int `yaml:"sample_size" mapstructure:"sample_size"`
	MaxSubdocuments int `yaml:"max_subdocuments" mapstructure:"max_subdocuments"`
	Workers         int `yaml:"workers" mapstructure:"workers"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Type: "mongo",
			Mongo: MongoConfig{
				Host:           "localhost",
				Port:           27017,
				ConnectTimeout: 10,
			},
			MySQL: MySQLConfig{
				Port:               3306,
				TLS:                "preferred",
				MaxConnections:     10,
				MaxIdleConnections: 5,
			},
		},
		Analysis: AnalysisConfig{
			SampleSize:      100,
			MaxSubdocuments: 500,
			Workers:         4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// GetTargetAnalysis returns the analysis config for a target by name, falling
// back to global settings where the target does not override them.
func (c *Config) GetTargetAnalysis(targetName string) AnalysisConfig {
	target, err := c.GetTarget(targetName)
	if err != nil {
		return c.Analysis
	}
	return target.GetTargetAnalysis(c.Analysis)
}

// GetTargetAnalysis returns the target's analysis config, falling back to the
// global config for unset values.
func (tc *TargetConfig) GetTargetAnalysis(global AnalysisConfig) AnalysisConfig {
	if tc.Analysis == nil {
		return global
	}

	// Merge target-specific with global defaults
	result := global
	if tc.Analysis.SampleSize > 0 {
		result.SampleSize = tc.Analysis.SampleSize
	}
	if tc.Analysis.MaxSubdocuments > 0 {
		result.MaxSubdocuments = tc.Analysis.MaxSubdocuments
	}
	if tc.Analysis.Workers > 0 {
		result.Workers = tc.Analysis.Workers
	}
	return result
}
