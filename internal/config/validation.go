package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateSource()...)

	if len(c.Targets) == 0 {
		errors = append(errors, ValidationError{
			Field:   "targets",
			Message: "at least one target must be defined",
		})
	}
	for name, target := range c.Targets {
		errors = append(errors, c.validateTarget(name, &target)...)
	}

	errors = append(errors, c.validateAnalysis("analysis", &c.Analysis)...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateSource() ValidationErrors {
	var errors ValidationErrors

	switch c.Source.Type {
	case "mongo":
		m := &c.Source.Mongo
		if m.URI == "" && m.Host == "" {
			errors = append(errors, ValidationError{
				Field:   "source.mongo",
				Message: "either uri or host is required",
			})
		}
		if m.URI == "" && m.Database == "" {
			errors = append(errors, ValidationError{
				Field:   "source.mongo.database",
				Message: "database is required",
			})
		}
		if m.Port < 0 || m.Port > 65535 {
			errors = append(errors, ValidationError{
				Field:   "source.mongo.port",
				Message: "port must be between 0 and 65535",
			})
		}
	case "mysql":
		m := &c.Source.MySQL
		if m.Host == "" {
			errors = append(errors, ValidationError{
				Field:   "source.mysql.host",
				Message: "host is required",
			})
		}
		if m.Database == "" {
			errors = append(errors, ValidationError{
				Field:   "source.mysql.database",
				Message: "database is required",
			})
		}
		if m.Port < 0 || m.Port > 65535 {
			errors = append(errors, ValidationError{
				Field:   "source.mysql.port",
				Message: "port must be between 0 and 65535",
			})
		}
		switch m.TLS {
		case "", "disable", "preferred", "required":
		default:
			errors = append(errors, ValidationError{
				Field:   "source.mysql.tls",
				Message: "tls must be one of: disable, preferred, required",
			})
		}
	case "file":
		// Nothing global to check; each target carries its own path.
	default:
		errors = append(errors, ValidationError{
			Field:   "source.type",
			Message: "type must be one of: mongo, mysql, file",
		})
	}

	return errors
}

func (c *Config) validateTarget(name string, target *TargetConfig) ValidationErrors {
	var errors ValidationErrors
	prefix := fmt.Sprintf("targets.%s", name)

	switch c.Source.Type {
	case "mongo":
		if target.Collection == "" {
			errors = append(errors, ValidationError{
				Field:   prefix + ".collection",
				Message: "collection is required for mongo sources",
			})
		}
	case "mysql":
		if target.Table == "" {
			errors = append(errors, ValidationError{
				Field:   prefix + ".table",
				Message: "table is required for mysql sources",
			})
		}
		if target.Column == "" {
			errors = append(errors, ValidationError{
				Field:   prefix + ".column",
				Message: "column is required for mysql sources",
			})
		}
	case "file":
		if target.Path == "" {
			errors = append(errors, ValidationError{
				Field:   prefix + ".path",
				Message: "path is required for file sources",
			})
		}
	}

	if target.Analysis != nil {
		errors = append(errors, c.validateAnalysis(prefix+".analysis", target.Analysis)...)
	}

	return errors
}

func (c *Config) validateAnalysis(prefix string, analysis *AnalysisConfig) ValidationErrors {
	var errors ValidationErrors

	if analysis.SampleSize < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".sample_size",
			Message: "sample_size must not be negative",
		})
	}
	if analysis.MaxSubdocuments < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".max_subdocuments",
			Message: "max_subdocuments must not be negative",
		})
	}
	if analysis.Workers < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".workers",
			Message: "workers must not be negative",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be one of: debug, info, warn, error",
		})
	}

	switch c.Logging.Format {
	case "", "json", "text":
	default:
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be one of: json, text",
		})
	}

	return errors
}
