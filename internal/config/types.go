// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/jmodpath/jmodpath/pkg/platform"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces the dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces the light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// LogLevelDebug logs rescans and skipped descriptor items.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs descriptor loads and saves.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs only warnings such as output ambiguities.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs only errors.
	LogLevelError LogLevel = "error"

	// DefaultDescriptor is the descriptor looked up when none is configured.
	DefaultDescriptor DescriptorPath = "jmodpath.cue"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidPathSeparator is returned when a PathSeparator value is not recognized.
	ErrInvalidPathSeparator = errors.New("invalid path separator")
	// ErrInvalidDescriptorPath is returned when a DescriptorPath is whitespace-only.
	ErrInvalidDescriptorPath = errors.New("invalid descriptor path")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// LogLevel is the minimum level written to stderr.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	// It wraps ErrInvalidLogLevel for errors.Is() compatibility.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// PathSeparator separates patch locations in a patch-module value.
	// The zero value means the host platform's path-list separator.
	PathSeparator string

	// InvalidPathSeparatorError is returned when a PathSeparator is neither
	// empty, ":" nor ";".
	InvalidPathSeparatorError struct {
		Value PathSeparator
	}

	// DescriptorPath is the path of a project descriptor file.
	// The zero value means DefaultDescriptor.
	DescriptorPath string

	// InvalidDescriptorPathError is returned when a DescriptorPath is
	// non-empty but whitespace-only.
	InvalidDescriptorPathError struct {
		Value DescriptorPath
	}

	// InvalidConfigError collects the field errors of a Config.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Descriptor is the project descriptor used when no flag names one.
		Descriptor DescriptorPath `json:"descriptor" mapstructure:"descriptor"`
		// PathSeparator overrides the patch location separator.
		PathSeparator PathSeparator `json:"path_separator" mapstructure:"path_separator"`
		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Log configures diagnostics on stderr.
		Log LogConfig `json:"log" mapstructure:"log"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		// Verbose prints error chains and debug logs.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// ColorScheme selects the glamour and lipgloss palette.
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}

	// LogConfig configures diagnostics on stderr.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Descriptor:    DefaultDescriptor,
		PathSeparator: "",
		UI: UIConfig{
			Verbose:     false,
			ColorScheme: ColorSchemeAuto,
		},
		Log: LogConfig{Level: LogLevelWarn},
	}
}

// Validate checks every field and returns an *InvalidConfigError listing the
// failures, or nil.
func (c Config) Validate() error {
	var errs []error
	for _, err := range []error{
		c.Descriptor.Validate(),
		c.PathSeparator.Validate(),
		c.UI.ColorScheme.Validate(),
		c.Log.Level.Validate(),
	} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid config: %v", e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid config: %d field errors", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig and the field errors, so errors.Is matches
// both the config sentinel and each field sentinel.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// Validate returns an error unless the scheme is auto, dark or light.
func (cs ColorScheme) Validate() error {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: cs}
	}
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Validate returns an error unless the level is debug, info, warn or error.
func (l LogLevel) Validate() error {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return &InvalidLogLevelError{Value: l}
	}
}

// Level converts the configured level for charmbracelet/log.
func (l LogLevel) Level() log.Level {
	switch l {
	case LogLevelDebug:
		return log.DebugLevel
	case LogLevelInfo:
		return log.InfoLevel
	case LogLevelError:
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// Validate returns an error unless the separator is empty, ":" or ";".
func (s PathSeparator) Validate() error {
	switch string(s) {
	case "", platform.PosixListSeparator, platform.WindowsListSeparator:
		return nil
	default:
		return &InvalidPathSeparatorError{Value: s}
	}
}

// Resolve returns the effective separator, falling back to the host default.
func (s PathSeparator) Resolve() string {
	if s == "" {
		return platform.ListSeparator()
	}
	return string(s)
}

// Error implements the error interface for InvalidPathSeparatorError.
func (e *InvalidPathSeparatorError) Error() string {
	return fmt.Sprintf("invalid path separator %q (valid: \":\", \";\" or empty)", e.Value)
}

// Unwrap returns ErrInvalidPathSeparator for errors.Is() compatibility.
func (e *InvalidPathSeparatorError) Unwrap() error { return ErrInvalidPathSeparator }

// Validate rejects a non-empty whitespace-only path.
func (p DescriptorPath) Validate() error {
	if p != "" && strings.TrimSpace(string(p)) == "" {
		return &InvalidDescriptorPathError{Value: p}
	}
	return nil
}

// String returns the path, or DefaultDescriptor for the zero value.
func (p DescriptorPath) String() string {
	if p == "" {
		return string(DefaultDescriptor)
	}
	return string(p)
}

// Error implements the error interface for InvalidDescriptorPathError.
func (e *InvalidDescriptorPathError) Error() string {
	return fmt.Sprintf("invalid descriptor path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidDescriptorPath for errors.Is() compatibility.
func (e *InvalidDescriptorPathError) Unwrap() error { return ErrInvalidDescriptorPath }
