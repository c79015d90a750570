// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"github.com/jmodpath/jmodpath/pkg/platform"
)

func TestFieldValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"color scheme ok", ColorSchemeDark.Validate(), nil},
		{"color scheme upper", ColorScheme("DARK").Validate(), ErrInvalidColorScheme},
		{"log level ok", LogLevelError.Validate(), nil},
		{"log level empty", LogLevel("").Validate(), ErrInvalidLogLevel},
		{"separator default", PathSeparator("").Validate(), nil},
		{"separator windows", PathSeparator(";").Validate(), nil},
		{"separator comma", PathSeparator(",").Validate(), ErrInvalidPathSeparator},
		{"descriptor empty", DescriptorPath("").Validate(), nil},
		{"descriptor blank", DescriptorPath("  ").Validate(), ErrInvalidDescriptorPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.sentinel == nil {
				if tt.err != nil {
					t.Errorf("unexpected error: %v", tt.err)
				}
				return
			}
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("error = %v, want %v", tt.err, tt.sentinel)
			}
		})
	}
}

func TestConfigValidateCollectsFieldErrors(t *testing.T) {
	t.Parallel()

	cfg := Config{Descriptor: " ", PathSeparator: "|", UI: UIConfig{ColorScheme: "neon"}, Log: LogConfig{Level: "loud"}}
	err := cfg.Validate()
	var cfgErr *InvalidConfigError
	if !errors.As(err, &cfgErr) || !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Validate() = %v, want *InvalidConfigError", err)
	}
	if len(cfgErr.FieldErrors) != 4 {
		t.Errorf("FieldErrors = %v, want 4", cfgErr.FieldErrors)
	}
	if cfgErr.Error() != "invalid config: 4 field errors" {
		t.Errorf("Error() = %q", cfgErr.Error())
	}
}

func TestPathSeparatorResolve(t *testing.T) {
	t.Parallel()

	if got := PathSeparator("").Resolve(); got != platform.ListSeparator() {
		t.Errorf("Resolve() = %q, want host separator", got)
	}
	if got := PathSeparator(";").Resolve(); got != ";" {
		t.Errorf("Resolve() = %q, want ;", got)
	}
	if DescriptorPath("").String() != "jmodpath.cue" {
		t.Errorf("zero DescriptorPath should render as the default")
	}
}

func TestLoadOptionsValidate(t *testing.T) {
	t.Parallel()

	if err := (LoadOptions{}).Validate(); err != nil {
		t.Errorf("empty options should be valid: %v", err)
	}
	err := LoadOptions{ConfigFilePath: " ", ConfigDirPath: "\t"}.Validate()
	var optErr *InvalidLoadOptionsError
	if !errors.As(err, &optErr) || len(optErr.FieldErrors) != 2 || !errors.Is(err, ErrInvalidLoadOptions) {
		t.Errorf("Validate() = %v, want two field errors", err)
	}
}
