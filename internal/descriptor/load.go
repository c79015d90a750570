// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmodpath/jmodpath/internal/cueutil"
	"github.com/jmodpath/jmodpath/internal/issue"
)

const (
	// CUEFileName is the preferred descriptor file name.
	CUEFileName = "jmodpath.cue"
	// TOMLFileName is the alternate descriptor file name.
	TOMLFileName = "jmodpath.toml"

	// FormatCUE selects the CUE encoding.
	FormatCUE Format = "cue"
	// FormatTOML selects the TOML encoding.
	FormatTOML Format = "toml"
)

var (
	//go:embed descriptor_schema.cue
	schemaBytes []byte

	// ErrDescriptorNotFound is returned by Find when neither file exists.
	ErrDescriptorNotFound = errors.New("project descriptor not found")
	// ErrUnsupportedFormat is the sentinel error wrapped by UnsupportedFormatError.
	ErrUnsupportedFormat = errors.New("unsupported descriptor format")
)

type (
	// Format is a descriptor encoding.
	Format string

	// UnsupportedFormatError is returned for paths with an unknown extension.
	UnsupportedFormatError struct {
		Path string
	}
)

// Error implements the error interface.
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: %s (expected .cue or .toml)", ErrUnsupportedFormat, e.Path)
}

// Unwrap returns ErrUnsupportedFormat.
func (e *UnsupportedFormatError) Unwrap() error { return ErrUnsupportedFormat }

// FormatOf returns the format implied by the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return FormatCUE, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", &UnsupportedFormatError{Path: path}
	}
}

// Find returns the descriptor path in dir, preferring the CUE file.
func Find(dir string) (string, error) {
	for _, name := range []string{CUEFileName, TOMLFileName} {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", issue.NewErrorContext().
		WithOperation("find project descriptor").
		WithResource(dir).
		WithSuggestion("Create " + CUEFileName + " or " + TOMLFileName + " in the project directory").
		WithSuggestion("Pass an explicit path with --descriptor").
		WithIssue(issue.DescriptorNotFoundId).
		Wrap(ErrDescriptorNotFound).
		BuildError()
}

// Load reads and validates the descriptor at path.
func Load(path string) (*Project, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, issue.NewErrorContext().
				WithOperation("load project descriptor").
				WithResource(path).
				WithSuggestion("Check the --descriptor flag or the descriptor config setting").
				WithIssue(issue.DescriptorNotFoundId).
				Wrap(fmt.Errorf("%w: %w", ErrDescriptorNotFound, err)).
				BuildError()
		}
		return nil, fmt.Errorf("read descriptor: %w", err)
	}
	p, err := Parse(data, format, path)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse project descriptor").
			WithResource(path).
			WithSuggestion("Fix the reported fields and run the command again").
			WithIssue(issue.DescriptorParseErrorId).
			Wrap(err).
			BuildError()
	}
	return p, nil
}

// Parse decodes data in the given format. filename is used in error messages.
func Parse(data []byte, format Format, filename string) (*Project, error) {
	var p *Project
	switch format {
	case FormatCUE:
		decoded, err := cueutil.Decode[Project](schemaBytes, data, "#Project", cueutil.WithFilename(filename))
		if err != nil {
			return nil, err
		}
		p = decoded.Value
	case FormatTOML:
		if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, filename); err != nil {
			return nil, err
		}
		p = &Project{}
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(p); err != nil {
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				row, col := derr.Position()
				return nil, fmt.Errorf("%s:%d:%d: %s", filename, row, col, derr.Error())
			}
			var serr *toml.StrictMissingError
			if errors.As(err, &serr) {
				return nil, fmt.Errorf("%s: %s", filename, serr.String())
			}
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	default:
		return nil, &UnsupportedFormatError{Path: filename}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Marshal encodes p in the given format.
func Marshal(p *Project, format Format) ([]byte, error) {
	switch format {
	case FormatCUE:
		return cueutil.Encode(p)
	case FormatTOML:
		return toml.Marshal(p)
	default:
		return nil, &UnsupportedFormatError{Path: string(format)}
	}
}

// Save writes p to path in the format implied by its extension.
func Save(p *Project, path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Marshal(p, format)
	if err != nil {
		return fmt.Errorf("encode descriptor: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write descriptor: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace descriptor: %w", err)
	}
	return nil
}
