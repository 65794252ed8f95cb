package interchange

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/rota/internal/domain"
	"gopkg.in/yaml.v3"
)

// Format names a concrete text encoding of the interchange document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from a file extension: .yaml and .yml
// are YAML, everything else JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ErrorKind distinguishes malformed text from structurally invalid content.
type ErrorKind string

const (
	KindSyntax    ErrorKind = "syntax"
	KindStructure ErrorKind = "structure"
)

// ParseError is returned by Parse.
type ParseError struct {
	Kind   ErrorKind
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s roster (%s): %v", e.Format, e.Kind, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse decodes data in the given format and validates it into a document.
func Parse(data []byte, format Format, opts ...Option) (*domain.Document, error) {
	if format == "" {
		format = FormatJSON
	}
	var raw RawDocument
	if err := decode(data, format, &raw); err != nil {
		return nil, err
	}

	doc, err := FromRaw(&raw, opts...)
	if err != nil {
		return nil, &ParseError{Kind: KindStructure, Format: format, Err: err}
	}
	return doc, nil
}

func decode(data []byte, format Format, raw *RawDocument) error {
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, raw); err != nil {
			var typeErr *yaml.TypeError
			if errors.As(err, &typeErr) {
				return &ParseError{Kind: KindStructure, Format: format, Err: domain.NewValidationError([]error{err})}
			}
			return &ParseError{Kind: KindSyntax, Format: format, Err: err}
		}
	case FormatJSON:
		if !json.Valid(data) {
			// Unmarshal reports the offset of the first syntax error.
			err := json.Unmarshal(data, raw)
			if err == nil {
				err = errors.New("invalid JSON")
			}
			return &ParseError{Kind: KindSyntax, Format: format, Err: err}
		}
		if err := json.Unmarshal(data, raw); err != nil {
			return &ParseError{Kind: KindStructure, Format: format, Err: domain.NewValidationError([]error{err})}
		}
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	return nil
}

// Serialize renders doc in the given format. JSON output is indented with
// two spaces and keeps field order: metadata, then employees in sequence,
// each employee's shifts in stored order.
func Serialize(doc *domain.Document, format Format) ([]byte, error) {
	raw := ToRaw(doc)
	var buf bytes.Buffer

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(raw); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
	case FormatJSON, "":
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(raw); err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	return buf.Bytes(), nil
}
