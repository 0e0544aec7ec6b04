package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format specifies how command results are written.
type Format string

const (
	// FormatText writes human-readable text.
	FormatText Format = "text"

	// FormatJSON writes indented JSON.
	FormatJSON Format = "json"

	// FormatYAML writes YAML.
	FormatYAML Format = "yaml"
)

// String returns the string representation of the output format.
func (f Format) String() string {
	return string(f)
}

// Valid checks if the output format is known.
func (f Format) Valid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// ParseFormat parses a string into a Format.
// An empty string yields FormatText.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: %s)", s, strings.Join(ValidFormats(), ", "))
	}
}

// ValidFormats returns a slice of valid output format strings.
func ValidFormats() []string {
	return []string{"text", "json", "yaml"}
}

// Write encodes v to w in the given structured format. For FormatText the
// text callback is used instead.
func Write(w io.Writer, format Format, v any, text func(io.Writer) error) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		if text == nil {
			return fmt.Errorf("format %q not supported here", format)
		}
		return text(w)
	}
}
