package inventory

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects how a document is rendered.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Indentation used by the JSON renderer. Ansible does not care; these
// match what existing consumers diff against.
const (
	listIndent = "  "
	hostIndent = "    "
)

// ParseFormat validates a user supplied output format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want json or yaml)", s)
	}
}

// WriteList renders a --list result. Map keys are emitted in sorted order.
func WriteList(w io.Writer, inv *Inventory, f Format) error {
	return write(w, inv.Document(), f, listIndent)
}

// WriteHost renders a --host result.
func WriteHost(w io.Writer, vars map[string]any, f Format) error {
	if vars == nil {
		vars = map[string]any{}
	}
	return write(w, vars, f, hostIndent)
}

func write(w io.Writer, v any, f Format, indent string) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", indent)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format %q", f)
	}
}
