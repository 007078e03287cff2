package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// Texter is implemented by payloads with their own human-readable rendering.
type Texter interface {
	Text() string
}

// Write writes a command payload in the requested format.
//
// Supported formats:
// - json (default): {"data": v}
// - text: v.Text() when v is a Texter, otherwise one "key: value" line per field
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, map[string]any{"data": v}, pretty)
	case "text":
		return WriteText(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// Valid reports whether format is understood by Write.
func Valid(format string) bool {
	switch format {
	case "", "json", "text":
		return true
	}
	return false
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}
