package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// WriteText writes a plain-text rendering of v.
//
// Values without a Text method go through JSON first so struct tags decide
// the field names, then maps become "key: value" lines (nested keys joined
// with dots) and lists become one line per element.
func WriteText(w io.Writer, v any) error {
	switch t := v.(type) {
	case Texter:
		return writeLine(w, t.Text())
	case string:
		return writeLine(w, t)
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var x any
	if err := json.Unmarshal(b, &x); err != nil {
		return err
	}

	var buf bytes.Buffer
	writeTextAny(&buf, "", x)
	_, err = w.Write(buf.Bytes())
	return err
}

func writeLine(w io.Writer, s string) error {
	s = strings.TrimRight(s, "\n")
	_, err := fmt.Fprintln(w, s)
	return err
}

func writeTextAny(buf *bytes.Buffer, prefix string, x any) {
	switch t := x.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if len(keys) == 0 && prefix != "" {
			fmt.Fprintf(buf, "%s:\n", prefix)
		}
		for _, k := range keys {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			writeTextAny(buf, key, t[k])
		}
	case []any:
		if len(t) == 0 && prefix != "" {
			fmt.Fprintf(buf, "%s:\n", prefix)
		}
		for _, el := range t {
			switch el.(type) {
			case map[string]any, []any:
				writeTextAny(buf, prefix, el)
			default:
				if prefix == "" {
					fmt.Fprintln(buf, textScalar(el))
				} else {
					fmt.Fprintf(buf, "%s: %s\n", prefix, textScalar(el))
				}
			}
		}
	default:
		if prefix == "" {
			fmt.Fprintln(buf, textScalar(t))
			return
		}
		fmt.Fprintf(buf, "%s: %s\n", prefix, textScalar(t))
	}
}

func textScalar(x any) string {
	switch t := x.(type) {
	case nil:
		return "-"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
