package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/altuslabsxyz/arbctl/pkg/network"
)

// Render formats a signed transaction for the confirmation prompt: indented
// JSON, no HTML or slash escaping, and no control characters inside values.
func Render(tx *network.SignedTx) (string, error) {
	if tx == nil || len(tx.Tx) == 0 {
		return "", fmt.Errorf("nothing to render")
	}

	dec := json.NewDecoder(bytes.NewReader(tx.Tx))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return "", fmt.Errorf("failed to decode signed transaction: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(stripControl(doc)); err != nil {
		return "", fmt.Errorf("failed to render signed transaction: %w", err)
	}

	return strings.TrimRight(buf.String(), "\n"), nil
}

func stripControl(v any) any {
	switch val := v.(type) {
	case string:
		return strings.Map(func(r rune) rune {
			if unicode.IsControl(r) {
				return -1
			}
			return r
		}, val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[stripControl(k).(string)] = stripControl(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = stripControl(item)
		}
		return out
	default:
		return v
	}
}
