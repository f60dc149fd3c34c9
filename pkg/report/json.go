package report

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONRenderer writes the report as a single JSON document.
type JSONRenderer struct {
	compact bool
}

// Render implements Renderer.
func (j *JSONRenderer) Render(w io.Writer, r *Report) error {
	return encode(w, r, j.compact)
}

func encode(w io.Writer, v any, compact bool) error {
	encoder := json.NewEncoder(w)
	if !compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
