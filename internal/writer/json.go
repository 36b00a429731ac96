package writer

import (
	"encoding/json"
	"io"

	"github.com/spdawson/bank-statement-parser/internal/models"
)

// JSONWriter emits the statement as a single JSON object.
type JSONWriter struct {
	Indent string
}

// Write encodes stmt as JSON, indented when Indent is set.
func (w *JSONWriter) Write(out io.Writer, stmt *models.Statement) error {
	enc := json.NewEncoder(out)
	if w.Indent != "" {
		enc.SetIndent("", w.Indent)
	}
	return enc.Encode(stmt)
}
