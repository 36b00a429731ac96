package writer

import (
	"io"

	"github.com/k0kubun/pp/v3"

	"github.com/spdawson/bank-statement-parser/internal/models"
)

// PPWriter dumps the statement structure for debugging.
type PPWriter struct {
	Color bool
}

// Write pretty-prints stmt, in colour if Color is set.
func (w *PPWriter) Write(out io.Writer, stmt *models.Statement) error {
	printer := pp.New()
	printer.SetColoringEnabled(w.Color)
	_, err := printer.Fprintln(out, stmt)
	return err
}
