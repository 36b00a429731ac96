// Package writer renders parsed statements.
package writer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spdawson/bank-statement-parser/internal/models"
)

// Writer renders a statement to out.
type Writer interface {
	Write(out io.Writer, stmt *models.Statement) error
}

// Formats lists the names New accepts.
var Formats = []string{"yaml", "json", "csv", "pp"}

// New returns the writer registered under format. includeHeader only
// affects CSV output.
func New(format string, includeHeader bool) (Writer, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml", "":
		return &YAMLWriter{}, nil
	case "json":
		return &JSONWriter{Indent: "  "}, nil
	case "csv":
		return &CSVWriter{IncludeHeader: includeHeader}, nil
	case "pp":
		return &PPWriter{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q, supported: %s", format, strings.Join(Formats, ", "))
}

// WriteToFile renders stmt with w into the file at path.
func WriteToFile(w Writer, path string, stmt *models.Statement) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	if err := w.Write(f, stmt); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

const dateLayout = "2006-01-02"
