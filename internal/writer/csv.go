package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/spdawson/bank-statement-parser/internal/models"
)

// CSVWriter writes statement records to CSV format.
type CSVWriter struct {
	IncludeHeader bool
}

// Write writes records in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, stmt *models.Statement) error {
	writer := csv.NewWriter(out)

	// Metadata as comment rows
	if w.IncludeHeader {
		meta := [][2]string{
			{"# Bank", string(stmt.Bank)},
			{"# Account Holder", stmt.Name},
			{"# Account Number", stmt.AccountNumber},
			{"# Sort Code", stmt.SortCode},
		}
		if !stmt.StatementDate.IsZero() {
			meta = append(meta, [2]string{"# Statement Date", stmt.StatementDate.Format(dateLayout)})
		}
		meta = append(meta,
			[2]string{"# Opening Balance", formatNullDecimal(stmt.OpeningBalance)},
			[2]string{"# Closing Balance", formatNullDecimal(stmt.ClosingBalance)},
		)
		for _, m := range meta {
			if m[1] == "" {
				continue
			}
			if err := writer.Write(m[:]); err != nil {
				return fmt.Errorf("failed to write CSV metadata: %w", err)
			}
		}
	}

	header := []string{"Date", "Type", "RecordType", "Credit", "Amount", "Detail", "Balance"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range stmt.Records {
		row := []string{
			r.Date.Format(dateLayout),
			r.Type,
			string(r.RecordType),
			strconv.FormatBool(r.Credit),
			r.Amount.StringFixed(2),
			r.Detail,
			formatNullDecimal(r.Balance),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
