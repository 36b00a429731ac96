package writer

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/spdawson/bank-statement-parser/internal/models"
)

// YAMLWriter emits a bank_statement document with the metadata followed by
// the records.
type YAMLWriter struct{}

type yamlDocument struct {
	BankStatement yamlStatement `yaml:"bank_statement"`
}

type yamlStatement struct {
	AccountNumber  string       `yaml:"account_number"`
	SortCode       string       `yaml:"sort_code"`
	StatementDate  string       `yaml:"statement_date"`
	Name           string       `yaml:"name,omitempty"`
	OpeningBalance string       `yaml:"opening_balance,omitempty"`
	ClosingBalance string       `yaml:"closing_balance,omitempty"`
	Records        []yamlRecord `yaml:"records"`
}

type yamlRecord struct {
	Date       string `yaml:"date"`
	Type       string `yaml:"type"`
	RecordType string `yaml:"record_type,omitempty"`
	Credit     bool   `yaml:"credit"`
	Amount     string `yaml:"amount"`
	Detail     string `yaml:"detail"`
	Balance    string `yaml:"balance"`
}

// Write encodes stmt as a YAML bank_statement document.
func (w *YAMLWriter) Write(out io.Writer, stmt *models.Statement) error {
	doc := yamlDocument{BankStatement: yamlStatement{
		AccountNumber:  stmt.AccountNumber,
		SortCode:       stmt.SortCode,
		StatementDate:  stmt.StatementDate.Format(dateLayout),
		Name:           stmt.Name,
		OpeningBalance: formatNullDecimal(stmt.OpeningBalance),
		ClosingBalance: formatNullDecimal(stmt.ClosingBalance),
		Records:        make([]yamlRecord, 0, len(stmt.Records)),
	}}
	for _, r := range stmt.Records {
		doc.BankStatement.Records = append(doc.BankStatement.Records, yamlRecord{
			Date:       r.Date.Format(dateLayout),
			Type:       r.Type,
			RecordType: string(r.RecordType),
			Credit:     r.Credit,
			Amount:     r.Amount.StringFixed(2),
			Detail:     r.Detail,
			Balance:    formatNullDecimal(r.Balance),
		})
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

func formatNullDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.StringFixed(2)
}
