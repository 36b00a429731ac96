package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankType identifies the bank whose statement layout a parser understands.
type BankType string

const (
	BankHSBC BankType = "hsbc"
)

// FormatVariant is one of the historically distinct renderings of a statement.
type FormatVariant int

const (
	FormatUnknown FormatVariant = iota
	// Form1 is the "old" browser-printed layout with a "DD Mon YYYY" date line.
	Form1
	// Form2 is the "new" pre-formatted layout with a "<start> to <end>" date line.
	Form2
)

func (f FormatVariant) String() string {
	switch f {
	case Form1:
		return "form1"
	case Form2:
		return "form2"
	default:
		return "unknown"
	}
}

// Metadata holds the account-level fields found while parsing a statement.
type Metadata struct {
	Name           string              `json:"name,omitempty"`
	SortCode       string              `json:"sortCode"`
	AccountNumber  string              `json:"accountNumber"`
	StatementDate  time.Time           `json:"statementDate"`
	OpeningBalance decimal.NullDecimal `json:"openingBalance"`
	ClosingBalance decimal.NullDecimal `json:"closingBalance"`
}

// Statement is the result of a successful parse.
type Statement struct {
	Bank    BankType      `json:"bank"`
	Format  FormatVariant `json:"-"`
	Records []Record      `json:"records"`
	Metadata
}

// Equal reports whether two statements carry the same metadata and records.
func (s *Statement) Equal(other *Statement) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	if s.Name != other.Name ||
		s.SortCode != other.SortCode ||
		s.AccountNumber != other.AccountNumber ||
		!s.StatementDate.Equal(other.StatementDate) ||
		!nullDecimalEqual(s.OpeningBalance, other.OpeningBalance) ||
		!nullDecimalEqual(s.ClosingBalance, other.ClosingBalance) {
		return false
	}
	if len(s.Records) != len(other.Records) {
		return false
	}
	for i := range s.Records {
		if !s.Records[i].Equal(other.Records[i]) {
			return false
		}
	}
	return true
}

// TotalPaidOut sums the amounts of all debit records.
func (s *Statement) TotalPaidOut() decimal.Decimal {
	total := decimal.Zero
	for _, r := range s.Records {
		if !r.Credit {
			total = total.Add(r.Amount)
		}
	}
	return total
}

// TotalPaidIn sums the amounts of all credit records.
func (s *Statement) TotalPaidIn() decimal.Decimal {
	total := decimal.Zero
	for _, r := range s.Records {
		if r.Credit {
			total = total.Add(r.Amount)
		}
	}
	return total
}

func nullDecimalEqual(a, b decimal.NullDecimal) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Decimal.Equal(b.Decimal)
}
