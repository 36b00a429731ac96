package parser

import (
	"time"

	"github.com/spdawson/bank-statement-parser/internal/models"
)

// Dialect is the bank-specific knowledge a Parser needs: how to recognise
// metadata lines, which column headings introduce records, and what the
// short payment type codes mean. The parsing state machine itself is shared
// by every bank.
type Dialect interface {
	// Bank returns the identifier the dialect is registered under.
	Bank() models.BankType
	// Name returns the human-readable bank name.
	Name() string
	// IsTerminal reports whether line ends the statement.
	IsTerminal(line string) bool
	// MatchAccount recognises the sort code / account number line.
	MatchAccount(line string) (AccountLine, bool)
	// MatchStatementDate recognises the statement date line and the
	// format variant it implies.
	MatchStatementDate(line string) (time.Time, models.FormatVariant, bool)
	// Template returns the heading template for a format variant, or nil.
	Template(variant models.FormatVariant) *ColumnTemplate
	// IsNoise reports lines that carry no information and must be skipped.
	IsNoise(line string) bool
	// Sentinel classifies the details column of a balance-forward line.
	Sentinel(details string) Sentinel
	// SplitType separates a leading payment type code from the details text.
	// When known is false, code may still hold a token that looked like a code.
	SplitType(details string) (code, rest string, known bool)
	// RecordType maps a payment type code to its semantic tag.
	RecordType(code string) models.RecordType
}

// AccountLine is what a dialect recovers from the sort code line.
type AccountLine struct {
	Name          string
	SortCode      string
	AccountNumber string
}

// Sentinel marks the lines that bracket a page break.
type Sentinel int

const (
	NoSentinel Sentinel = iota
	CarriedForward
	BroughtForward
)
