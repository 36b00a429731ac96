package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/spdawson/bank-statement-parser/internal/models"
)

// session is the state of a single parse. It is owned by one goroutine and
// discarded when the parse returns.
type session struct {
	dialect Dialect
	logger  *log.Logger
	today   time.Time

	meta    models.Metadata
	variant models.FormatVariant

	layout    Layout
	hasLayout bool
	paused    bool

	pending pendingRecord
	records []models.Record
}

// pendingRecord accumulates the lines of a record until its amount is seen.
// The date outlives each record: following records without a date of their
// own share it.
type pendingRecord struct {
	date    time.Time
	code    string
	details []string
}

func (s *session) run(text string) (*models.Statement, error) {
	for i, line := range strings.Split(text, "\n") {
		more, err := s.handleLine(line)
		if err != nil {
			return nil, lineError(i+1, err)
		}
		if !more {
			break
		}
	}

	if err := s.checkComplete(); err != nil {
		return nil, err
	}

	records := s.records
	if records == nil {
		records = []models.Record{}
	}
	return &models.Statement{
		Bank:     s.dialect.Bank(),
		Format:   s.variant,
		Metadata: s.meta,
		Records:  records,
	}, nil
}

// handleLine classifies one line. It returns false once the statement has
// ended and the remaining lines must be ignored.
func (s *session) handleLine(line string) (bool, error) {
	if strings.TrimSpace(line) == "" {
		return true, nil
	}
	if strings.Contains(line, "\t") {
		return false, fmt.Errorf("%w: line contains TAB characters", ErrMalformedInput)
	}
	if s.dialect.IsTerminal(line) {
		s.logger.Debug("found stop line", "line", line)
		return false, nil
	}

	if s.meta.SortCode == "" && s.meta.AccountNumber == "" {
		if acct, ok := s.dialect.MatchAccount(line); ok {
			s.meta.SortCode = acct.SortCode
			s.meta.AccountNumber = acct.AccountNumber
			s.logger.Debug("found sort code and account number", "sort_code", acct.SortCode, "account_number", acct.AccountNumber)
			if acct.Name != "" && s.meta.Name == "" {
				s.meta.Name = acct.Name
				s.logger.Debug("found account holder name", "name", acct.Name)
			}
		}
	}

	if s.meta.StatementDate.IsZero() {
		if date, variant, ok := s.dialect.MatchStatementDate(line); ok {
			s.meta.StatementDate = date
			s.variant = variant
			s.logger.Debug("found statement date", "format", variant, "date", date.Format(time.DateOnly))
		}
	}

	if s.meta.SortCode == "" || s.meta.AccountNumber == "" || s.meta.StatementDate.IsZero() {
		return true, nil
	}

	tmpl := s.dialect.Template(s.variant)
	if tmpl == nil {
		return false, fmt.Errorf("%w: failed to detect statement format before start of records", ErrUnrecognizedFormat)
	}
	s.logger.Debug("parsing potential record line", "format", s.variant, "line", line)
	return true, s.handleRecordLine(line, tmpl)
}

func (s *session) checkComplete() error {
	missing := ""
	switch {
	case s.meta.SortCode == "":
		missing = "sort code"
	case s.meta.AccountNumber == "":
		missing = "account number"
	case s.meta.StatementDate.IsZero():
		missing = "statement date"
	case s.meta.Name == "":
		missing = "account holder name"
	case !s.meta.OpeningBalance.Valid:
		missing = "opening balance"
	case !s.meta.ClosingBalance.Valid:
		missing = "closing balance"
	default:
		return nil
	}
	return fmt.Errorf("%w: failed to find %s", ErrIncompleteStatement, missing)
}
