package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spdawson/bank-statement-parser/internal/models"
)

// handleRecordLine feeds one line to the record state machine. While paused
// (between "balance carried forward" and the next heading or "balance
// brought forward") lines are ignored.
func (s *session) handleRecordLine(line string, tmpl *ColumnTemplate) error {
	if layout, ok := tmpl.Match(line); ok {
		if s.hasLayout {
			s.logger.Debug("updating column alignments", "template", tmpl.Name, "columns", layout)
		} else {
			s.logger.Debug("setting column alignments", "template", tmpl.Name, "columns", layout)
		}
		s.layout, s.hasLayout = layout, true
		if s.paused {
			s.logger.Debug("resuming parser: set/updated columns")
			s.paused = false
		}
		return nil
	}

	if s.dialect.IsNoise(line) || !s.hasLayout {
		return nil
	}

	frags, err := segment(line, s.layout, s.logger)
	if s.paused {
		if err != nil || s.dialect.Sentinel(frags[colDetails]) != BroughtForward {
			s.logger.Debug("skipping line: parser paused")
			return nil
		}
	} else if err != nil {
		return err
	}

	if frags.has(colDate) {
		date, err := s.recordDate(frags[colDate])
		if err != nil {
			return err
		}
		s.pending.date = date
	}

	switch s.dialect.Sentinel(frags[colDetails]) {
	case CarriedForward:
		if frags.has(colBalance) {
			balance, err := parseBalance(frags[colBalance])
			if err != nil {
				return err
			}
			s.meta.ClosingBalance = decimal.NewNullDecimal(balance)
			s.logger.Debug("found potential closing balance", "balance", balance)
		}
		s.logger.Debug("pausing parser")
		s.paused = true
		return nil
	case BroughtForward:
		if !s.meta.OpeningBalance.Valid && frags.has(colBalance) {
			balance, err := parseBalance(frags[colBalance])
			if err != nil {
				return err
			}
			s.meta.OpeningBalance = decimal.NewNullDecimal(balance)
			s.logger.Debug("found probable opening balance", "balance", balance)
		}
		if s.paused {
			s.logger.Debug("resuming parser")
			s.paused = false
		}
		return nil
	}

	if details := frags[colDetails]; details != "" {
		code, rest, known := s.dialect.SplitType(details)
		switch {
		case known:
			s.logger.Debug("found the start of a record", "type", code)
			s.pending.code = code
			details = rest
		case code != "" && (frags.has(colDate) || frags.has(colPaidOut) || frags.has(colPaidIn)):
			s.logger.Warn("unknown payment type code, keeping it as detail text", "code", code)
		}
		if details != "" {
			s.pending.details = append(s.pending.details, details)
		}
	}

	if !frags.has(colPaidOut) && !frags.has(colPaidIn) {
		return nil
	}
	return s.emit(frags)
}

// emit completes the pending record with the amount columns of frags.
func (s *session) emit(frags fragments) error {
	credit := frags.has(colPaidIn)
	raw := frags[colPaidOut]
	if credit {
		raw = frags[colPaidIn]
	}
	amount, err := parseAmount(raw)
	if err != nil {
		return err
	}

	var balance decimal.NullDecimal
	if frags.has(colBalance) {
		b, err := parseBalance(frags[colBalance])
		if err != nil {
			return err
		}
		balance = decimal.NewNullDecimal(b)
	}

	record := models.Record{
		Date:       s.pending.date,
		Type:       s.pending.code,
		RecordType: s.dialect.RecordType(s.pending.code),
		Credit:     credit,
		Amount:     amount,
		Detail:     strings.Join(s.pending.details, "\n"),
		Balance:    balance,
	}
	s.logger.Debug("created statement record", "date", record.Date.Format(time.DateOnly), "type", record.Type, "credit", record.Credit, "amount", record.Amount)
	s.records = append(s.records, record)

	s.pending.code = ""
	s.pending.details = nil
	return nil
}

// recordDate parses a record's date column. Record dates are usually printed
// without a year and belong to the statement's year; a date that explicitly
// names some year other than the current one is taken as printed. A January
// statement may also hold records from the previous December.
func (s *session) recordDate(raw string) (time.Time, error) {
	stmt := s.meta.StatementDate
	date, hasYear, err := parseDayMonth(raw, stmt.Year())
	if err != nil {
		return time.Time{}, err
	}
	if hasYear && date.Year() != s.today.Year() {
		s.logger.Debug("no need to fix year for statement record date", "date", date.Format(time.DateOnly))
		return date, nil
	}

	if hasYear {
		if date.Day() > daysIn(date.Month(), stmt.Year()) {
			return time.Time{}, fmt.Errorf("%w: date %q does not exist in %d", ErrUnparseableField, raw, stmt.Year())
		}
		date = time.Date(stmt.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	}
	if date.Month() != stmt.Month() && stmt.Month() == time.January {
		if date.Month() != time.December {
			s.logger.Warn("expected a record from December in a January statement", "date", date.Format(time.DateOnly))
		}
		date = date.AddDate(-1, 0, 0)
	}
	return date, nil
}
