package parser

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/spdawson/bank-statement-parser/internal/models"
)

// Parser turns normalised statement text into a models.Statement. A Parser
// holds no per-parse state, so one value may serve concurrent calls to Parse.
type Parser struct {
	dialect Dialect
	logger  *log.Logger
	now     func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the diagnostic sink. By default diagnostics are discarded.
func WithLogger(logger *log.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithClock overrides the clock used to decide which record dates need
// their year corrected.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

// WithDialect plugs in a bank layout that is not built in.
func WithDialect(d Dialect) Option {
	return func(p *Parser) {
		if d != nil {
			p.dialect = d
		}
	}
}

// ErrUnsupportedBank is returned by New for a bank with no built-in layout.
var ErrUnsupportedBank = errors.New("unsupported bank type")

// New returns a parser for the given bank.
func New(bank models.BankType, opts ...Option) (*Parser, error) {
	p := &Parser{
		logger: log.New(io.Discard),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.dialect == nil {
		d, err := dialectFor(bank)
		if err != nil {
			return nil, err
		}
		p.dialect = d
	}
	return p, nil
}

// Banks lists the built-in bank layouts.
func Banks() []models.BankType {
	return []models.BankType{models.BankHSBC}
}

func dialectFor(bank models.BankType) (Dialect, error) {
	switch bank {
	case models.BankHSBC:
		return hsbcDialect, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBank, bank)
	}
}

// BankName returns the human-readable name of the parser's bank.
func (p *Parser) BankName() string {
	return p.dialect.Name()
}

// Parse normalises text and folds it, line by line, into a statement. Any
// failure aborts the parse; no partial statement is returned.
func (p *Parser) Parse(text string) (*models.Statement, error) {
	s := &session{
		dialect: p.dialect,
		logger:  p.logger,
		today:   p.now(),
	}
	return s.run(Normalize(text))
}
