package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/spdawson/bank-statement-parser/internal/models"
)

// HSBC statements come in two renderings. The first ("old", browser-printed)
// has a "DD Mon YYYY" date line; the second ("new", pre-formatted) has a
// "<start> to <end>" date range. Both lay records out as:
//
//	Date | Payment type and details | Paid out | Paid in | Balance
type hsbc struct {
	form1, form2 *ColumnTemplate
}

var hsbcDialect Dialect = &hsbc{
	// The pound sign in "Balance (£)" does not survive normalisation.
	form1: MustColumnTemplate("hsbc-form1", [columnCount]string{
		`Date`,
		`Type\s+Description`,
		`Paid out`,
		`Paid in`,
		`Balance \(\)`,
	}),
	form2: MustColumnTemplate("hsbc-form2", [columnCount]string{
		`Date`,
		`Pay\s?m\s?e\s?nt t\s?y\s?p\s?e and d\s?e\s?t\s?ails`,
		`Paid o\s?ut`,
		`Paid in`,
		`Balance`,
	}),
}

var hsbcTypes = map[string]models.RecordType{
	"ATM": models.RecordATM,
	"BP":  models.RecordBillPayment,
	"CHQ": models.RecordCheque,
	"CIR": models.RecordCirrus,
	"CR":  models.RecordCredit,
	"DD":  models.RecordDirectDebit,
	"DIV": models.RecordDividend,
	"DR":  models.RecordDebit,
	"MAE": models.RecordMaestro,
	"PIM": models.RecordPayingInMachine,
	"SO":  models.RecordStandingOrder,
	"TFR": models.RecordTransfer,
	"VIS": models.RecordVisa,
	")))": models.RecordContactless,
	"IAP": models.RecordInternetAccessPayment,
}

var (
	hsbcStopAER = regexp.MustCompile(`^\s+AER\s+EAR\s*$`)
	hsbcStopPDF = regexp.MustCompile(`^Statements produced from \d{1,2} ` + monthPattern + ` \d{4} are available in PDF format\.\s*$`)

	hsbcAccount = regexp.MustCompile(`(?:^[A-Z][\w\s]+|,)\s+(\d{2}-\d{2}-\d{2})\s+(\d{8})(?:\s*|\s+\d+)$`)
	// New style: the holder's name directly precedes the sort code and the
	// line ends with a sheet number.
	hsbcNameNew = regexp.MustCompile(`^\s*(.+)\s+\d{2}-\d{2}-\d{2}\s+\d{8}\s+\d+\s*$`)
	// Old style: the holder's name is followed by a comma.
	hsbcNameOld = regexp.MustCompile(`^\s*(.+)\s*,\s+\d{2}-\d{2}-\d{2}\s+\d{8}\s*$`)
	hsbcNameBare = regexp.MustCompile(`^\s*([A-Z][\w\s]*?)\s+\d{2}-\d{2}-\d{2}\s+\d{8}\s*$`)

	hsbcDateForm1 = regexp.MustCompile(`^\s*(\d{2} ` + monthPattern + ` \d{4})\s*$`)
	hsbcDateForm2 = regexp.MustCompile(`^(\d+\s+` + monthPattern + `(?:\s+\d{4})?)\s+to\s+(\d+\s+` + monthPattern + `\s+\d{4})\b`)

	hsbcNoise          = regexp.MustCompile(`^\s*A\s*$`)
	hsbcCarriedForward = regexp.MustCompile(`(?i)^BALANCE CARRIED FORWARD$`)
	hsbcBroughtForward = regexp.MustCompile(`(?i)^BALANCE BROUGHT FORWARD(\s+\.)?$`)

	hsbcTypeSplit = regexp.MustCompile(`^(\S+)(?:\s+(.*))?$`)
	hsbcCodeLike  = regexp.MustCompile(`^(?:[A-Z]{2,3}|\)+)$`)
)

func (h *hsbc) Bank() models.BankType { return models.BankHSBC }

func (h *hsbc) Name() string { return "HSBC" }

func (h *hsbc) IsTerminal(line string) bool {
	return hsbcStopAER.MatchString(line) || hsbcStopPDF.MatchString(line)
}

func (h *hsbc) MatchAccount(line string) (AccountLine, bool) {
	m := hsbcAccount.FindStringSubmatch(line)
	if m == nil {
		return AccountLine{}, false
	}
	acct := AccountLine{SortCode: m[1], AccountNumber: m[2]}
	for _, re := range []*regexp.Regexp{hsbcNameNew, hsbcNameOld, hsbcNameBare} {
		if n := re.FindStringSubmatch(line); n != nil {
			acct.Name = strings.TrimSpace(n[1])
			break
		}
	}
	return acct, true
}

func (h *hsbc) MatchStatementDate(line string) (time.Time, models.FormatVariant, bool) {
	if m := hsbcDateForm1.FindStringSubmatch(line); m != nil {
		if d, hasYear, err := parseDayMonth(m[1], 0); err == nil && hasYear {
			return d, models.Form1, true
		}
	}
	if m := hsbcDateForm2.FindStringSubmatch(line); m != nil {
		if d, hasYear, err := parseDayMonth(m[2], 0); err == nil && hasYear {
			return d, models.Form2, true
		}
	}
	return time.Time{}, models.FormatUnknown, false
}

func (h *hsbc) Template(variant models.FormatVariant) *ColumnTemplate {
	switch variant {
	case models.Form1:
		return h.form1
	case models.Form2:
		return h.form2
	}
	return nil
}

func (h *hsbc) IsNoise(line string) bool { return hsbcNoise.MatchString(line) }

func (h *hsbc) Sentinel(details string) Sentinel {
	switch {
	case hsbcCarriedForward.MatchString(details):
		return CarriedForward
	case hsbcBroughtForward.MatchString(details):
		return BroughtForward
	}
	return NoSentinel
}

func (h *hsbc) SplitType(details string) (code, rest string, known bool) {
	m := hsbcTypeSplit.FindStringSubmatch(details)
	if m == nil {
		return "", details, false
	}
	if _, ok := hsbcTypes[m[1]]; ok {
		return m[1], m[2], true
	}
	if hsbcCodeLike.MatchString(m[1]) {
		return m[1], details, false
	}
	return "", details, false
}

func (h *hsbc) RecordType(code string) models.RecordType { return hsbcTypes[code] }
