package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// monthPattern matches English month names, abbreviated or in full.
const monthPattern = `(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|June?|July?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)`

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// dayMonthYear matches "02 Mar", "2 March 2018" and "02 Mar 18".
var dayMonthYear = regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]{3,9})\.?(?:\s+(\d{4}|\d{2}))?$`)

var overdrawnSuffix = regexp.MustCompile(`\s+D$`)

// parseDayMonth parses a date with an optional year. hasYear reports whether
// a year was present; when it was not, the returned date carries defaultYear.
func parseDayMonth(s string, defaultYear int) (t time.Time, hasYear bool, err error) {
	m := dayMonthYear.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return t, false, fmt.Errorf("%w: date %q", ErrUnparseableField, s)
	}
	day, _ := strconv.Atoi(m[1])
	name := strings.ToLower(m[2])
	month, ok := months[name[:3]]
	if !ok || !validMonthName(name) {
		return t, false, fmt.Errorf("%w: date %q: unknown month", ErrUnparseableField, s)
	}
	year := defaultYear
	if m[3] != "" {
		hasYear = true
		year, _ = strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}
	}
	if day < 1 || day > daysIn(month, year) {
		return t, false, fmt.Errorf("%w: date %q: day out of range", ErrUnparseableField, s)
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), hasYear, nil
}

var fullMonths = regexp.MustCompile(`^` + monthPattern + `$`)

func validMonthName(name string) bool {
	if len(name) == 0 {
		return false
	}
	return fullMonths.MatchString(strings.ToUpper(name[:1]) + name[1:])
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// parseAmount parses a paid-in or paid-out column. Thousands separators are
// removed; the value must be a non-negative number.
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil || d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: amount %q", ErrUnparseableField, s)
	}
	return d, nil
}

// parseBalance parses a balance column. A trailing " D" marks an overdrawn
// balance and makes the value negative.
func parseBalance(s string) (decimal.Decimal, error) {
	raw := s
	negative := false
	if overdrawnSuffix.MatchString(s) {
		negative = true
		s = overdrawnSuffix.ReplaceAllString(s, "")
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: balance %q", ErrUnparseableField, raw)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}
