package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// columnCount is the number of fields on every record line:
// Date, Type & details, Paid out, Paid in, Balance.
const columnCount = 5

const (
	colDate = iota
	colDetails
	colPaidOut
	colPaidIn
	colBalance
)

// Layout holds the character offset at which each column starts.
type Layout [columnCount]int

// ColumnTemplate describes the heading line that introduces a block of
// records. Headings are regular expression fragments so that rendering
// artifacts (stray spaces inside words) can be tolerated.
type ColumnTemplate struct {
	Name     string
	Headings [columnCount]string
	re       *regexp.Regexp
}

// NewColumnTemplate compiles the heading pattern once. The first heading may
// be preceded by spaces, every heading but the last must be followed by at
// least two spaces, and the last may be followed by any trailing space.
func NewColumnTemplate(name string, headings [columnCount]string) (*ColumnTemplate, error) {
	var b strings.Builder
	b.WriteString(`^`)
	for i, h := range headings {
		pre, post := ``, `{2,}`
		if i == 0 {
			pre = `\s*`
		}
		if i == columnCount-1 {
			post = `*`
		}
		fmt.Fprintf(&b, `(%s%s\s%s)`, pre, h, post)
	}
	b.WriteString(`$`)

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("column template %q: %w", name, err)
	}
	return &ColumnTemplate{Name: name, Headings: headings, re: re}, nil
}

// MustColumnTemplate is like NewColumnTemplate but panics on a bad heading.
func MustColumnTemplate(name string, headings [columnCount]string) *ColumnTemplate {
	t, err := NewColumnTemplate(name, headings)
	if err != nil {
		panic(err)
	}
	return t
}

// Match reports whether line is a heading line for this template and, if so,
// the start offset of each column.
func (t *ColumnTemplate) Match(line string) (Layout, bool) {
	var layout Layout
	loc := t.re.FindStringSubmatchIndex(line)
	if loc == nil {
		return layout, false
	}
	for i := 0; i < columnCount; i++ {
		layout[i] = loc[2*(i+1)]
	}
	return layout, true
}
