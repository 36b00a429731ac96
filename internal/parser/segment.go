package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
)

// fragments are the trimmed column texts of one line; "" means absent.
type fragments [columnCount]string

func (f fragments) has(col int) bool { return f[col] != "" }

// spuriousTail matches an upper-case token that bled from the details column
// into the end of the date column, e.g. "02 Mar DD".
var spuriousTail = regexp.MustCompile(`^(.+)\s+([A-Z]+)$`)

// segment cuts line into its five columns, working right to left.
//
// Printed columns do not always line up with their headings. When a boundary
// falls inside a word the boundary is moved left to the nearest whitespace,
// but never past the start of the column to its left.
func segment(line string, layout Layout, logger *log.Logger) (fragments, error) {
	var frags fragments
	rest := line
	for col := columnCount - 1; col >= 0; col-- {
		boundary := layout[col]
		if boundary > 0 && boundary < len(rest) && !isSpace(rest[boundary-1]) && !isSpace(rest[boundary]) {
			logger.Warn("column boundary failure", "column", col, "before", string(rest[boundary-1]), "after", string(rest[boundary]))
			adjusted, err := realign(rest, boundary, col, layout)
			if err != nil {
				return frags, err
			}
			logger.Debug("adjusted column boundary", "column", col, "from", boundary, "to", adjusted)
			boundary = adjusted
		}
		if boundary < len(rest) {
			frags[col] = strings.TrimSpace(rest[boundary:])
			rest = rest[:boundary]
		}
	}

	if m := spuriousTail.FindStringSubmatch(frags[colDate]); m != nil {
		logger.Warn("repairing date column", "date", frags[colDate], "proper", m[1], "tail", m[2])
		frags[colDate] = m[1]
		frags[colDetails] = strings.TrimSpace(m[2] + " " + frags[colDetails])
	}
	return frags, nil
}

// realign searches left from boundary for a whitespace character, stopping at
// the previous column's start. A boundary that would end up at offset zero is
// also rejected, since the date column would then be swallowed.
func realign(line string, boundary, col int, layout Layout) (int, error) {
	limit := -1
	if col > 0 {
		limit = layout[col-1]
	}
	for pos := boundary; pos > limit; pos-- {
		if !isSpace(line[pos]) {
			continue
		}
		if pos == 0 {
			break
		}
		return pos, nil
	}
	return 0, fmt.Errorf("%w: cannot realign column %d from offset %d", ErrColumnBoundary, col, boundary)
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
