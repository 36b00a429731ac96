package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const (
	softHyphen = '\u00ad'
	// Seen in extracted statement text in place of a space.
	anomalousSpace = '\u0a0c'
)

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\f", "\n")

// Normalize reduces extracted statement text to plain ASCII.
//
// Unicode space separators and connector punctuation become a space, the soft
// hyphen becomes '-', every other non-ASCII rune (and any invalid byte) is
// dropped, and CRLF, CR and form feed all become '\n'. The transform is lossy
// and idempotent.
func Normalize(text string) string {
	t := transform.Chain(
		runes.Map(squash),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
	out, _, err := transform.String(t, text)
	if err != nil {
		out = strings.Map(func(r rune) rune {
			if r = squash(r); r > unicode.MaxASCII {
				return -1
			}
			return r
		}, text)
	}
	return newlines.Replace(out)
}

func squash(r rune) rune {
	switch {
	case r == softHyphen:
		return '-'
	case r == anomalousSpace:
		return ' '
	case unicode.In(r, unicode.Zs, unicode.Pc):
		return ' '
	case r > unicode.MaxASCII:
		return utf8.RuneError
	}
	return r
}
