package parser

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestSegment(t *testing.T) {
	quiet := log.New(io.Discard)

	tests := []struct {
		name   string
		layout Layout
		line   string
		want   fragments
	}{
		{
			name:   "aligned columns",
			layout: Layout{0, 8, 38, 51, 64},
			line:   row("02 Mar", "DD ACME LTD", "25.00", "", "1,000.00"),
			want:   fragments{"02 Mar", "DD ACME LTD", "25.00", "", "1,000.00"},
		},
		{
			name:   "continuation line",
			layout: Layout{0, 8, 38, 51, 64},
			line:   row("", "LONDON", "", "", ""),
			want:   fragments{"", "LONDON", "", "", ""},
		},
		{
			name:   "short line leaves trailing columns absent",
			layout: Layout{0, 8, 38, 51, 64},
			line:   "        SHORT",
			want:   fragments{"", "SHORT", "", "", ""},
		},
		{
			name:   "amount drifted left over its boundary",
			layout: Layout{0, 8, 20, 30, 40},
			line:   "02 Mar  SO RENT   1,234.56" + strings.Repeat(" ", 14) + "500.00",
			want:   fragments{"02 Mar", "SO RENT", "1,234.56", "", "500.00"},
		},
		{
			name:   "type code bled into the date column",
			layout: Layout{0, 10, 30, 40, 50},
			line:   "02 Mar DD ACME LTD" + strings.Repeat(" ", 12) + "25.00",
			want:   fragments{"02 Mar", "DD ACME LTD", "25.00", "", ""},
		},
		{
			name:   "type code bled into the date column with no details",
			layout: Layout{0, 10, 30, 40, 50},
			line:   "02 Mar CR" + strings.Repeat(" ", 31) + "25.00",
			want:   fragments{"02 Mar", "CR", "", "25.00", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := segment(tt.line, tt.layout, quiet)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSegment_BoundaryFailure(t *testing.T) {
	quiet := log.New(io.Discard)

	tests := []struct {
		name   string
		layout Layout
		line   string
	}{
		{
			name:   "no whitespace before the previous column",
			layout: Layout{0, 7, 20, 30, 40},
			line:   "02 Mar ABCDEFGHIJKLMNOPQRSTUVW 1.00",
		},
		{
			// Whitespace exists, but only at offset zero: the realigned
			// boundary would swallow the whole date column.
			name:   "whitespace only at offset zero",
			layout: Layout{3, 10, 20, 30, 40},
			line:   " BCDEFG",
		},
		{
			name:   "no whitespace at all",
			layout: Layout{3, 10, 20, 30, 40},
			line:   "ABCDEFG",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := segment(tt.line, tt.layout, quiet)
			if !errors.Is(err, ErrColumnBoundary) {
				t.Fatalf("got %v, want ErrColumnBoundary", err)
			}
		})
	}
}
