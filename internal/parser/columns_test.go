package parser

import (
	"testing"

	"github.com/spdawson/bank-statement-parser/internal/models"
)

func TestColumnTemplate_Match(t *testing.T) {
	tests := []struct {
		name    string
		variant models.FormatVariant
		line    string
		want    Layout
		match   bool
	}{
		{
			name:    "form 1 heading",
			variant: models.Form1,
			line:    "Date    Type Description              Paid out     Paid in      Balance ()",
			want:    Layout{0, 8, 38, 51, 64},
			match:   true,
		},
		{
			name:    "form 1 heading with leading and trailing space",
			variant: models.Form1,
			line:    "  Date  Type   Description  Paid out  Paid in  Balance ()   ",
			want:    Layout{0, 8, 28, 38, 47},
			match:   true,
		},
		{
			name:    "form 2 heading with rendering artifacts",
			variant: models.Form2,
			line:    "Date    Pay m ent t y pe and d e t ails     Paid o ut   Paid in     Balance",
			want:    Layout{0, 8, 44, 56, 68},
			match:   true,
		},
		{
			name:    "single space between headings",
			variant: models.Form2,
			line:    "Date Payment type and details Paid out Paid in Balance",
			match:   false,
		},
		{
			name:    "form 2 heading against form 1 template",
			variant: models.Form1,
			line:    "Date    Payment type and details   Paid out   Paid in   Balance",
			match:   false,
		},
		{
			name:    "record line",
			variant: models.Form1,
			line:    "02 Mar  DD ACME LTD                   25.00                     1,000.00",
			match:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := hsbcDialect.Template(tt.variant)
			got, ok := tmpl.Match(tt.line)
			if ok != tt.match {
				t.Fatalf("match: got %v, want %v", ok, tt.match)
			}
			if ok && got != tt.want {
				t.Errorf("layout: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewColumnTemplate_BadHeading(t *testing.T) {
	_, err := NewColumnTemplate("broken", [columnCount]string{"Date", "(", "Paid out", "Paid in", "Balance"})
	if err == nil {
		t.Fatal("expected error for invalid heading pattern")
	}
}
