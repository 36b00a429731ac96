package parser

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ascii untouched", "02 Mar DD ACME 25.00", "02 Mar DD ACME 25.00"},
		{"no-break space", "05\u00a0March\u00a02018", "05 March 2018"},
		{"thin and ideographic spaces", "a\u2009b\u3000c", "a b c"},
		{"connector punctuation", "PIX_TRANSF\u203fX", "PIX TRANSF X"},
		{"soft hyphen", "CO\u00adOP", "CO-OP"},
		{"anomalous control", "DD\u0a0cACME", "DD ACME"},
		{"pound sign dropped", "Balance (\u00a3)", "Balance ()"},
		{"invalid utf-8 dropped", "ab\xffcd", "abcd"},
		{"form feed", "page1\fpage2", "page1\npage2"},
		{"crlf and cr", "a\r\nb\rc", "a\nb\nc"},
		{"tab kept", "a\tb", "a\tb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"J\u00a0SMITH 12-34-56 12345678\r\n",
		"Balance (\u00a3)\f\u00adX_Y\u0a0c\xfe",
		"plain text\nwith lines\n",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
