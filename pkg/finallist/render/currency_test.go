package render

import "testing"

func TestSymbol(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"EUR", "€"},
		{"eur", "€"},
		{"USD", "$"},
		{"TRY", "₺"},
		{"JPY", "¥"},
		{"CNY", "¥"},
		{"XYZ", "XYZ"}, // unknown codes display as-is
		{"", ""},
	}

	for _, tt := range tests {
		if got := Symbol(tt.code); got != tt.expected {
			t.Errorf("Symbol(%q) = %q, expected %q", tt.code, got, tt.expected)
		}
	}
}

func TestPriceFormat(t *testing.T) {
	if got := PriceFormat("€"); got != `"€"#,##0.00` {
		t.Errorf("PriceFormat(€) = %q", got)
	}
	if got := PriceFormat("XYZ"); got != `"XYZ"#,##0.00` {
		t.Errorf("PriceFormat(XYZ) = %q", got)
	}
	if got := PriceFormat(""); got != "#,##0.00" {
		t.Errorf("PriceFormat(empty) = %q", got)
	}
}
