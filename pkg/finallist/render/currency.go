package render

import "strings"

// currencySymbols maps currency codes to display symbols. Codes outside the
// table fall back to the raw code string.
var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
	"TRY": "₺",
	"JPY": "¥",
	"CNY": "¥",
}

// Symbol resolves the display symbol for a currency code. An empty code
// yields an empty symbol; an unknown code is displayed as-is.
func Symbol(code string) string {
	if code == "" {
		return ""
	}
	if sym, ok := currencySymbols[strings.ToUpper(code)]; ok {
		return sym
	}
	return code
}

// PriceFormat returns the number format string for monetary cells, with the
// symbol as a literal prefix when present.
func PriceFormat(symbol string) string {
	if symbol != "" {
		return `"` + symbol + `"#,##0.00`
	}
	return "#,##0.00"
}
