package reports

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"AED": "AED ",
}

// FormatCurrency renders amount with thousands separators and the currency
// symbol, e.g. "₹1,234.50". Unknown codes are used as a prefix.
func FormatCurrency(amount float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	symbol, ok := currencySymbols[code]
	if !ok && code != "" {
		symbol = code + " "
	}
	p := message.NewPrinter(language.English)
	if amount < 0 {
		return "-" + symbol + p.Sprintf("%.2f", -amount)
	}
	return symbol + p.Sprintf("%.2f", amount)
}
