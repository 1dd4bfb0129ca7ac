package utils

// currencySymbols maps ISO currency codes to display symbols.
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
	"AUD": "A$",
	"CAD": "C$",
	"CHF": "Fr",
	"CNY": "¥",
	"HKD": "¥",
	"NZD": "NZ$",
}

// GetCurrencySymbol returns the display symbol for an ISO currency code.
// Unmapped codes pass through unchanged; an empty code defaults to "$".
func GetCurrencySymbol(code string) string {
	if code == "" {
		return "$"
	}
	if symbol, ok := currencySymbols[code]; ok {
		return symbol
	}
	return code
}
