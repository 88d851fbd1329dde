// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package landing implements the locale-aware landing-page document
// logic: currency resolution, the normalization pass applied at the load
// boundary, save-payload stripping, and locale copy/sync operations.
package landing

// Currency pairs an ISO currency code with its display symbol.
type Currency struct {
	Code   string
	Symbol string
}

// countryCurrencies maps ISO country codes to their currency. Countries
// not listed fall back to USD.
var countryCurrencies = map[string]Currency{
	"US": {"USD", "$"},
	"CA": {"CAD", "C$"},
	"MX": {"MXN", "MX$"},
	"BR": {"BRL", "R$"},
	"GB": {"GBP", "£"},
	"IE": {"EUR", "€"},
	"FR": {"EUR", "€"},
	"DE": {"EUR", "€"},
	"ES": {"EUR", "€"},
	"IT": {"EUR", "€"},
	"PT": {"EUR", "€"},
	"NL": {"EUR", "€"},
	"BE": {"EUR", "€"},
	"AT": {"EUR", "€"},
	"FI": {"EUR", "€"},
	"GR": {"EUR", "€"},
	"RO": {"RON", "lei"},
	"PL": {"PLN", "zł"},
	"CZ": {"CZK", "Kč"},
	"SE": {"SEK", "kr"},
	"NO": {"NOK", "kr"},
	"DK": {"DKK", "kr"},
	"CH": {"CHF", "CHF"},
	"AU": {"AUD", "A$"},
	"NZ": {"NZD", "NZ$"},
	"JP": {"JPY", "¥"},
	"KR": {"KRW", "₩"},
	"CN": {"CNY", "¥"},
	"IN": {"INR", "₹"},
	"SG": {"SGD", "S$"},
	"AE": {"AED", "د.إ"},
	"ZA": {"ZAR", "R"},
	"TR": {"TRY", "₺"},
	"IL": {"ILS", "₪"},
	"AR": {"ARS", "AR$"},
	"CL": {"CLP", "CL$"},
	"CO": {"COP", "CO$"},
}

// defaultCurrency is used for unrecognized country codes.
var defaultCurrency = Currency{"USD", "$"}

// CurrencyFor returns the currency for an ISO country code, falling back
// to USD for unrecognized codes.
func CurrencyFor(country string) Currency {
	if c, ok := countryCurrencies[country]; ok {
		return c
	}
	return defaultCurrency
}
