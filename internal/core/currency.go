package core

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency formats report amounts for one currency code.
type Currency struct {
	Code    string
	printer *message.Printer
}

// symbolOverrides replaces x/text symbols where the local convention
// differs from the CLDR default.
var symbolOverrides = map[string]string{
	"VND": "VNĐ",
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
}

// localeForCurrency picks the formatting locale for a currency code
// ("home" locale of each currency the tool is likely to meet).
var localeForCurrency = map[string]language.Tag{
	"VND": language.Vietnamese,
	"USD": language.AmericanEnglish,
	"EUR": language.German,
	"GBP": language.BritishEnglish,
	"JPY": language.Japanese,
	"SEK": language.Swedish,
}

// prefixCurrencies place the symbol before the amount.
// golang.org/x/text/currency doesn't expose CLDR symbol positioning, so
// the short list is maintained here.
var prefixCurrencies = map[string]bool{
	"USD": true,
	"GBP": true,
	"JPY": true,
}

// GetCurrency returns the Currency for a code, falling back to using the
// code itself as symbol for anything unknown.
func GetCurrency(code string) Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = "VND"
	}

	tag, ok := localeForCurrency[code]
	if !ok {
		tag = language.English
	}
	return Currency{
		Code:    code,
		printer: message.NewPrinter(tag),
	}
}

func (c Currency) symbol() string {
	if sym, ok := symbolOverrides[c.Code]; ok {
		return sym
	}
	unit, err := currency.ParseISO(c.Code)
	if err != nil {
		return c.Code
	}
	return c.printer.Sprint(currency.NarrowSymbol(unit))
}

// Format renders an amount with grouping separators and the currency
// symbol in its conventional position.
func (c Currency) Format(amount int64) string {
	formatted := c.printer.Sprint(number.Decimal(amount, number.MaxFractionDigits(0)))
	if prefixCurrencies[c.Code] {
		return c.symbol() + formatted
	}
	return formatted + " " + c.symbol()
}
