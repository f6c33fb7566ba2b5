// Package money renders integer till amounts for display.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const DefaultCurrency = "FCFA"

type Formatter struct {
	printer  *message.Printer
	currency string
}

func NewFormatter(currency string) *Formatter {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Formatter{
		printer:  message.NewPrinter(language.French),
		currency: currency,
	}
}

// Format groups digits the fr-FR way and appends the currency suffix.
func (f *Formatter) Format(amount int64) string {
	return f.printer.Sprintf("%d", amount) + " " + f.currency
}

// Signed prefixes the amount with + or - according to the cash direction.
func (f *Formatter) Signed(amount int64, in bool) string {
	if in {
		return "+" + f.Format(amount)
	}
	return "-" + f.Format(amount)
}
