package documents

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// numberFormatter prints amounts with the digit grouping and decimal
// separator of a locale.
type numberFormatter struct {
	printer *message.Printer
}

func newNumberFormatter(locale string) numberFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return numberFormatter{printer: message.NewPrinter(tag)}
}

// Money formats v with two decimals.
func (f numberFormatter) Money(v float64) string {
	return f.printer.Sprint(number.Decimal(v, number.Scale(2)))
}

// Quantity formats v with up to four decimals and no trailing zeros.
func (f numberFormatter) Quantity(v float64) string {
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(4)))
}

// rawNumber renders v for form inputs, which always use a dot separator.
func rawNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// lineTotal returns item.Total or, when it is zero, the discounted product of
// quantity and price.
func lineTotal(item LineItem) float64 {
	if item.Total != 0 {
		return item.Total
	}
	total := item.Quantity * item.Price
	if item.Discount > 0 {
		total -= total * item.Discount / 100
	}
	return total
}
