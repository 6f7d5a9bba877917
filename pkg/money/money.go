// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

/*
Package money formats monetary amounts for guest-facing display.

The hotel-operations API quotes all prices as floating-point major units
(the shape the backend serializes), so this package's job is presentation
only: locale-aware grouping and a currency symbol for cart totals, booking
amounts, and checkout summaries.
*/
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// defaultCurrencySymbol matches the property's billing currency.
const defaultCurrencySymbol = "$"

// Formatter renders amounts with locale-aware digit grouping.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter creates a [Formatter] for the given BCP 47 language tag.
// Unknown tags fall back to English grouping rules.
func NewFormatter(tag string) *Formatter {
	parsed, err := language.Parse(tag)
	if err != nil {
		parsed = language.English
	}
	return &Formatter{
		printer: message.NewPrinter(parsed),
		symbol:  defaultCurrencySymbol,
	}
}

// Format renders an amount like "$1,234.50".
func (formatter *Formatter) Format(amount float64) string {
	return formatter.printer.Sprintf("%s%.2f", formatter.symbol, amount)
}

// FormatQuantity renders "3 × $12.00" style cart-line pricing.
func (formatter *Formatter) FormatQuantity(quantity int, unitPrice float64) string {
	return formatter.printer.Sprintf("%d × %s", quantity, formatter.Format(unitPrice))
}
