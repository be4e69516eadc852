// Package format renders catalog values for display.
package format

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var symbols = map[currency.Unit]string{
	currency.BRL: "R$",
	currency.USD: "US$",
	currency.EUR: "€",
}

// Money formats prices in a display currency using locale number conventions.
type Money struct {
	unit    currency.Unit
	symbol  string
	printer *message.Printer
}

// NewMoney builds a formatter for the ISO 4217 code and BCP 47 locale tag.
func NewMoney(code, locale string) (*Money, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("format: currency %q: %w", code, err)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("format: locale %q: %w", locale, err)
	}
	symbol, ok := symbols[unit]
	if !ok {
		symbol = unit.String()
	}
	return &Money{unit: unit, symbol: symbol, printer: message.NewPrinter(tag)}, nil
}

// DefaultMoney formats Brazilian reais in pt-BR.
func DefaultMoney() *Money {
	m, _ := NewMoney("BRL", "pt-BR")
	return m
}

// Code returns the ISO code of the display currency.
func (m *Money) Code() string {
	return m.unit.String()
}

// Format renders v with the currency symbol and two decimals.
func (m *Money) Format(v float64) string {
	return m.printer.Sprintf("%s %.2f", m.symbol, v)
}

// CategoryLabel turns a dash-separated category slug into title-cased words.
func CategoryLabel(category string) string {
	words := strings.Split(category, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
