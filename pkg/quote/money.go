package quote

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale matches the currency formatting of the quote pages.
const DefaultLocale = "es-CL"

// MoneyFormatter renders amounts as integer currency with locale grouping,
// e.g. "$1.234.567" for es-CL.
type MoneyFormatter struct {
	printer *message.Printer
	symbol  string
}

// NewMoneyFormatter builds a formatter for the BCP 47 locale. An empty locale
// selects DefaultLocale and an empty symbol selects "$".
func NewMoneyFormatter(locale, symbol string) (*MoneyFormatter, error) {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("quote: parse locale %q: %w", locale, err)
	}
	if symbol == "" {
		symbol = "$"
	}
	return &MoneyFormatter{printer: message.NewPrinter(tag), symbol: symbol}, nil
}

// Integer truncates amount toward zero and formats it with grouping.
func (f *MoneyFormatter) Integer(amount decimal.Decimal) string {
	return f.symbol + f.printer.Sprintf("%d", amount.IntPart())
}
