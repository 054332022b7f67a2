package finance

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	DefaultLocale   = "en-US"
	DefaultCurrency = "USD"
)

// separators caches the decimal mark per locale; deriving it needs a format call.
var separators sync.Map // language.Tag -> string

// FormatCurrency renders amount in the given locale, rounded to the
// currency's standard number of decimals. An empty code picks the locale's
// own currency.
func FormatCurrency(amount float64, locale, code string) (string, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return "", fmt.Errorf("parse locale %q: %w", locale, err)
	}
	unit, err := resolveUnit(tag, code)
	if err != nil {
		return "", err
	}

	scale, _ := currency.Standard.Rounding(unit)
	p := message.NewPrinter(tag)

	sign := ""
	rounded := Round(amount, int32(scale))
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}

	symbol := p.Sprint(currency.Symbol(unit))
	digits := p.Sprint(number.Decimal(rounded, number.Scale(scale)))

	sep := ""
	if last, _ := utf8.DecodeLastRuneInString(symbol); unicode.IsLetter(last) {
		sep = " "
	}
	return sign + symbol + sep + digits, nil
}

// DisplayCurrency formats with a fallback to the default locale and
// never fails; templates use it.
func DisplayCurrency(amount float64, locale, code string) string {
	s, err := FormatCurrency(amount, locale, code)
	if err != nil {
		s, _ = FormatCurrency(amount, DefaultLocale, DefaultCurrency)
	}
	return s
}

// ParseCurrency reads a value produced by FormatCurrency for the same
// locale. Group separators and currency symbols are ignored; a minus sign
// or surrounding parentheses make the value negative. Only ASCII digits
// are recognised.
func ParseCurrency(text, locale string) (float64, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return 0, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	decimalMark := decimalSeparator(tag)

	trimmed := strings.TrimSpace(text)
	negative := strings.ContainsAny(trimmed, "-−") ||
		(strings.HasPrefix(trimmed, "(") && strings.HasSuffix(trimmed, ")"))

	var b strings.Builder
	seenDigit := false
	seenMark := false
	for _, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			seenDigit = true
		case string(r) == decimalMark && seenDigit && !seenMark:
			b.WriteByte('.')
			seenMark = true
		}
	}
	if !seenDigit {
		return 0, fmt.Errorf("no digits in %q", text)
	}

	v, err := strconv.ParseFloat(strings.TrimSuffix(b.String(), "."), 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", text, err)
	}
	if negative {
		v = -v
	}
	return v, nil
}

// CurrencyScale is the number of decimals a currency is quoted in.
func CurrencyScale(code string) int {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return 2
	}
	scale, _ := currency.Standard.Rounding(unit)
	return scale
}

func resolveUnit(tag language.Tag, code string) (currency.Unit, error) {
	if code == "" {
		unit, _ := currency.FromTag(tag)
		return unit, nil
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("parse currency %q: %w", code, err)
	}
	return unit, nil
}

// decimalSeparator formats 1.5 in the locale and keeps whatever sits between
// the digits.
func decimalSeparator(tag language.Tag) string {
	if v, ok := separators.Load(tag); ok {
		return v.(string)
	}
	sample := message.NewPrinter(tag).Sprint(number.Decimal(1.5, number.Scale(1)))
	mark := "."
	if i := strings.IndexRune(sample, '1'); i >= 0 {
		if j := strings.LastIndex(sample, "5"); j > i+1 {
			mark = sample[i+1 : j]
		}
	}
	separators.Store(tag, mark)
	return mark
}
