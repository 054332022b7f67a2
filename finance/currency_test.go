package finance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrency_USD(t *testing.T) {
	s, err := FormatCurrency(1234.56, "en-US", "USD")
	require.NoError(t, err)
	assert.Contains(t, s, "1,234.56")
}

func TestFormatCurrency_InvalidInput(t *testing.T) {
	_, err := FormatCurrency(1, "not a locale!!", "USD")
	assert.Error(t, err)

	_, err = FormatCurrency(1, "en-US", "ZZZZ")
	assert.Error(t, err)
}

func TestCurrency_RoundTrip(t *testing.T) {
	locales := []struct {
		locale, code string
	}{
		{"en-US", "USD"},
		{"en-GB", "GBP"},
		{"de-DE", "EUR"},
		{"fr-FR", "EUR"},
		{"ja-JP", "JPY"},
		{"en-IN", "INR"},
		{"de-CH", "CHF"},
	}
	amounts := []float64{0, 0.5, 1, 12.34, 999.99, 1234.56, 1_000_000, 987654321.12, -42.5, -1234.56}

	for _, l := range locales {
		tolerance := 0.5 * math.Pow10(-CurrencyScale(l.code))
		for _, amount := range amounts {
			formatted, err := FormatCurrency(amount, l.locale, l.code)
			require.NoError(t, err)

			parsed, err := ParseCurrency(formatted, l.locale)
			require.NoErrorf(t, err, "locale=%s formatted=%q", l.locale, formatted)
			assert.InDeltaf(t, amount, parsed, tolerance+1e-9, "locale=%s formatted=%q", l.locale, formatted)
		}
	}
}

func TestParseCurrency_Accounting(t *testing.T) {
	v, err := ParseCurrency("($1,200.50)", "en-US")
	require.NoError(t, err)
	assert.Equal(t, -1200.5, v)
}

func TestParseCurrency_NoDigits(t *testing.T) {
	_, err := ParseCurrency("$", "en-US")
	assert.Error(t, err)
}

func TestDisplayCurrency_FallsBack(t *testing.T) {
	s := DisplayCurrency(10, "!!", "USD")
	assert.Contains(t, s, "10.00")
}
