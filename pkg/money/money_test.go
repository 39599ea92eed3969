package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"1.234,56", "1234.56", false},
		{"100,00", "100", false},
		{"50,00", "50", false},
		{"0,99", "0.99", false},
		{"1234,56", "1234.56", false},
		{" 12,30 ", "12.3", false},
		// every separator a dot: the last one is the decimal point
		{"1.234.567.89", "1234567.89", false},
		{"1.234.56", "1234.56", false},
		{"12.50", "12.5", false},
		// known edge cases of the grouping heuristic
		{"1,234.56", "", true},
		{"1,234,56", "", true},
		{"12.5", "", true},
		{"", "", true},
		{"abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidAmount)
				assert.True(t, got.IsZero())
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), "got %s, want %s", got, tt.expected)
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"0", "R$ 0,00"},
		{"5", "R$ 5,00"},
		{"150", "R$ 150,00"},
		{"1234.56", "R$ 1.234,56"},
		{"1234567.89", "R$ 1.234.567,89"},
		{"100000", "R$ 100.000,00"},
		{"0.005", "R$ 0,01"},
		{"-42.1", "R$ -42,10"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(decimal.RequireFromString(tt.input)))
		})
	}
}

func TestParseDisplayRoundTrip(t *testing.T) {
	for _, raw := range []string{"1.234,56", "1.234.567.89", "100,00", "0,01", "999.999,99"} {
		t.Run(raw, func(t *testing.T) {
			first, err := Parse(raw)
			require.NoError(t, err)

			again, err := ParseDisplay(Format(first))
			require.NoError(t, err)
			assert.True(t, first.Equal(again), "first %s, again %s", first, again)
			assert.Equal(t, Format(first), Format(again))
		})
	}
}

func TestParseDisplayNegative(t *testing.T) {
	d, err := ParseDisplay("R$ -42,10")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("-42.10").Equal(d))
}

func TestSum(t *testing.T) {
	assert.True(t, Sum().IsZero())
	got := Sum(decimal.RequireFromString("0.1"), decimal.RequireFromString("0.2"))
	assert.True(t, decimal.RequireFromString("0.3").Equal(got))
}
