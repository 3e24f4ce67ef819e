package precision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_DecimalPlacesRound(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		places string
		want   string
	}{
		{"round down", "1.2344", "3", "1.234"},
		{"round up", "1.2346", "3", "1.235"},
		{"tie away from zero", "1.2345", "3", "1.235"},
		{"negative tie away from zero", "-1.2345", "3", "-1.235"},
		{"already exact", "1.2", "3", "1.2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.value, Round, tt.places, DecimalPlaces, NoPadding)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvert_DecimalPlacesTruncate(t *testing.T) {
	got, err := Convert("1.2346", Truncate, "3", DecimalPlaces, NoPadding)
	require.NoError(t, err)
	assert.Equal(t, "1.234", got)

	got, err = Convert("-1.2346", Truncate, "3", DecimalPlaces, NoPadding)
	require.NoError(t, err)
	assert.Equal(t, "-1.234", got)
}

func TestConvert_PadWithZero(t *testing.T) {
	got, err := Convert("1.2", Round, "4", DecimalPlaces, PadWithZero)
	require.NoError(t, err)
	assert.Equal(t, "1.2000", got)
}

func TestConvert_SignificantDigitsRound(t *testing.T) {
	got, err := Convert("1234.56789", Round, "5", SignificantDigits, NoPadding)
	require.NoError(t, err)
	assert.Equal(t, "1234.6", got)
}

func TestConvert_SignificantDigitsSmallValue(t *testing.T) {
	got, err := Convert("0.000123456", Round, "3", SignificantDigits, NoPadding)
	require.NoError(t, err)
	assert.Equal(t, "0.000123", got)
}

func TestConvert_SignificantDigitsTruncate(t *testing.T) {
	got, err := Convert("1234.56789", Truncate, "5", SignificantDigits, NoPadding)
	require.NoError(t, err)
	assert.Equal(t, "1234.5", got)
}

func TestConvert_SignificantDigitsPadded(t *testing.T) {
	got, err := Convert("1.2", Round, "4", SignificantDigits, PadWithZero)
	require.NoError(t, err)
	assert.Equal(t, "1.200", got)
}

func TestConvert_TickSizeRound(t *testing.T) {
	// 100.127 sits between 100.10 and 100.15 on a 0.05 grid.
	got, err := Convert("100.127", Round, "0.05", TickSize, NoPadding)
	require.NoError(t, err)
	assert.Equal(t, "100.15", got)
}

func TestConvert_TickSizeTruncate(t *testing.T) {
	got, err := Convert("100.127", Truncate, "0.05", TickSize, NoPadding)
	require.NoError(t, err)
	assert.Equal(t, "100.1", got)
}

func TestConvert_TickSizeExactMultiple(t *testing.T) {
	got, err := Convert("100.15", Round, "0.05", TickSize, NoPadding)
	require.NoError(t, err)
	assert.Equal(t, "100.15", got)
}

func TestConvert_TickSizePadded(t *testing.T) {
	got, err := Convert("100.1", Round, "0.050", TickSize, PadWithZero)
	require.NoError(t, err)
	assert.Equal(t, "100.100", got)
}

func TestConvert_Idempotent(t *testing.T) {
	cases := []struct {
		value    string
		rounding RoundingMode
		prec     string
		mode     Mode
	}{
		{"1.23456789", Round, "4", DecimalPlaces},
		{"1.23456789", Truncate, "4", DecimalPlaces},
		{"9876.54321", Round, "5", SignificantDigits},
		{"100.127", Round, "0.05", TickSize},
		{"100.127", Truncate, "0.05", TickSize},
	}
	for _, tt := range cases {
		once, err := Convert(tt.value, tt.rounding, tt.prec, tt.mode, NoPadding)
		require.NoError(t, err)
		twice, err := Convert(once, tt.rounding, tt.prec, tt.mode, NoPadding)
		require.NoError(t, err)
		assert.Equal(t, once, twice, "converting twice must be a no-op for %q", tt.value)
	}
}

func TestConvert_SignificantThenDecimalCap(t *testing.T) {
	// A significant-digits result re-capped by decimal places keeps its
	// shorter form.
	first, err := Convert("1234.56789", Round, "5", SignificantDigits, NoPadding)
	require.NoError(t, err)
	require.Equal(t, "1234.6", first)

	second, err := Convert(first, Truncate, "8", DecimalPlaces, NoPadding)
	require.NoError(t, err)
	assert.Equal(t, "1234.6", second)
}

func TestConvert_InvalidInput(t *testing.T) {
	_, err := Convert("abc", Round, "2", DecimalPlaces, NoPadding)
	assert.Error(t, err)

	_, err = Convert("1.23", Round, "abc", DecimalPlaces, NoPadding)
	assert.Error(t, err)

	_, err = Convert("1.23", Round, "0", TickSize, NoPadding)
	assert.Error(t, err)
}

func TestConvert_NegativeValues(t *testing.T) {
	got, err := Convert("-100.127", Round, "0.05", TickSize, NoPadding)
	require.NoError(t, err)
	assert.Equal(t, "-100.15", got)
}
