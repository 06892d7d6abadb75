package values

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	invalidMsg = "invalid value"
	singleMsg  = "single value required"
)

func TestStringList(t *testing.T) {
	got, err := StringList("29", invalidMsg)
	require.NoError(t, err)
	assert.Equal(t, []string{"29"}, got)

	got, err = StringList([]string{"29", "38"}, invalidMsg)
	require.NoError(t, err)
	assert.Equal(t, []string{"29", "38"}, got)
}

func TestStringList_RejectsEmptyAndNonStrings(t *testing.T) {
	_, err := StringList([]string{}, invalidMsg)
	require.Error(t, err)
	assert.True(t, IsInputError(err))
	assert.EqualError(t, err, invalidMsg)

	_, err = StringList(7, invalidMsg)
	require.Error(t, err)
	assert.True(t, IsInputError(err))

	_, err = StringList(nil, invalidMsg)
	require.Error(t, err)
	assert.True(t, IsInputError(err))
}

func TestString_RejectsSlices(t *testing.T) {
	_, err := String([]string{"a", "b"}, invalidMsg, singleMsg)
	require.Error(t, err)
	assert.EqualError(t, err, singleMsg)
}

func TestNumber_Integers(t *testing.T) {
	got, err := Number(2000, invalidMsg, singleMsg)
	require.NoError(t, err)
	assert.Equal(t, "2000", got)

	got, err = Number(int64(-15), invalidMsg, singleMsg)
	require.NoError(t, err)
	assert.Equal(t, "-15", got)
}

func TestNumber_FloatsQuantizeToFourPlaces(t *testing.T) {
	got, err := Number(10.23456, invalidMsg, singleMsg)
	require.NoError(t, err)
	assert.Equal(t, "10.2346", got)

	// Floats drop insignificant zeros.
	got, err = Number(10.5, invalidMsg, singleMsg)
	require.NoError(t, err)
	assert.Equal(t, "10.5", got)
}

func TestNumber_DecimalsKeepTrailingZeros(t *testing.T) {
	got, err := Number(decimal.RequireFromString("10.5"), invalidMsg, singleMsg)
	require.NoError(t, err)
	assert.Equal(t, "10.5000", got)
}

func TestNumber_RejectsBooleans(t *testing.T) {
	_, err := Number(true, invalidMsg, singleMsg)
	require.Error(t, err)
	assert.True(t, IsInputError(err))
	assert.EqualError(t, err, invalidMsg)
}

func TestNumber_RoundTripsThroughDecimal(t *testing.T) {
	// A normalized float parses back to its 4-place rounding.
	for _, x := range []float64{0.00005, 1.23455, -2.71828, 99.99995} {
		s, err := Number(x, invalidMsg, singleMsg)
		require.NoError(t, err)
		parsed := decimal.RequireFromString(s)
		want := decimal.NewFromFloat(x).Round(4)
		assert.True(t, want.Equal(parsed), "%v normalized to %s", x, s)
	}
}

func TestDate_Formats(t *testing.T) {
	d := time.Date(2019, 7, 16, 0, 0, 0, 0, time.UTC)

	got, err := Date(d, RangeFormat, invalidMsg, singleMsg)
	require.NoError(t, err)
	assert.Equal(t, "2019-07-16", got)

	got, err = Date(d, BasicFormat, invalidMsg, singleMsg)
	require.NoError(t, err)
	assert.Equal(t, "20190716", got)
}

func TestDate_BasicFormatRoundTrips(t *testing.T) {
	d := time.Date(2021, 2, 28, 0, 0, 0, 0, time.UTC)
	s, err := Date(d, BasicFormat, invalidMsg, singleMsg)
	require.NoError(t, err)

	parsed, err := time.Parse("20060102", s)
	require.NoError(t, err)
	assert.True(t, d.Equal(parsed))
}

func TestDateTime_SecondsPrecisionNoZone(t *testing.T) {
	dt := time.Date(2019, 7, 16, 13, 45, 59, 999_000_000, time.UTC)
	got, err := DateTime(dt, invalidMsg, singleMsg)
	require.NoError(t, err)
	assert.Equal(t, "2019-07-16T13:45:59", got)
}

func TestDateList_MixedTypesRejected(t *testing.T) {
	_, err := DateList([]any{time.Now(), "2019-07-16"}, BasicFormat, invalidMsg)
	require.Error(t, err)
	assert.True(t, IsInputError(err))
}
