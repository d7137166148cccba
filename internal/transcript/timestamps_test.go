package transcript

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnit(t *testing.T) {
	for _, valid := range []string{"ms", "s", "hms"} {
		unit, err := ParseUnit(valid)
		require.NoError(t, err)
		assert.Equal(t, Unit(valid), unit)
	}

	_, err := ParseUnit("bogus")
	var unitErr *InvalidTimestampUnitError
	require.ErrorAs(t, err, &unitErr)
	assert.Equal(t, "bogus", unitErr.Unit)
}

func TestConvertSecondsDividesByThousand(t *testing.T) {
	for _, ms := range []float64{0, 1, 500, 1234.5, 90000, 3599999.25} {
		ts, err := Convert(ms, UnitSeconds)
		require.NoError(t, err)

		raw, err := ts.MarshalJSON()
		require.NoError(t, err)
		got, err := strconv.ParseFloat(string(raw), 64)
		require.NoError(t, err)
		assert.Equal(t, ms/1000, got, "ms=%v", ms)
	}
}

func TestConvertMillisecondsIsIdentity(t *testing.T) {
	ts, err := Convert(1234.5, UnitMilliseconds)
	require.NoError(t, err)

	raw, err := ts.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "1234.5", string(raw))
	assert.Equal(t, 1234.5, ts.Milliseconds())
}

func TestConvertRejectsUnknownUnit(t *testing.T) {
	for _, ms := range []float64{0, 1, 123456} {
		_, err := Convert(ms, Unit("minutes"))
		var unitErr *InvalidTimestampUnitError
		require.ErrorAs(t, err, &unitErr, "ms=%v", ms)
	}
}

func TestConvertHMSFormat(t *testing.T) {
	tests := []struct {
		ms   float64
		want string
	}{
		{0, "00:00:00.000"},
		{1, "00:00:00.001"},
		{999.9, "00:00:00.999"},
		{1000, "00:00:01.000"},
		{61000, "00:01:01.000"},
		{3599999, "00:59:59.999"},
		{3600000, "01:00:00.000"},
		{86400000, "24:00:00.000"},
		{90061001, "25:01:01.001"},
	}
	for _, tt := range tests {
		ts, err := Convert(tt.ms, UnitHMS)
		require.NoError(t, err)
		assert.Equal(t, tt.want, ts.String(), "ms=%v", tt.ms)

		raw, err := ts.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, strconv.Quote(tt.want), string(raw))
	}
}

func TestConvertHMSRoundTripsWithinOneMillisecond(t *testing.T) {
	values := []float64{0, 1, 999.5, 12345.678, 3599999.9, 3600000, 7261234, 86400000, 359999999}
	for _, ms := range values {
		ts, err := Convert(ms, UnitHMS)
		require.NoError(t, err)
		rederived := parseHMS(t, ts.String())
		assert.InDelta(t, ms, rederived, 1.0, "ms=%v rendered=%s", ms, ts.String())
	}
}

// parseHMS re-derives milliseconds from an HH:MM:SS.mmm string,
// checking the field ranges along the way.
func parseHMS(t *testing.T, s string) float64 {
	t.Helper()

	main, frac, ok := strings.Cut(s, ".")
	require.True(t, ok, "missing millisecond part in %q", s)
	parts := strings.Split(main, ":")
	require.Len(t, parts, 3)

	hours, err := strconv.Atoi(parts[0])
	require.NoError(t, err)
	minutes, err := strconv.Atoi(parts[1])
	require.NoError(t, err)
	seconds, err := strconv.Atoi(parts[2])
	require.NoError(t, err)
	millis, err := strconv.Atoi(frac)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, hours, 0)
	assert.GreaterOrEqual(t, minutes, 0)
	assert.Less(t, minutes, 60)
	assert.GreaterOrEqual(t, seconds, 0)
	assert.Less(t, seconds, 60)
	assert.GreaterOrEqual(t, millis, 0)
	assert.Less(t, millis, 1000)

	return float64(((hours*60+minutes)*60+seconds)*1000 + millis)
}
