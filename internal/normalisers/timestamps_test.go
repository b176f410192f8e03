package normalisers

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringsReader(s string) *strings.Reader {
	return strings.NewReader(s)
}

func TestParseTime_EpochMillis(t *testing.T) {
	want := time.Unix(1700000000, 0).UTC()

	for name, v := range map[string]any{
		"int64":       int64(1700000000000),
		"float64":     float64(1700000000000),
		"json.Number": json.Number("1700000000000"),
		"string":      "1700000000000",
	} {
		t.Run(name, func(t *testing.T) {
			got := ParseTime(v, UnitMillis)
			require.NotNil(t, got)
			assert.True(t, want.Equal(*got), "got %s", got)
			assert.Equal(t, int64(1700000000), got.Unix())
		})
	}
}

func TestParseTime_EpochSeconds(t *testing.T) {
	got := ParseTime(json.Number("1700000000"), UnitSeconds)
	require.NotNil(t, got)
	assert.Equal(t, int64(1700000000), got.Unix())
}

func TestParseTime_RFC3339(t *testing.T) {
	got := ParseTime("2023-11-14T22:13:20.000Z", UnitMillis)
	require.NotNil(t, got)
	assert.Equal(t, int64(1700000000), got.Unix())
	assert.Equal(t, time.UTC, got.Location())

	got = ParseTime("2023-11-15T00:13:20+02:00", UnitSeconds)
	require.NotNil(t, got)
	assert.Equal(t, int64(1700000000), got.Unix())
}

func TestParseTime_MissingOrInvalid(t *testing.T) {
	assert.Nil(t, ParseTime(nil, UnitMillis))
	assert.Nil(t, ParseTime("", UnitMillis))
	assert.Nil(t, ParseTime("yesterday", UnitMillis))
	assert.Nil(t, ParseTime(true, UnitMillis))
	assert.Nil(t, ParseTime(map[string]any{}, UnitSeconds))
}

func TestParseTime_FractionalMillis(t *testing.T) {
	got := ParseTime(json.Number("1700000000500"), UnitMillis)
	require.NotNil(t, got)
	assert.Equal(t, int64(1700000000500), got.UnixMilli())
}
