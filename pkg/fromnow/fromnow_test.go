package fromnow_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/jsone-go/pkg/fromnow"
)

func TestApplySimpleDays(t *testing.T) {
	ref := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	got, err := fromnow.Apply("1 day", ref)
	require.NoError(t, err)
	assert.Equal(t, "2020-01-02T00:00:00.000Z", got)
}

func TestApplyNegativeOffset(t *testing.T) {
	ref := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	got, err := fromnow.Apply("-1 day", ref)
	require.NoError(t, err)
	assert.Equal(t, "2020-01-01T00:00:00.000Z", got)
}

func TestOffsetCombinedUnits(t *testing.T) {
	ref := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	got, err := fromnow.Apply("1 day 2 hours", ref)
	require.NoError(t, err)
	assert.Equal(t, "2020-01-02T02:00:00.000Z", got)
}

func TestFormatUTCTruncatesToMilliseconds(t *testing.T) {
	ref := time.Date(2020, 1, 1, 0, 0, 0, 123456789, time.UTC)
	assert.Equal(t, "2020-01-01T00:00:00.123Z", fromnow.FormatUTC(ref))
}

func TestParseUTCRoundTrip(t *testing.T) {
	s := "2020-01-01T00:00:00.123Z"
	got, err := fromnow.ParseUTC(s)
	require.NoError(t, err)
	assert.Equal(t, s, fromnow.FormatUTC(got))
}

func TestOffsetAcceptsShortUnitAbbreviations(t *testing.T) {
	ref := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	got, err := fromnow.Apply("1yr", ref)
	require.NoError(t, err)
	assert.Equal(t, "2020-12-31T00:15:00.000Z", got)

	got, err = fromnow.Apply("3hr", ref)
	require.NoError(t, err)
	assert.Equal(t, "2020-01-01T03:00:00.000Z", got)

	got, err = fromnow.Apply("2wk", ref)
	require.NoError(t, err)
	assert.Equal(t, "2020-01-15T00:00:00.000Z", got)
}

func TestOffsetInvalidString(t *testing.T) {
	_, err := fromnow.Offset("not an offset !!!")
	require.Error(t, err)
}
