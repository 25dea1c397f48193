package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	_, err = NewTimeStringFromString("25:00")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("9:30pm")
	assert.Error(t, err)
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2025, 6, 2, 14, 5, 59, 0, time.UTC))
	assert.Equal(t, "14:05", ts.String())
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("13:30")

	got, err := ts.AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("14:30"), got)

	got, err = ts.AddMinutes(-90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:00"), got)

	_, err = ts.AddMinutes(11 * 60)
	assert.Error(t, err, "выход за границы суток")

	_, err = ts.AddMinutes(-14 * 60)
	assert.Error(t, err)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("13:00"))
	assert.True(t, TimeString("13:00").IsAfter("09:59"))
	assert.False(t, TimeString("13:00").IsBefore("13:00"))
	assert.False(t, TimeString("13:00").IsAfter("13:00"))
	assert.True(t, TimeString("13:00").Equal("13:00"))
}

func TestTimeString_DiffMinutes(t *testing.T) {
	diff, err := TimeString("14:00").DiffMinutes("13:00")
	require.NoError(t, err)
	assert.Equal(t, 60, diff)

	diff, err = TimeString("09:00").DiffMinutes("09:30")
	require.NoError(t, err)
	assert.Equal(t, -30, diff)
}

func TestTimeString_Validate(t *testing.T) {
	assert.NoError(t, TimeString("00:00").Validate())
	assert.NoError(t, TimeString("23:59").Validate())
	assert.Error(t, TimeString("24:00").Validate())
	assert.Error(t, TimeString("").Validate())
	assert.True(t, TimeString("").IsZero())
}
