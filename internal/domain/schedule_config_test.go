package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosuclinic/DosuSchedulerService/pkg/types"
)

var (
	monday   = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
)

func TestSlotTime_WeekdayBeforeLunch(t *testing.T) {
	cfg := NewDefaultConfig()

	cases := []struct {
		slot int
		want types.TimeString
	}{
		{0, "09:00"},
		{1, "09:30"},
		{7, "12:30"},
	}

	for _, tc := range cases {
		got, err := cfg.SlotTime(monday, tc.slot)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "slot %d", tc.slot)
	}
}

func TestSlotTime_WeekdayLunchSkip(t *testing.T) {
	cfg := NewDefaultConfig()

	// 09:00 + 8*30мин = 13:00 - граница обеда, слот уходит на 14:00
	got, err := cfg.SlotTime(monday, 8)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("14:00"), got)

	got, err = cfg.SlotTime(monday, 9)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("14:30"), got)
}

func TestSlotTime_SaturdayNoLunch(t *testing.T) {
	cfg := NewDefaultConfig()

	// По субботам обед не вычитается и действует субботний час открытия
	got, err := cfg.SlotTime(saturday, 8)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("13:00"), got)

	got, err = cfg.SlotTime(saturday, 0)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:00"), got)
}

func TestSlotTime_NegativeSlot(t *testing.T) {
	cfg := NewDefaultConfig()
	_, err := cfg.SlotTime(monday, -1)
	assert.Error(t, err)
}

func TestSlotForTime_RoundTrip(t *testing.T) {
	cfg := NewDefaultConfig()

	for _, date := range []time.Time{monday, saturday} {
		perDay, err := cfg.SlotsPerDay(date)
		require.NoError(t, err)

		for slot := 0; slot < perDay; slot++ {
			ts, err := cfg.SlotTime(date, slot)
			require.NoError(t, err)

			got, err := cfg.SlotForTime(date, ts)
			require.NoError(t, err)
			assert.Equal(t, slot, got, "date %s slot %d time %s", date.Format(DateFormat), slot, ts)
		}
	}
}

func TestSlotsPerDay(t *testing.T) {
	cfg := NewDefaultConfig()

	// Будни: 09:00-21:00 минус час обеда = 11 часов = 22 слота по 30 минут
	got, err := cfg.SlotsPerDay(monday)
	require.NoError(t, err)
	assert.Equal(t, 22, got)

	// Суббота: 09:00-15:00 = 6 часов = 12 слотов
	got, err = cfg.SlotsPerDay(saturday)
	require.NoError(t, err)
	assert.Equal(t, 12, got)
}

func TestIsOvertime(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.False(t, cfg.IsOvertime(monday, "17:30"))
	assert.True(t, cfg.IsOvertime(monday, "18:00"))
	assert.True(t, cfg.IsOvertime(saturday, "13:00"))
	assert.False(t, cfg.IsOvertime(saturday, "12:30"))
}

func TestScheduleConfig_Validate(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate())

	bad := NewDefaultConfig()
	bad.Duration = 15
	assert.Error(t, bad.Validate())

	bad = NewDefaultConfig()
	bad.WdLunchStartHour = "14:00"
	bad.WdLunchEndHour = "13:00"
	assert.Error(t, bad.Validate())

	bad = NewDefaultConfig()
	bad.SdStartHour = "bad"
	assert.Error(t, bad.Validate())

	bad = NewDefaultConfig()
	bad.Name = ""
	assert.Error(t, bad.Validate())

	bad = NewDefaultConfig()
	bad.Name = strings.Repeat("x", MaxConfigName+1)
	assert.Error(t, bad.Validate())
}

func TestScheduleConfig_TruncateWindow(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.StartDate = time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)
	cfg.EndDate = time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)

	cfg.TruncateWindow()

	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), cfg.StartDate)
	assert.Equal(t, time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC), cfg.EndDate)
}
