package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendly/appointment-service/pkg/types"
)

func uniformConfig() *CalendarConfig {
	return &CalendarConfig{
		TenantID:        1,
		StartHour:       9,
		EndHour:         18,
		IntervalMinutes: 30,
		LunchStart:      13,
		LunchEnd:        15,
		MaxMonthsAhead:  3,
		WorkingDays:     []int{1, 2, 3, 4, 5, 6},
		StaffCount:      2,
	}
}

func TestCalendarConfig_OpenBlocksFor_UniformWithLunch(t *testing.T) {
	config := uniformConfig()
	// 2025-10-15 is a Wednesday
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	blocks := config.OpenBlocksFor(date)

	require.Len(t, blocks, 2)
	assert.Equal(t, types.TimeString("09:00"), blocks[0].Start)
	assert.Equal(t, types.TimeString("13:00"), blocks[0].End)
	assert.Equal(t, types.TimeString("15:00"), blocks[1].Start)
	assert.Equal(t, types.TimeString("18:00"), blocks[1].End)
}

func TestCalendarConfig_OpenBlocksFor_NoLunch(t *testing.T) {
	config := uniformConfig()
	config.LunchStart = 0
	config.LunchEnd = 0
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	blocks := config.OpenBlocksFor(date)

	require.Len(t, blocks, 1)
	assert.Equal(t, types.TimeString("09:00"), blocks[0].Start)
	assert.Equal(t, types.TimeString("18:00"), blocks[0].End)
}

func TestCalendarConfig_OpenBlocksFor_FractionalHours(t *testing.T) {
	config := uniformConfig()
	config.StartHour = 9.5
	config.EndHour = 17.5
	config.LunchStart = 0
	config.LunchEnd = 0
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	blocks := config.OpenBlocksFor(date)

	require.Len(t, blocks, 1)
	assert.Equal(t, types.TimeString("09:30"), blocks[0].Start)
	assert.Equal(t, types.TimeString("17:30"), blocks[0].End)
}

func TestCalendarConfig_OpenBlocksFor_DayBlocksOverride(t *testing.T) {
	config := uniformConfig()
	config.DayBlocks = map[string][]TimeBlock{
		"wednesday": {
			{Start: "10:00", End: "12:00"},
			{Start: "16:00", End: "20:00"},
		},
	}

	wednesday := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	thursday := time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)

	// Переопределение действует только на среду
	blocks := config.OpenBlocksFor(wednesday)
	require.Len(t, blocks, 2)
	assert.Equal(t, types.TimeString("10:00"), blocks[0].Start)
	assert.Equal(t, types.TimeString("20:00"), blocks[1].End)

	// В четверг действует единое расписание с обедом
	blocks = config.OpenBlocksFor(thursday)
	require.Len(t, blocks, 2)
	assert.Equal(t, types.TimeString("09:00"), blocks[0].Start)
}

func TestCalendarConfig_OpenBlocksFor_EmptyDayBlocksMeansClosed(t *testing.T) {
	config := uniformConfig()
	config.DayBlocks = map[string][]TimeBlock{
		"wednesday": {},
	}
	wednesday := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	// Пустой список — это явное "закрыто", а не откат к единому расписанию
	blocks := config.OpenBlocksFor(wednesday)
	assert.Empty(t, blocks)
}

func TestCalendarConfig_IsWorkingDay(t *testing.T) {
	config := uniformConfig() // Monday..Saturday

	sunday := time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)

	assert.False(t, config.IsWorkingDay(sunday))
	assert.True(t, config.IsWorkingDay(monday))
}

func TestCalendarConfig_WindowWithinOpenBlocks(t *testing.T) {
	config := uniformConfig()
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	// Окно целиком в утреннем блоке
	assert.True(t, config.WindowWithinOpenBlocks(date, "09:00", 60))

	// Окно упирается ровно в границу блока
	assert.True(t, config.WindowWithinOpenBlocks(date, "12:00", 60))

	// Окно пересекает обед
	assert.False(t, config.WindowWithinOpenBlocks(date, "12:30", 60))

	// Окно начинается в обед
	assert.False(t, config.WindowWithinOpenBlocks(date, "13:00", 30))

	// Окно выходит за конец дня
	assert.False(t, config.WindowWithinOpenBlocks(date, "17:45", 30))
}

func TestCalendarConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CalendarConfig)
	}{
		{name: "interval too small", mutate: func(c *CalendarConfig) { c.IntervalMinutes = 1 }},
		{name: "interval too large", mutate: func(c *CalendarConfig) { c.IntervalMinutes = 600 }},
		{name: "zero staff", mutate: func(c *CalendarConfig) { c.StaffCount = 0 }},
		{name: "horizon too far", mutate: func(c *CalendarConfig) { c.MaxMonthsAhead = 48 }},
		{name: "start after end", mutate: func(c *CalendarConfig) { c.StartHour = 18; c.EndHour = 9 }},
		{name: "no working days", mutate: func(c *CalendarConfig) { c.WorkingDays = nil }},
		{name: "weekday ordinal out of range", mutate: func(c *CalendarConfig) { c.WorkingDays = []int{7} }},
		{name: "unknown weekday in dayBlocks", mutate: func(c *CalendarConfig) {
			c.DayBlocks = map[string][]TimeBlock{"someday": {{Start: "09:00", End: "10:00"}}}
		}},
		{name: "block start after end", mutate: func(c *CalendarConfig) {
			c.DayBlocks = map[string][]TimeBlock{"monday": {{Start: "12:00", End: "10:00"}}}
		}},
		{name: "overlapping blocks", mutate: func(c *CalendarConfig) {
			c.DayBlocks = map[string][]TimeBlock{"monday": {
				{Start: "09:00", End: "12:00"},
				{Start: "11:00", End: "14:00"},
			}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := uniformConfig()
			tt.mutate(config)
			require.ErrorIs(t, config.Validate(), ErrInvalidConfig)
		})
	}

	t.Run("valid config", func(t *testing.T) {
		require.NoError(t, uniformConfig().Validate())
	})

	t.Run("lunch disabled when start equals end", func(t *testing.T) {
		config := uniformConfig()
		config.LunchStart = 13
		config.LunchEnd = 13
		require.NoError(t, config.Validate())
		assert.False(t, config.LunchEnabled())
	})
}

func TestHourToClock(t *testing.T) {
	assert.Equal(t, types.TimeString("09:00"), HourToClock(9))
	assert.Equal(t, types.TimeString("09:30"), HourToClock(9.5))
	assert.Equal(t, types.TimeString("24:00"), HourToClock(24))
	assert.Equal(t, types.TimeString("00:00"), HourToClock(0))
}

func TestWeekdayName(t *testing.T) {
	assert.Equal(t, "sunday", WeekdayName(time.Sunday))
	assert.Equal(t, "wednesday", WeekdayName(time.Wednesday))
	assert.Equal(t, "saturday", WeekdayName(time.Saturday))
}
