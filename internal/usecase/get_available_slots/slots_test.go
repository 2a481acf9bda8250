package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendly/appointment-service/internal/domain"
	"github.com/agendly/appointment-service/pkg/types"
)

func TestGenerateSlots(t *testing.T) {
	tests := []struct {
		name     string
		block    domain.TimeBlock
		interval int
		want     []types.TimeString
	}{
		{
			name:     "even division",
			block:    domain.TimeBlock{Start: "09:00", End: "11:00"},
			interval: 30,
			want:     []types.TimeString{"09:00", "09:30", "10:00", "10:30"},
		},
		{
			name:     "trailing partial slot dropped",
			block:    domain.TimeBlock{Start: "09:00", End: "10:45"},
			interval: 30,
			want:     []types.TimeString{"09:00", "09:30", "10:00"},
		},
		{
			name:     "interval larger than block",
			block:    domain.TimeBlock{Start: "09:00", End: "09:20"},
			interval: 30,
			want:     []types.TimeString{},
		},
		{
			name:     "single exact slot",
			block:    domain.TimeBlock{Start: "09:00", End: "09:30"},
			interval: 30,
			want:     []types.TimeString{"09:00"},
		},
		{
			name:     "block up to end of day",
			block:    domain.TimeBlock{Start: "23:00", End: "24:00"},
			interval: 30,
			want:     []types.TimeString{"23:00", "23:30"},
		},
		{
			name:     "non-positive interval",
			block:    domain.TimeBlock{Start: "09:00", End: "18:00"},
			interval: 0,
			want:     []types.TimeString{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, generateSlots(tt.block, tt.interval))
		})
	}
}

func TestGenerateDaySlots(t *testing.T) {
	blocks := []domain.TimeBlock{
		{Start: "09:00", End: "12:30"},
		{Start: "15:00", End: "18:00"},
	}

	slots := generateDaySlots(blocks, 60)

	// Из утреннего блока не помещается слот 12:00-13:00
	require.Equal(t, []types.TimeString{"09:00", "10:00", "11:00", "15:00", "16:00", "17:00"}, slots)
}

func TestFilterPastSlots(t *testing.T) {
	slots := []types.TimeString{"09:00", "10:00", "11:00"}
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	t.Run("future date keeps all slots", func(t *testing.T) {
		now := time.Date(2025, 10, 14, 23, 0, 0, 0, time.UTC)
		assert.Equal(t, slots, filterPastSlots(slots, date, now))
	})

	t.Run("same day drops passed slots", func(t *testing.T) {
		now := time.Date(2025, 10, 15, 9, 30, 0, 0, time.UTC)
		assert.Equal(t, []types.TimeString{"10:00", "11:00"}, filterPastSlots(slots, date, now))
	})

	t.Run("slot starting right now stays", func(t *testing.T) {
		now := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)
		assert.Equal(t, []types.TimeString{"10:00", "11:00"}, filterPastSlots(slots, date, now))
	})
}

func TestIsBeyondHorizon(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name           string
		date           time.Time
		maxMonthsAhead int
		want           bool
	}{
		{
			name:           "last day of horizon",
			date:           time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
			maxMonthsAhead: 1,
			want:           false,
		},
		{
			name:           "one day past horizon",
			date:           time.Date(2024, 2, 16, 0, 0, 0, 0, time.UTC),
			maxMonthsAhead: 1,
			want:           true,
		},
		{
			name:           "inside horizon",
			date:           time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC),
			maxMonthsAhead: 1,
			want:           false,
		},
		{
			name:           "three months ahead",
			date:           time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC),
			maxMonthsAhead: 3,
			want:           false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isBeyondHorizon(tt.date, now, tt.maxMonthsAhead))
		})
	}
}

func TestIsDateInPast(t *testing.T) {
	now := time.Date(2025, 10, 15, 23, 50, 0, 0, time.UTC)

	assert.True(t, isDateInPast(time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, isDateInPast(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, isDateInPast(time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC), now))
}
