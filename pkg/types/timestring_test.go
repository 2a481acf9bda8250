package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning time", input: "09:30", want: "09:30"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "end of day boundary", input: "24:00", want: "24:00"},
		{name: "after end of day", input: "24:01", wantErr: true},
		{name: "hour out of range", input: "25:00", wantErr: true},
		{name: "minutes out of range", input: "10:60", wantErr: true},
		{name: "missing zero padding", input: "9:30", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "garbage", input: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		minutes int
		want    TimeString
		wantErr bool
	}{
		{name: "within the hour", start: "09:00", minutes: 30, want: "09:30"},
		{name: "crosses the hour", start: "09:45", minutes: 30, want: "10:15"},
		{name: "reaches end of day", start: "23:30", minutes: 30, want: "24:00"},
		{name: "overflows the day", start: "23:30", minutes: 31, wantErr: true},
		{name: "zero minutes", start: "12:00", minutes: 0, want: "12:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.minutes)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrTimeOutOfRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:00").IsAfter("09:59"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
	assert.False(t, TimeString("09:00").IsAfter("09:00"))

	// Лексикографический порядок совпадает с хронологическим благодаря нулям слева
	assert.True(t, TimeString("09:05").IsBefore("11:00"))
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2025, 10, 15, 14, 7, 33, 0, time.UTC)
	assert.Equal(t, TimeString("14:07"), NewTimeString(moment))
}

func TestFromMinutes(t *testing.T) {
	got, err := FromMinutes(570)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), got)

	got, err = FromMinutes(1440)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), got)

	_, err = FromMinutes(1441)
	require.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = FromMinutes(-1)
	require.ErrorIs(t, err, ErrTimeOutOfRange)
}
