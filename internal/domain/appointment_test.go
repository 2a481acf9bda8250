package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agendly/appointment-service/pkg/ptr"
	"github.com/agendly/appointment-service/pkg/types"
)

func appt(id int64, start types.TimeString, duration int, status AppointmentStatus) *Appointment {
	return &Appointment{
		ID:              id,
		TenantID:        1,
		UserID:          100,
		StartTime:       start,
		DurationMinutes: duration,
		Status:          status,
	}
}

func TestCountOverlapping_StrictBoundaries(t *testing.T) {
	existing := []*Appointment{
		appt(1, "10:00", 60, StatusConfirmed), // 10:00-11:00
	}

	tests := []struct {
		name     string
		start    types.TimeString
		duration int
		want     int
	}{
		{name: "identical window", start: "10:00", duration: 60, want: 1},
		{name: "candidate starts inside", start: "10:30", duration: 60, want: 1},
		{name: "candidate ends inside", start: "09:30", duration: 60, want: 1},
		{name: "candidate contains existing", start: "09:00", duration: 180, want: 1},
		{name: "back to back before", start: "09:00", duration: 60, want: 0},
		{name: "back to back after", start: "11:00", duration: 60, want: 0},
		{name: "disjoint", start: "14:00", duration: 30, want: 0},
		{name: "one minute overlap", start: "10:59", duration: 30, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CountOverlapping(existing, tt.start, tt.duration, nil)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCountOverlapping_OnlyActiveStatusesOccupyCapacity(t *testing.T) {
	existing := []*Appointment{
		appt(1, "10:00", 60, StatusConfirmed),
		appt(2, "10:00", 60, StatusPending),
		appt(3, "10:00", 60, StatusCancelled),
		appt(4, "10:00", 60, StatusCompleted),
	}

	got := CountOverlapping(existing, "10:00", 60, nil)
	assert.Equal(t, 2, got, "только pending и confirmed занимают место")
}

func TestCountOverlapping_ExcludesAppointmentUnderEdit(t *testing.T) {
	existing := []*Appointment{
		appt(1, "10:00", 60, StatusConfirmed),
		appt(2, "10:30", 60, StatusConfirmed),
	}

	// Без исключения оба пересекаются
	assert.Equal(t, 2, CountOverlapping(existing, "10:00", 60, nil))

	// Редактируемая запись не конфликтует сама с собой
	assert.Equal(t, 1, CountOverlapping(existing, "10:00", 60, ptr.Ptr(int64(1))))
}

func TestCountOverlapping_CapacityScenario(t *testing.T) {
	// Две параллельные записи при staffCount=2: третья уже не помещается
	existing := []*Appointment{
		appt(1, "10:00", 60, StatusConfirmed),
		appt(2, "10:00", 30, StatusPending),
	}

	overlapping := CountOverlapping(existing, "10:15", 30, nil)
	assert.Equal(t, 2, overlapping)

	staffCount := 2
	assert.False(t, overlapping < staffCount, "слот занят при полной загрузке")

	// После 10:30 вторая запись закончилась, остаётся одно пересечение
	overlapping = CountOverlapping(existing, "10:30", 30, nil)
	assert.Equal(t, 1, overlapping)
	assert.True(t, overlapping < staffCount)
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusPending, true},
		{StatusCancelled, StatusConfirmed, true},
		{StatusCancelled, StatusCompleted, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusPending, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestAppointment_Lifecycle(t *testing.T) {
	confirmed := appt(1, "10:00", 60, StatusConfirmed)
	assert.True(t, confirmed.OccupiesCapacity())
	assert.True(t, confirmed.CanBeCancelled())
	assert.True(t, confirmed.CanBeRescheduled())
	assert.False(t, confirmed.IsTerminal())

	cancelled := appt(2, "10:00", 60, StatusCancelled)
	assert.False(t, cancelled.OccupiesCapacity())
	assert.False(t, cancelled.CanBeCancelled())
	assert.False(t, cancelled.CanBeRescheduled())

	completed := appt(3, "10:00", 60, StatusCompleted)
	assert.False(t, completed.OccupiesCapacity())
	assert.True(t, completed.IsTerminal())
}
