package domain

import (
	"time"

	"github.com/agendly/appointment-service/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// Appointment represents a booked time window against a tenant's staff capacity
type Appointment struct {
	ID              int64
	TenantID        int64
	UserID          int64
	Date            time.Time // calendar day, time component is zero
	StartTime       types.TimeString
	DurationMinutes int // snapshot of the summed service durations at creation time
	Status          AppointmentStatus

	// Denormalized service data for history; appointments keep a snapshot,
	// not a live reference to the catalog.
	Services   ServiceSnapshots
	TotalPrice float64
	Notes      *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesCapacity returns true if the appointment counts against staff capacity.
// Only pending and confirmed appointments block a slot.
func (a *Appointment) OccupiesCapacity() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the appointment's time may still be edited
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsTerminal returns true if no further status transitions are allowed
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted
}

// CanTransition reports whether the status state machine allows moving from one
// status to another:
//
//	pending   -> confirmed | cancelled | completed
//	confirmed -> completed | cancelled
//	cancelled -> pending | confirmed (administrator reactivation)
//	completed -> (terminal)
func CanTransition(from, to AppointmentStatus) bool {
	if from == to {
		return false
	}
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled || to == StatusCompleted
	case StatusConfirmed:
		return to == StatusCompleted || to == StatusCancelled
	case StatusCancelled:
		return to == StatusPending || to == StatusConfirmed
	case StatusCompleted:
		return false
	default:
		return false
	}
}

// CountOverlapping counts appointments that occupy capacity and overlap the
// candidate window [start, start+durationMinutes). Overlap uses strict
// inequalities: back-to-back windows that only touch at an endpoint do not
// overlap. An appointment with ID equal to excludeID is skipped, so an
// appointment under edit never conflicts with itself.
func CountOverlapping(appointments []*Appointment, start types.TimeString, durationMinutes int, excludeID *int64) int {
	candidateEnd, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return 0
	}

	count := 0
	for _, appt := range appointments {
		if !appt.OccupiesCapacity() {
			continue
		}
		if excludeID != nil && appt.ID == *excludeID {
			continue
		}

		apptEnd, err := appt.StartTime.AddMinutes(appt.DurationMinutes)
		if err != nil {
			continue
		}

		if appt.StartTime.IsBefore(candidateEnd) && apptEnd.IsAfter(start) {
			count++
		}
	}

	return count
}

// TenantAppointmentsFilter filter for listing a tenant's appointments
type TenantAppointmentsFilter struct {
	TenantID        int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *AppointmentStatus
	IncludeInactive bool // include cancelled and completed appointments
}
