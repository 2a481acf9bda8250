package domain

import "github.com/agendly/appointment-service/pkg/types"

// SlotReason explains why a slot is not bookable
type SlotReason string

const (
	ReasonNonWorkingDay    SlotReason = "non_working_day"
	ReasonOutOfHorizon     SlotReason = "out_of_horizon"
	ReasonInvalidDuration  SlotReason = "invalid_duration"
	ReasonCapacityExceeded SlotReason = "capacity_exceeded"
)

// Slot is a derived candidate start time for one day. Slots are computed
// fresh per query and never persisted.
type Slot struct {
	StartTime       types.TimeString
	DurationMinutes int
	Bookable        bool
	Reason          SlotReason // empty when bookable
	AvailableSpots  int
	TotalSpots      int
}

// IsFull returns true if the slot has no available spots
func (s *Slot) IsFull() bool {
	return s.AvailableSpots <= 0
}
