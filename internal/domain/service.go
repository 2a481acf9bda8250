package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// DurationUnit unit of a catalog service duration
type DurationUnit string

const (
	DurationUnitMinutes DurationUnit = "minutes"
	DurationUnitHours   DurationUnit = "hours"
)

// ServiceDetails is a catalog service as seen by the booking engine.
// Services are immutable once referenced by an appointment: the appointment
// stores a duration and price snapshot, not a live reference.
type ServiceDetails struct {
	ID           int64
	Name         string
	Price        float64
	Duration     float64
	DurationUnit DurationUnit
}

// DurationMinutes normalizes the service duration to whole minutes
func (s ServiceDetails) DurationMinutes() int {
	if s.DurationUnit == DurationUnitHours {
		return int(math.Round(s.Duration * 60))
	}
	return int(math.Round(s.Duration))
}

// TotalDurationMinutes sums the normalized durations of the selected services.
// Zero services yields zero, which downstream validation rejects as an
// invalid candidate window.
func TotalDurationMinutes(services []ServiceDetails) int {
	total := 0
	for _, s := range services {
		total += s.DurationMinutes()
	}
	return total
}

// TotalPrice sums the prices of the selected services
func TotalPrice(services []ServiceDetails) float64 {
	total := 0.0
	for _, s := range services {
		total += s.Price
	}
	return total
}

// ServiceSnapshot is the denormalized copy of a service stored on an appointment
type ServiceSnapshot struct {
	ServiceID       int64   `json:"serviceId"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// ServiceSnapshots is stored as a JSONB column
type ServiceSnapshots []ServiceSnapshot

// SnapshotServices captures the selected services at booking time
func SnapshotServices(services []ServiceDetails) ServiceSnapshots {
	snapshots := make(ServiceSnapshots, len(services))
	for i, s := range services {
		snapshots[i] = ServiceSnapshot{
			ServiceID:       s.ID,
			Name:            s.Name,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes(),
		}
	}
	return snapshots
}

// Value implements driver.Valuer for JSONB storage
func (s ServiceSnapshots) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal service snapshots: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for JSONB storage
func (s *ServiceSnapshots) Scan(src interface{}) error {
	if src == nil {
		*s = ServiceSnapshots{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for service snapshots")
	}

	return json.Unmarshal(data, s)
}
