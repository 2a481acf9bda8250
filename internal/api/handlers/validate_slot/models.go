package validate_slot

import (
	"time"

	"github.com/agendly/appointment-service/internal/domain"
	validateSlot "github.com/agendly/appointment-service/internal/usecase/validate_slot"
	"github.com/agendly/appointment-service/pkg/types"
)

// ValidateSlotRequest HTTP request model
type ValidateSlotRequest struct {
	Date                 string  `json:"date"`      // "2025-10-15"
	StartTime            string  `json:"startTime"` // "10:00"
	ServiceIDs           []int64 `json:"serviceIds"`
	ExcludeAppointmentID *int64  `json:"excludeAppointmentId,omitempty"`
}

// ValidateSlotResponse HTTP response model
type ValidateSlotResponse struct {
	Bookable        bool   `json:"bookable"`
	Reason          string `json:"reason,omitempty"`
	DurationMinutes int    `json:"durationMinutes"`
	AvailableSpots  int    `json:"availableSpots"`
	TotalSpots      int    `json:"totalSpots"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ValidateSlotRequest) ToUseCaseRequest(tenantID int64) (validateSlot.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return validateSlot.Request{}, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return validateSlot.Request{}, err
	}

	return validateSlot.Request{
		TenantID:             tenantID,
		Date:                 date,
		StartTime:            startTime,
		ServiceIDs:           r.ServiceIDs,
		ExcludeAppointmentID: r.ExcludeAppointmentID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validateSlot.Response) *ValidateSlotResponse {
	return &ValidateSlotResponse{
		Bookable:        resp.Bookable,
		Reason:          string(resp.Reason),
		DurationMinutes: resp.DurationMinutes,
		AvailableSpots:  resp.AvailableSpots,
		TotalSpots:      resp.TotalSpots,
	}
}
