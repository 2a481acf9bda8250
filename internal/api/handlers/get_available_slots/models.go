package get_available_slots

import (
	"strconv"
	"strings"
	"time"

	"github.com/agendly/appointment-service/internal/domain"
	getAvailableSlots "github.com/agendly/appointment-service/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Bookable        bool   `json:"bookable"`
	Reason          string `json:"reason,omitempty"`
	AvailableSpots  int    `json:"availableSpots"`
	TotalSpots      int    `json:"totalSpots"`
}

// GetAvailableSlotsResponse HTTP модель ответа
type GetAvailableSlotsResponse struct {
	Date            string         `json:"date"`
	TenantID        int64          `json:"tenantId"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// ToUseCaseRequest собирает запрос use case из параметров URL
func ToUseCaseRequest(tenantID int64, dateStr, serviceIDsStr, excludeIDStr string) (getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return getAvailableSlots.Request{}, err
	}

	req := getAvailableSlots.Request{
		TenantID: tenantID,
		Date:     date,
	}

	if serviceIDsStr != "" {
		for _, part := range strings.Split(serviceIDsStr, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return getAvailableSlots.Request{}, err
			}
			req.ServiceIDs = append(req.ServiceIDs, id)
		}
	}

	if excludeIDStr != "" {
		excludeID, err := strconv.ParseInt(excludeIDStr, 10, 64)
		if err != nil {
			return getAvailableSlots.Request{}, err
		}
		req.ExcludeAppointmentID = &excludeID
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *GetAvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			Bookable:        slot.Bookable,
			Reason:          string(slot.Reason),
			AvailableSpots:  slot.AvailableSpots,
			TotalSpots:      slot.TotalSpots,
		})
	}

	return &GetAvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		TenantID:        resp.TenantID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
