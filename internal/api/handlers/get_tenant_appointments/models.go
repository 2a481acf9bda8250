package get_tenant_appointments

import (
	"strconv"
	"time"

	"github.com/agendly/appointment-service/internal/domain"
)

// AppointmentResponse HTTP модель записи в списке
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	TenantID        int64   `json:"tenantId"`
	UserID          int64   `json:"userId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	TotalPrice      float64 `json:"totalPrice"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// GetTenantAppointmentsResponse HTTP модель ответа
type GetTenantAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// ToFilter собирает фильтр из query параметров
func ToFilter(tenantID int64, startDateStr, endDateStr, statusStr, includeInactiveStr string) (domain.TenantAppointmentsFilter, error) {
	filter := domain.TenantAppointmentsFilter{TenantID: tenantID}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &endDate
	}

	if statusStr != "" {
		status := domain.AppointmentStatus(statusStr)
		filter.Status = &status
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return filter, err
		}
		filter.IncludeInactive = includeInactive
	}

	return filter, nil
}

// FromDomain конвертирует список доменных моделей в HTTP response
func FromDomain(appts []*domain.Appointment) *GetTenantAppointmentsResponse {
	result := make([]AppointmentResponse, 0, len(appts))
	for _, appt := range appts {
		result = append(result, AppointmentResponse{
			ID:              appt.ID,
			TenantID:        appt.TenantID,
			UserID:          appt.UserID,
			Date:            appt.Date.Format(domain.DateFormat),
			StartTime:       appt.StartTime.String(),
			DurationMinutes: appt.DurationMinutes,
			Status:          string(appt.Status),
			TotalPrice:      appt.TotalPrice,
			Notes:           appt.Notes,
			CreatedAt:       appt.CreatedAt.Format(time.RFC3339),
		})
	}
	return &GetTenantAppointmentsResponse{Appointments: result}
}
