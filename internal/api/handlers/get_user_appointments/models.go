package get_user_appointments

import (
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

// GetUserAppointmentsResponse HTTP модель ответа
type GetUserAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// FromDomain конвертирует список доменных моделей в HTTP response
func FromDomain(appts []*domain.Appointment) *GetUserAppointmentsResponse {
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
	return &GetUserAppointmentsResponse{Appointments: result}
}
