package get_appointment

import (
	"time"

	"github.com/agendly/appointment-service/internal/domain"
)

// ServiceSnapshotResponse HTTP модель снимка услуги
type ServiceSnapshotResponse struct {
	ServiceID       int64   `json:"serviceId"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID                 int64                     `json:"id"`
	TenantID           int64                     `json:"tenantId"`
	UserID             int64                     `json:"userId"`
	Date               string                    `json:"date"`
	StartTime          string                    `json:"startTime"`
	DurationMinutes    int                       `json:"durationMinutes"`
	Status             string                    `json:"status"`
	Services           []ServiceSnapshotResponse `json:"services"`
	TotalPrice         float64                   `json:"totalPrice"`
	Notes              *string                   `json:"notes,omitempty"`
	CancellationReason *string                   `json:"cancellationReason,omitempty"`
	CancelledAt        *string                   `json:"cancelledAt,omitempty"`
	CreatedAt          string                    `json:"createdAt"`
	UpdatedAt          string                    `json:"updatedAt"`
}

// FromDomain конвертирует доменную модель записи в HTTP response
func FromDomain(appt *domain.Appointment) *AppointmentResponse {
	services := make([]ServiceSnapshotResponse, 0, len(appt.Services))
	for _, s := range appt.Services {
		services = append(services, ServiceSnapshotResponse{
			ServiceID:       s.ServiceID,
			Name:            s.Name,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
		})
	}

	var cancelledAt *string
	if appt.CancelledAt != nil {
		formatted := appt.CancelledAt.Format(time.RFC3339)
		cancelledAt = &formatted
	}

	return &AppointmentResponse{
		ID:                 appt.ID,
		TenantID:           appt.TenantID,
		UserID:             appt.UserID,
		Date:               appt.Date.Format(domain.DateFormat),
		StartTime:          appt.StartTime.String(),
		DurationMinutes:    appt.DurationMinutes,
		Status:             string(appt.Status),
		Services:           services,
		TotalPrice:         appt.TotalPrice,
		Notes:              appt.Notes,
		CancellationReason: appt.CancellationReason,
		CancelledAt:        cancelledAt,
		CreatedAt:          appt.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          appt.UpdatedAt.Format(time.RFC3339),
	}
}
