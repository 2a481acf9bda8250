package reschedule_appointment

import (
	"time"

	"github.com/agendly/appointment-service/internal/domain"
	rescheduleAppointment "github.com/agendly/appointment-service/internal/usecase/reschedule_appointment"
	"github.com/agendly/appointment-service/pkg/types"
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
}

// ServiceSnapshotResponse HTTP модель снимка услуги
type ServiceSnapshotResponse struct {
	ServiceID       int64   `json:"serviceId"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64                     `json:"id"`
	TenantID        int64                     `json:"tenantId"`
	UserID          int64                     `json:"userId"`
	Date            string                    `json:"date"`
	StartTime       string                    `json:"startTime"`
	DurationMinutes int                       `json:"durationMinutes"`
	Status          string                    `json:"status"`
	Services        []ServiceSnapshotResponse `json:"services"`
	TotalPrice      float64                   `json:"totalPrice"`
	Notes           *string                   `json:"notes,omitempty"`
	CreatedAt       string                    `json:"createdAt"`
	UpdatedAt       string                    `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(appointmentID, userID int64, isAdmin bool) (rescheduleAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return rescheduleAppointment.Request{}, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return rescheduleAppointment.Request{}, err
	}

	return rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		UserID:        userID,
		IsAdmin:       isAdmin,
		Date:          date,
		StartTime:     startTime,
	}, nil
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

	return &AppointmentResponse{
		ID:              appt.ID,
		TenantID:        appt.TenantID,
		UserID:          appt.UserID,
		Date:            appt.Date.Format(domain.DateFormat),
		StartTime:       appt.StartTime.String(),
		DurationMinutes: appt.DurationMinutes,
		Status:          string(appt.Status),
		Services:        services,
		TotalPrice:      appt.TotalPrice,
		Notes:           appt.Notes,
		CreatedAt:       appt.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       appt.UpdatedAt.Format(time.RFC3339),
	}
}
