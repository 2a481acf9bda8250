package create_appointment

import (
	"time"

	"github.com/agendly/appointment-service/internal/domain"
	createAppointment "github.com/agendly/appointment-service/internal/usecase/create_appointment"
	"github.com/agendly/appointment-service/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	TenantID   int64   `json:"tenantId"`
	Date       string  `json:"date"`      // "2025-10-15"
	StartTime  string  `json:"startTime"` // "10:00"
	ServiceIDs []int64 `json:"serviceIds"`
	Notes      *string `json:"notes,omitempty"`
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
func (r *CreateAppointmentRequest) ToUseCaseRequest(userID int64) (createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return createAppointment.Request{}, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return createAppointment.Request{}, err
	}

	return createAppointment.Request{
		UserID:     userID,
		TenantID:   r.TenantID,
		Date:       date,
		StartTime:  startTime,
		ServiceIDs: r.ServiceIDs,
		Notes:      r.Notes,
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
