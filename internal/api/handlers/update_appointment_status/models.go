package update_appointment_status

import (
	"time"

	"github.com/agendly/appointment-service/internal/domain"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatusResponse HTTP response model
type UpdateStatusResponse struct {
	ID        int64  `json:"id"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updatedAt"`
}

// FromDomain конвертирует доменную модель записи в HTTP response
func FromDomain(appt *domain.Appointment) *UpdateStatusResponse {
	return &UpdateStatusResponse{
		ID:        appt.ID,
		Status:    string(appt.Status),
		UpdatedAt: appt.UpdatedAt.Format(time.RFC3339),
	}
}
