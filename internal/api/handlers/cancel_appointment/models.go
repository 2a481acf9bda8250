package cancel_appointment

import (
	"time"

	"github.com/agendly/appointment-service/internal/domain"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// CancelAppointmentResponse HTTP response model
type CancelAppointmentResponse struct {
	ID                 int64   `json:"id"`
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	UpdatedAt          string  `json:"updatedAt"`
}

// FromDomain конвертирует доменную модель записи в HTTP response
func FromDomain(appt *domain.Appointment) *CancelAppointmentResponse {
	var cancelledAt *string
	if appt.CancelledAt != nil {
		formatted := appt.CancelledAt.Format(time.RFC3339)
		cancelledAt = &formatted
	}

	return &CancelAppointmentResponse{
		ID:                 appt.ID,
		Status:             string(appt.Status),
		CancellationReason: appt.CancellationReason,
		CancelledAt:        cancelledAt,
		UpdatedAt:          appt.UpdatedAt.Format(time.RFC3339),
	}
}
