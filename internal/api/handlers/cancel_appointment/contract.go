package cancel_appointment

import (
	"context"

	"github.com/agendly/appointment-service/internal/domain"
)

type AppointmentService interface {
	Cancel(ctx context.Context, id, requesterID int64, isAdmin bool, reason string) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
