package get_user_appointments

import (
	"context"

	"github.com/agendly/appointment-service/internal/domain"
)

type AppointmentService interface {
	GetUserAppointments(ctx context.Context, userID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
