package get_tenant_appointments

import (
	"context"

	"github.com/agendly/appointment-service/internal/domain"
)

type AppointmentService interface {
	GetTenantAppointments(ctx context.Context, filter domain.TenantAppointmentsFilter) ([]*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
