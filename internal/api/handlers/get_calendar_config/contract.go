package get_calendar_config

import (
	"context"

	"github.com/agendly/appointment-service/internal/domain"
)

type CalendarService interface {
	GetConfig(ctx context.Context, tenantID int64) (*domain.CalendarConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
