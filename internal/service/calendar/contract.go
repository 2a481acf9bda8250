package calendar

import (
	"context"

	"github.com/agendly/appointment-service/internal/domain"
)

// CalendarRepository интерфейс репозитория конфигурации календаря
type CalendarRepository interface {
	GetByTenant(ctx context.Context, tenantID int64) (*domain.CalendarConfig, error)
	Save(ctx context.Context, config *domain.CalendarConfig) (*domain.CalendarConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
