package create_appointment

import (
	"context"
	"time"

	"github.com/agendly/appointment-service/internal/domain"
	"github.com/agendly/appointment-service/internal/integrations/catalogservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetByTenantWithFilter(ctx context.Context, filter domain.TenantAppointmentsFilter) ([]*domain.Appointment, error)
}

// CalendarRepository интерфейс репозитория конфигурации календаря
type CalendarRepository interface {
	GetByTenant(ctx context.Context, tenantID int64) (*domain.CalendarConfig, error)
}

// CatalogServiceClient интерфейс клиента каталога услуг
type CatalogServiceClient interface {
	GetServices(ctx context.Context, tenantID int64, serviceIDs []int64) ([]catalogservice.Service, error)
}

// TransactionManager интерфейс менеджера транзакций.
// Создание записи выполняется в SERIALIZABLE-транзакции: проверка вместимости
// и вставка строки — одна атомарная единица работы.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
