package create_appointment

import (
	"time"

	"github.com/agendly/appointment-service/internal/domain"
	"github.com/agendly/appointment-service/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	UserID     int64            // ID пользователя, создающего запись
	TenantID   int64            // ID арендатора
	Date       time.Time        // Дата записи (без времени)
	StartTime  types.TimeString // Время начала ("HH:MM")
	ServiceIDs []int64          // Выбранные услуги
	Notes      *string          // Комментарий пользователя
}

// Response модель ответа с созданной записью
type Response struct {
	Appointment *domain.Appointment
}
