package validate_slot

import (
	"time"

	"github.com/agendly/appointment-service/internal/domain"
	"github.com/agendly/appointment-service/pkg/types"
)

// Request модель запроса на проверку слота
type Request struct {
	UserID               int64            // ID пользователя (для логирования)
	TenantID             int64            // ID арендатора
	Date                 time.Time        // Дата кандидата (без времени)
	StartTime            types.TimeString // Время начала кандидата ("HH:MM")
	ServiceIDs           []int64          // Выбранные услуги; определяют длительность окна
	ExcludeAppointmentID *int64           // ID редактируемой записи (исключается из подсчёта)
}

// Response модель ответа с результатом проверки.
// Bookable=false сопровождается машинно-читаемой причиной.
type Response struct {
	Bookable        bool
	Reason          domain.SlotReason // пусто, если Bookable=true
	DurationMinutes int
	AvailableSpots  int
	TotalSpots      int
}
