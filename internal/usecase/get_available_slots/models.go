package get_available_slots

import (
	"time"

	"github.com/agendly/appointment-service/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID               int64     // ID пользователя (для логирования, не влияет на результат)
	TenantID             int64     // ID арендатора
	Date                 time.Time // Дата для получения слотов (без времени)
	ServiceIDs           []int64   // Выбранные услуги; определяют длительность окна
	ExcludeAppointmentID *int64    // ID редактируемой записи (исключается из подсчёта пересечений)
}

// Response модель ответа со списком слотов
type Response struct {
	Date            time.Time     // Дата, на которую запрашивались слоты
	TenantID        int64         // ID арендатора
	DurationMinutes int           // Суммарная длительность выбранных услуг
	Slots           []domain.Slot // Список слотов с признаком доступности
}
