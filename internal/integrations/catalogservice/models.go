package catalogservice

import "github.com/agendly/appointment-service/internal/domain"

// Service услуга из каталога арендатора
type Service struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Duration     float64 `json:"duration"`
	DurationUnit string  `json:"durationUnit"` // "minutes" | "hours"
}

// ToDomain конвертирует услугу каталога в доменную модель
func (s Service) ToDomain() domain.ServiceDetails {
	unit := domain.DurationUnitMinutes
	if s.DurationUnit == string(domain.DurationUnitHours) {
		unit = domain.DurationUnitHours
	}

	return domain.ServiceDetails{
		ID:           s.ID,
		Name:         s.Name,
		Price:        s.Price,
		Duration:     s.Duration,
		DurationUnit: unit,
	}
}

// servicesResponse ответ каталога со списком услуг
type servicesResponse struct {
	Services []Service `json:"services"`
}
