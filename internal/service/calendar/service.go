package calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/agendly/appointment-service/internal/domain"
	calendarstore "github.com/agendly/appointment-service/internal/infra/storage/calendar"
)

// Service сервис управления конфигурацией календаря арендатора
type Service struct {
	calendarRepo CalendarRepository
	log          Logger
}

// NewService создает новый экземпляр сервиса календаря
func NewService(calendarRepo CalendarRepository, log Logger) *Service {
	return &Service{
		calendarRepo: calendarRepo,
		log:          log,
	}
}

// GetConfig возвращает конфигурацию календаря арендатора. Пока администратор
// её не настроил, отдаётся конфигурация по умолчанию.
func (s *Service) GetConfig(ctx context.Context, tenantID int64) (*domain.CalendarConfig, error) {
	if tenantID <= 0 {
		return nil, fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	config, err := s.calendarRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, calendarstore.ErrConfigNotFound) {
			return domain.DefaultCalendarConfig(tenantID), nil
		}
		s.log.Error("GetConfig: failed to get calendar config for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: failed to get calendar config: %v", ErrInternal, err)
	}

	return config, nil
}

// UpdateConfig валидирует и сохраняет конфигурацию календаря.
// Некорректная конфигурация отклоняется целиком, без частичного применения.
func (s *Service) UpdateConfig(ctx context.Context, config *domain.CalendarConfig) (*domain.CalendarConfig, error) {
	if config == nil || config.TenantID <= 0 {
		return nil, fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.calendarRepo.Save(ctx, config)
	if err != nil {
		s.log.Error("UpdateConfig: failed to save calendar config for tenant=%d: %v", config.TenantID, err)
		return nil, fmt.Errorf("%w: failed to save calendar config: %v", ErrInternal, err)
	}

	s.log.Info("UpdateConfig: saved calendar config for tenant=%d interval=%d staff=%d",
		saved.TenantID, saved.IntervalMinutes, saved.StaffCount)

	return saved, nil
}
