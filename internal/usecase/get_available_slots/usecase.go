package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/agendly/appointment-service/internal/domain"
	"github.com/agendly/appointment-service/internal/infra/storage/calendar"
	"github.com/agendly/appointment-service/internal/integrations/catalogservice"
	"github.com/agendly/appointment-service/pkg/types"
)

// UseCase усекейс получения доступных слотов для записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	calendarRepo    CalendarRepository
	catalogClient   CatalogServiceClient
	timeProvider    TimeProvider
	log             Logger
}

// NewUseCase создает новый экземпляр UseCase
func NewUseCase(
	appointmentRepo AppointmentRepository,
	calendarRepo CalendarRepository,
	catalogClient CatalogServiceClient,
	timeProvider TimeProvider,
	log Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		calendarRepo:    calendarRepo,
		catalogClient:   catalogClient,
		timeProvider:    timeProvider,
		log:             log,
	}
}

// Execute возвращает сетку слотов на дату с признаком доступности каждого слота.
// Слот доступен, если число пересекающихся активных записей меньше staffCount.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()

	resp := &Response{
		Date:     req.Date,
		TenantID: req.TenantID,
		Slots:    []domain.Slot{},
	}

	config, err := uc.getConfig(ctx, req.TenantID)
	if err != nil {
		// Некорректная сохранённая конфигурация не валит чтение:
		// арендатор просто не отдаёт слоты, пока конфигурацию не починят
		if errors.Is(err, domain.ErrInvalidConfig) {
			uc.log.Warn("Execute: tenant=%d has invalid calendar config, returning empty slots: %v", req.TenantID, err)
			return resp, nil
		}
		return nil, err
	}

	if !isEligibleDate(req.Date, config, now) {
		return resp, nil
	}

	blocks := config.OpenBlocksFor(req.Date)
	if len(blocks) == 0 {
		return resp, nil
	}

	durationMinutes, err := uc.resolveDuration(ctx, req.TenantID, req.ServiceIDs)
	if err != nil {
		return nil, err
	}
	resp.DurationMinutes = durationMinutes

	slotTimes := generateDaySlots(blocks, config.IntervalMinutes)
	slotTimes = filterPastSlots(slotTimes, req.Date, now)
	if len(slotTimes) == 0 {
		return resp, nil
	}

	filter := domain.TenantAppointmentsFilter{
		TenantID:  req.TenantID,
		StartDate: &req.Date,
		EndDate:   &req.Date,
	}

	appointments, err := uc.appointmentRepo.GetByTenantWithFilter(ctx, filter)
	if err != nil {
		uc.log.Error("Execute: failed to get appointments for tenant=%d date=%s: %v",
			req.TenantID, req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	resp.Slots = uc.buildSlots(slotTimes, appointments, config, durationMinutes, req.ExcludeAppointmentID)

	uc.log.Info("Execute: tenant=%d date=%s duration=%d slots=%d",
		req.TenantID, req.Date.Format(domain.DateFormat), durationMinutes, len(resp.Slots))

	return resp, nil
}

// getConfig загружает конфигурацию календаря арендатора; при отсутствии
// возвращает конфигурацию по умолчанию
func (uc *UseCase) getConfig(ctx context.Context, tenantID int64) (*domain.CalendarConfig, error) {
	config, err := uc.calendarRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, calendar.ErrConfigNotFound) {
			return domain.DefaultCalendarConfig(tenantID), nil
		}
		uc.log.Error("getConfig: failed to get calendar config for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: failed to get calendar config: %v", ErrInternal, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// resolveDuration считает суммарную длительность выбранных услуг в минутах.
// Без выбранных услуг длительность равна нулю: сетка отдаётся, но слоты
// помечаются недоступными с причиной invalid_duration.
func (uc *UseCase) resolveDuration(ctx context.Context, tenantID int64, serviceIDs []int64) (int, error) {
	if len(serviceIDs) == 0 {
		return 0, nil
	}

	services, err := uc.catalogClient.GetServices(ctx, tenantID, serviceIDs)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceNotFound) {
			return 0, fmt.Errorf("%w: one or more services not found for tenant=%d", ErrServiceNotFound, tenantID)
		}
		uc.log.Error("resolveDuration: failed to get services for tenant=%d: %v", tenantID, err)
		return 0, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	details := make([]domain.ServiceDetails, 0, len(services))
	for _, svc := range services {
		details = append(details, svc.ToDomain())
	}

	return domain.TotalDurationMinutes(details), nil
}

// buildSlots размечает сетку слотов доступностью по активным записям дня
func (uc *UseCase) buildSlots(
	slotTimes []types.TimeString,
	appointments []*domain.Appointment,
	config *domain.CalendarConfig,
	durationMinutes int,
	excludeID *int64,
) []domain.Slot {
	slots := make([]domain.Slot, 0, len(slotTimes))

	for _, start := range slotTimes {
		slot := domain.Slot{
			StartTime:       start,
			DurationMinutes: durationMinutes,
			TotalSpots:      config.StaffCount,
		}

		if durationMinutes <= 0 {
			slot.Bookable = false
			slot.Reason = domain.ReasonInvalidDuration
			slot.AvailableSpots = config.StaffCount
			slots = append(slots, slot)
			continue
		}

		overlapping := domain.CountOverlapping(appointments, start, durationMinutes, excludeID)

		available := config.StaffCount - overlapping
		if available < 0 {
			available = 0
		}

		slot.AvailableSpots = available
		slot.Bookable = overlapping < config.StaffCount
		if !slot.Bookable {
			slot.Reason = domain.ReasonCapacityExceeded
		}

		slots = append(slots, slot)
	}

	return slots
}
