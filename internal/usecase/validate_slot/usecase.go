package validate_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agendly/appointment-service/internal/domain"
	"github.com/agendly/appointment-service/internal/infra/storage/calendar"
	"github.com/agendly/appointment-service/internal/integrations/catalogservice"
	"github.com/agendly/appointment-service/pkg/types"
)

// UseCase усекейс проверки одного окна кандидата перед бронированием.
// Проверка консультативная: результат не резервирует место, создание записи
// повторяет проверку внутри транзакции.
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

// Execute проверяет окно кандидата и возвращает bookable с причиной отказа.
// Ошибки бизнес-правил (нерабочий день, вне горизонта, нет мест) выражаются
// через Response.Reason, а не через error: error остаётся для сбоев.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()

	config, err := uc.getConfig(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidConfig) {
			uc.log.Warn("Execute: tenant=%d has invalid calendar config: %v", req.TenantID, err)
			return &Response{Bookable: false, Reason: domain.ReasonNonWorkingDay}, nil
		}
		return nil, err
	}

	durationMinutes, err := uc.resolveDuration(ctx, req.TenantID, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		DurationMinutes: durationMinutes,
		TotalSpots:      config.StaffCount,
	}

	if durationMinutes <= 0 {
		resp.Reason = domain.ReasonInvalidDuration
		return resp, nil
	}

	if isDateInPast(req.Date, now) || isBeyondHorizon(req.Date, now, config.MaxMonthsAhead) {
		resp.Reason = domain.ReasonOutOfHorizon
		return resp, nil
	}

	if isSameDay(req.Date, now) && req.StartTime.IsBefore(types.NewTimeString(now)) {
		resp.Reason = domain.ReasonOutOfHorizon
		return resp, nil
	}

	if !config.IsWorkingDay(req.Date) || !config.WindowWithinOpenBlocks(req.Date, req.StartTime, durationMinutes) {
		resp.Reason = domain.ReasonNonWorkingDay
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

	overlapping := domain.CountOverlapping(appointments, req.StartTime, durationMinutes, req.ExcludeAppointmentID)

	available := config.StaffCount - overlapping
	if available < 0 {
		available = 0
	}
	resp.AvailableSpots = available

	if overlapping >= config.StaffCount {
		resp.Reason = domain.ReasonCapacityExceeded
		return resp, nil
	}

	resp.Bookable = true
	return resp, nil
}

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

func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

func isBeyondHorizon(date, now time.Time, maxMonthsAhead int) bool {
	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, maxMonthsAhead, 0)
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return dateOnly.After(maxDate)
}
