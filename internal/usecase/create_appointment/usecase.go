package create_appointment

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

// UseCase усекейс создания записи на приём
type UseCase struct {
	appointmentRepo AppointmentRepository
	calendarRepo    CalendarRepository
	catalogClient   CatalogServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	log             Logger
}

// NewUseCase создает новый экземпляр UseCase
func NewUseCase(
	appointmentRepo AppointmentRepository,
	calendarRepo CalendarRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	timeProvider TimeProvider,
	log Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		calendarRepo:    calendarRepo,
		catalogClient:   catalogClient,
		txManager:       txManager,
		timeProvider:    timeProvider,
		log:             log,
	}
}

// Execute создает запись на приём. Длительность считается по выбранным услугам
// из каталога; проверка календаря и вместимости выполняется внутри
// SERIALIZABLE-транзакции, поэтому два конкурирующих запроса на последнее
// свободное место не пройдут проверку одновременно.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	services, err := uc.fetchServices(ctx, req.TenantID, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	durationMinutes := domain.TotalDurationMinutes(services)
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: total duration is %d minutes", ErrInvalidDuration, durationMinutes)
	}

	appt := &domain.Appointment{
		TenantID:        req.TenantID,
		UserID:          req.UserID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: durationMinutes,
		Status:          domain.StatusConfirmed,
		Services:        domain.SnapshotServices(services),
		TotalPrice:      domain.TotalPrice(services),
		Notes:           req.Notes,
	}

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.checkWindow(txCtx, req.TenantID, req.Date, req.StartTime, durationMinutes, nil); err != nil {
			return err
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			uc.log.Error("Execute: failed to create appointment for tenant=%d user=%d: %v",
				req.TenantID, req.UserID, err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		appt = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("Execute: created appointment id=%d tenant=%d user=%d date=%s start=%s duration=%d",
		appt.ID, appt.TenantID, appt.UserID, appt.Date.Format(domain.DateFormat), appt.StartTime, appt.DurationMinutes)

	return &Response{Appointment: appt}, nil
}

// fetchServices получает выбранные услуги из каталога
func (uc *UseCase) fetchServices(ctx context.Context, tenantID int64, serviceIDs []int64) ([]domain.ServiceDetails, error) {
	raw, err := uc.catalogClient.GetServices(ctx, tenantID, serviceIDs)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceNotFound) {
			return nil, fmt.Errorf("%w: one or more services not found for tenant=%d", ErrServiceNotFound, tenantID)
		}
		uc.log.Error("fetchServices: failed to get services for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	services := make([]domain.ServiceDetails, 0, len(raw))
	for _, svc := range raw {
		services = append(services, svc.ToDomain())
	}
	return services, nil
}

// checkWindow проверяет окно кандидата против календаря и вместимости.
// Вызывается внутри транзакции: выборка записей дня берёт FOR UPDATE.
func (uc *UseCase) checkWindow(
	ctx context.Context,
	tenantID int64,
	date time.Time,
	start types.TimeString,
	durationMinutes int,
	excludeID *int64,
) error {
	config, err := uc.getConfig(ctx, tenantID)
	if err != nil {
		return err
	}

	now := uc.timeProvider.Now()

	if isDateInPast(date, now) || isBeyondHorizon(date, now, config.MaxMonthsAhead) {
		return fmt.Errorf("%w: date %s", ErrOutOfHorizon, date.Format(domain.DateFormat))
	}

	if isSameDay(date, now) && start.IsBefore(types.NewTimeString(now)) {
		return fmt.Errorf("%w: start time %s already passed", ErrOutOfHorizon, start)
	}

	if !config.IsWorkingDay(date) {
		return fmt.Errorf("%w: %s is not a working day", ErrNonWorkingDay, date.Format(domain.DateFormat))
	}

	if !config.WindowWithinOpenBlocks(date, start, durationMinutes) {
		return fmt.Errorf("%w: window %s+%dm does not fit the day's open hours", ErrNonWorkingDay, start, durationMinutes)
	}

	filter := domain.TenantAppointmentsFilter{
		TenantID:  tenantID,
		StartDate: &date,
		EndDate:   &date,
	}

	appointments, err := uc.appointmentRepo.GetByTenantWithFilter(ctx, filter)
	if err != nil {
		uc.log.Error("checkWindow: failed to get appointments for tenant=%d date=%s: %v",
			tenantID, date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	overlapping := domain.CountOverlapping(appointments, start, durationMinutes, excludeID)
	if overlapping >= config.StaffCount {
		uc.log.Warn("checkWindow: capacity exceeded for tenant=%d date=%s start=%s: %d of %d busy",
			tenantID, date.Format(domain.DateFormat), start, overlapping, config.StaffCount)
		return fmt.Errorf("%w: %d of %d staff busy at %s", ErrCapacityExceeded, overlapping, config.StaffCount, start)
	}

	return nil
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
		// Некорректная сохранённая конфигурация блокирует запись до починки
		return nil, err
	}

	return config, nil
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
