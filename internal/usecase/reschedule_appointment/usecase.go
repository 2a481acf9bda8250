package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agendly/appointment-service/internal/domain"
	"github.com/agendly/appointment-service/internal/infra/storage/appointment"
	"github.com/agendly/appointment-service/internal/infra/storage/calendar"
	"github.com/agendly/appointment-service/pkg/types"
)

// UseCase усекейс переноса записи на новую дату и время
type UseCase struct {
	appointmentRepo AppointmentRepository
	calendarRepo    CalendarRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	log             Logger
}

// NewUseCase создает новый экземпляр UseCase
func NewUseCase(
	appointmentRepo AppointmentRepository,
	calendarRepo CalendarRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	log Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		calendarRepo:    calendarRepo,
		txManager:       txManager,
		timeProvider:    timeProvider,
		log:             log,
	}
}

// Execute переносит запись на новое окно. Длительность записи не
// пересчитывается: сохранённый при создании снимок длительности остаётся
// в силе. Сама запись исключается из подсчёта пересечений, поэтому перенос
// внутри собственного окна не конфликтует сам с собой.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	appt, err := uc.getAppointment(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}

	if !req.IsAdmin && appt.UserID != req.UserID {
		return nil, fmt.Errorf("%w: appointment %d belongs to another user", ErrAccessDenied, req.AppointmentID)
	}

	if !appt.CanBeRescheduled() {
		return nil, fmt.Errorf("%w: status is %s", ErrNotReschedulable, appt.Status)
	}

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		excludeID := appt.ID
		if err := uc.checkWindow(txCtx, appt.TenantID, req.Date, req.StartTime, appt.DurationMinutes, &excludeID); err != nil {
			return err
		}

		appt.Date = req.Date
		appt.StartTime = req.StartTime

		if err := uc.appointmentRepo.UpdateSchedule(txCtx, appt.ID, appt); err != nil {
			if errors.Is(err, appointment.ErrAppointmentNotFound) {
				return fmt.Errorf("%w: id=%d", ErrAppointmentNotFound, appt.ID)
			}
			uc.log.Error("Execute: failed to update schedule for appointment=%d: %v", appt.ID, err)
			return fmt.Errorf("%w: failed to update schedule: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("Execute: rescheduled appointment id=%d tenant=%d to date=%s start=%s",
		appt.ID, appt.TenantID, appt.Date.Format(domain.DateFormat), appt.StartTime)

	return &Response{Appointment: appt}, nil
}

func (uc *UseCase) getAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, err := uc.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointment.ErrAppointmentNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrAppointmentNotFound, id)
		}
		uc.log.Error("getAppointment: failed to get appointment=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}
	return appt, nil
}

// checkWindow проверяет новое окно против календаря и вместимости.
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
