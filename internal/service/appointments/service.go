package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agendly/appointment-service/internal/domain"
	"github.com/agendly/appointment-service/internal/infra/storage/appointment"
	"github.com/agendly/appointment-service/internal/infra/storage/calendar"
)

// Service сервис управления жизненным циклом записей: просмотр, отмена,
// смена статуса. Создание и перенос живут в отдельных усекейсах.
type Service struct {
	appointmentRepo AppointmentRepository
	calendarRepo    CalendarRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	log             Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	calendarRepo CalendarRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	log Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		calendarRepo:    calendarRepo,
		txManager:       txManager,
		timeProvider:    timeProvider,
		log:             log,
	}
}

// GetByID возвращает запись по ID. Пользователь видит только свои записи,
// администратор — любые.
func (s *Service) GetByID(ctx context.Context, id, requesterID int64, isAdmin bool) (*domain.Appointment, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && appt.UserID != requesterID {
		return nil, fmt.Errorf("%w: appointment %d belongs to another user", ErrAccessDenied, id)
	}

	return appt, nil
}

// GetUserAppointments возвращает записи пользователя, опционально по статусу
func (s *Service) GetUserAppointments(ctx context.Context, userID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if status != nil && !validStatus(*status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *status)
	}

	appts, err := s.appointmentRepo.GetByUserID(ctx, userID, status)
	if err != nil {
		s.log.Error("GetUserAppointments: failed to get appointments for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	return appts, nil
}

// GetTenantAppointments возвращает записи арендатора с фильтрацией по датам и статусу
func (s *Service) GetTenantAppointments(ctx context.Context, filter domain.TenantAppointmentsFilter) ([]*domain.Appointment, error) {
	if filter.TenantID <= 0 {
		return nil, fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	if filter.Status != nil && !validStatus(*filter.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *filter.Status)
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	appts, err := s.appointmentRepo.GetByTenantWithFilter(ctx, filter)
	if err != nil {
		s.log.Error("GetTenantAppointments: failed to get appointments for tenant=%d: %v", filter.TenantID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	return appts, nil
}

// Cancel отменяет запись с указанием причины. Пользователь отменяет только
// свои записи, администратор — любые.
func (s *Service) Cancel(ctx context.Context, id, requesterID int64, isAdmin bool, reason string) (*domain.Appointment, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && appt.UserID != requesterID {
		return nil, fmt.Errorf("%w: appointment %d belongs to another user", ErrAccessDenied, id)
	}

	if !appt.CanBeCancelled() {
		return nil, fmt.Errorf("%w: status is %s", ErrNotCancellable, appt.Status)
	}

	if err := s.appointmentRepo.Cancel(ctx, id, reason); err != nil {
		if errors.Is(err, appointment.ErrAppointmentNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrAppointmentNotFound, id)
		}
		s.log.Error("Cancel: failed to cancel appointment=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to cancel appointment: %v", ErrInternal, err)
	}

	s.log.Info("Cancel: cancelled appointment id=%d user=%d reason=%q", id, requesterID, reason)

	return s.getAppointment(ctx, id)
}

// UpdateStatus переводит запись в новый статус по правилам машины состояний.
// Смена статуса доступна только администратору. Реактивация отменённой записи
// (cancelled -> pending|confirmed) возвращает запись в пул занятых мест,
// поэтому повторно проверяет вместимость в транзакции.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) (*domain.Appointment, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	if !validStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(appt.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, status)
	}

	reactivation := appt.Status == domain.StatusCancelled &&
		(status == domain.StatusPending || status == domain.StatusConfirmed)

	if reactivation {
		err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			if err := s.checkCapacity(txCtx, appt); err != nil {
				return err
			}
			return s.updateStatus(txCtx, id, status)
		})
	} else {
		err = s.updateStatus(ctx, id, status)
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("UpdateStatus: appointment id=%d %s -> %s", id, appt.Status, status)

	return s.getAppointment(ctx, id)
}

// checkCapacity проверяет, что окно записи снова помещается в пул сотрудников.
// Сама запись в подсчёт не попадает: отменённая не занимает вместимость,
// и на всякий случай её ID исключается явно.
func (s *Service) checkCapacity(ctx context.Context, appt *domain.Appointment) error {
	now := s.timeProvider.Now()
	if isDateInPast(appt.Date, now) {
		return fmt.Errorf("%w: cannot reactivate an appointment in the past", ErrInvalidTransition)
	}

	config, err := s.getConfig(ctx, appt.TenantID)
	if err != nil {
		return err
	}

	filter := domain.TenantAppointmentsFilter{
		TenantID:  appt.TenantID,
		StartDate: &appt.Date,
		EndDate:   &appt.Date,
	}

	appointments, err := s.appointmentRepo.GetByTenantWithFilter(ctx, filter)
	if err != nil {
		s.log.Error("checkCapacity: failed to get appointments for tenant=%d: %v", appt.TenantID, err)
		return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	excludeID := appt.ID
	overlapping := domain.CountOverlapping(appointments, appt.StartTime, appt.DurationMinutes, &excludeID)
	if overlapping >= config.StaffCount {
		s.log.Warn("checkCapacity: cannot reactivate appointment=%d: %d of %d staff busy at %s",
			appt.ID, overlapping, config.StaffCount, appt.StartTime)
		return fmt.Errorf("%w: %d of %d staff busy at %s", ErrCapacityExceeded, overlapping, config.StaffCount, appt.StartTime)
	}

	return nil
}

func (s *Service) updateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	if err := s.appointmentRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, appointment.ErrAppointmentNotFound) {
			return fmt.Errorf("%w: id=%d", ErrAppointmentNotFound, id)
		}
		s.log.Error("updateStatus: failed to update appointment=%d: %v", id, err)
		return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) getAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointment.ErrAppointmentNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrAppointmentNotFound, id)
		}
		s.log.Error("getAppointment: failed to get appointment=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}
	return appt, nil
}

func (s *Service) getConfig(ctx context.Context, tenantID int64) (*domain.CalendarConfig, error) {
	config, err := s.calendarRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, calendar.ErrConfigNotFound) {
			return domain.DefaultCalendarConfig(tenantID), nil
		}
		s.log.Error("getConfig: failed to get calendar config for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: failed to get calendar config: %v", ErrInternal, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

func validStatus(status domain.AppointmentStatus) bool {
	switch status {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled, domain.StatusCompleted:
		return true
	default:
		return false
	}
}
