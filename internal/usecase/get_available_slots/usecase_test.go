package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendly/appointment-service/internal/domain"
	"github.com/agendly/appointment-service/internal/infra/storage/calendar"
	"github.com/agendly/appointment-service/internal/integrations/catalogservice"
	"github.com/agendly/appointment-service/pkg/ptr"
	"github.com/agendly/appointment-service/pkg/types"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (f *fakeAppointmentRepo) GetByTenantWithFilter(_ context.Context, _ domain.TenantAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, f.err
}

type fakeCalendarRepo struct {
	config *domain.CalendarConfig
	err    error
}

func (f *fakeCalendarRepo) GetByTenant(_ context.Context, _ int64) (*domain.CalendarConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.config, nil
}

type fakeCatalogClient struct {
	services []catalogservice.Service
	err      error
}

func (f *fakeCatalogClient) GetServices(_ context.Context, _ int64, _ []int64) ([]catalogservice.Service, error) {
	return f.services, f.err
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testConfig() *domain.CalendarConfig {
	return &domain.CalendarConfig{
		TenantID:        1,
		StartHour:       9,
		EndHour:         13,
		IntervalMinutes: 30,
		MaxMonthsAhead:  3,
		WorkingDays:     []int{1, 2, 3, 4, 5},
		StaffCount:      2,
	}
}

func newTestUseCase(appts *fakeAppointmentRepo, cal *fakeCalendarRepo, catalog *fakeCatalogClient, now time.Time) *UseCase {
	return NewUseCase(appts, cal, catalog, &fixedTimeProvider{now: now}, nopLogger{})
}

func TestExecute_MarksFullSlotsUnavailable(t *testing.T) {
	now := time.Date(2025, 10, 13, 8, 0, 0, 0, time.UTC) // Monday
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	// 10:00-11:00 заняты оба сотрудника
	appts := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{ID: 1, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
		{ID: 2, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusPending},
	}}
	catalog := &fakeCatalogClient{services: []catalogservice.Service{
		{ID: 5, Name: "Consultation", Price: 1000, Duration: 30, DurationUnit: "minutes"},
	}}

	uc := newTestUseCase(appts, &fakeCalendarRepo{config: testConfig()}, catalog, now)

	resp, err := uc.Execute(context.Background(), Request{
		TenantID:   1,
		Date:       date,
		ServiceIDs: []int64{5},
	})
	require.NoError(t, err)
	require.Equal(t, 30, resp.DurationMinutes)

	// Сетка 09:00..12:30 с шагом 30
	require.Len(t, resp.Slots, 8)

	bySlot := make(map[types.TimeString]domain.Slot)
	for _, slot := range resp.Slots {
		bySlot[slot.StartTime] = slot
	}

	assert.True(t, bySlot["09:00"].Bookable)
	assert.Equal(t, 2, bySlot["09:00"].AvailableSpots)

	// Слот 09:30-10:00 стыкуется с занятым окном, но не пересекается
	assert.True(t, bySlot["09:30"].Bookable)

	assert.False(t, bySlot["10:00"].Bookable)
	assert.Equal(t, domain.ReasonCapacityExceeded, bySlot["10:00"].Reason)
	assert.Equal(t, 0, bySlot["10:00"].AvailableSpots)

	assert.False(t, bySlot["10:30"].Bookable)

	assert.True(t, bySlot["11:00"].Bookable)
}

func TestExecute_ExcludeAppointmentFreesItsOwnSlot(t *testing.T) {
	now := time.Date(2025, 10, 13, 8, 0, 0, 0, time.UTC)
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	config := testConfig()
	config.StaffCount = 1

	appts := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{ID: 42, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}}
	catalog := &fakeCatalogClient{services: []catalogservice.Service{
		{ID: 5, Duration: 60, DurationUnit: "minutes"},
	}}

	uc := newTestUseCase(appts, &fakeCalendarRepo{config: config}, catalog, now)

	resp, err := uc.Execute(context.Background(), Request{
		TenantID:             1,
		Date:                 date,
		ServiceIDs:           []int64{5},
		ExcludeAppointmentID: ptr.Ptr(int64(42)),
	})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		assert.True(t, slot.Bookable, "слот %s должен быть свободен при исключении собственной записи", slot.StartTime)
	}
}

func TestExecute_HorizonAndWorkingDays(t *testing.T) {
	now := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC) // Monday

	config := testConfig()
	config.MaxMonthsAhead = 1

	catalog := &fakeCatalogClient{services: []catalogservice.Service{
		{ID: 5, Duration: 30, DurationUnit: "minutes"},
	}}

	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeCalendarRepo{config: config}, catalog, now)

	tests := []struct {
		name      string
		date      time.Time
		wantSlots bool
	}{
		{name: "past date", date: time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC), wantSlots: false},
		{name: "beyond one month horizon", date: time.Date(2024, 2, 16, 0, 0, 0, 0, time.UTC), wantSlots: false},
		{name: "inside horizon", date: time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC), wantSlots: true},
		{name: "sunday is not a working day", date: time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC), wantSlots: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.Execute(context.Background(), Request{TenantID: 1, Date: tt.date, ServiceIDs: []int64{5}})
			require.NoError(t, err)
			if tt.wantSlots {
				assert.NotEmpty(t, resp.Slots)
			} else {
				assert.Empty(t, resp.Slots)
			}
		})
	}
}

func TestExecute_NoServicesYieldsInvalidDurationSlots(t *testing.T) {
	now := time.Date(2025, 10, 13, 8, 0, 0, 0, time.UTC)
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeCalendarRepo{config: testConfig()}, &fakeCatalogClient{}, now)

	resp, err := uc.Execute(context.Background(), Request{TenantID: 1, Date: date})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, 0, resp.DurationMinutes)

	for _, slot := range resp.Slots {
		assert.False(t, slot.Bookable)
		assert.Equal(t, domain.ReasonInvalidDuration, slot.Reason)
	}
}

func TestExecute_MissingConfigFallsBackToDefault(t *testing.T) {
	now := time.Date(2025, 10, 13, 8, 0, 0, 0, time.UTC)
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	catalog := &fakeCatalogClient{services: []catalogservice.Service{
		{ID: 5, Duration: 30, DurationUnit: "minutes"},
	}}

	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeCalendarRepo{err: calendar.ErrConfigNotFound}, catalog, now)

	resp, err := uc.Execute(context.Background(), Request{TenantID: 1, Date: date, ServiceIDs: []int64{5}})
	require.NoError(t, err)

	// Конфигурация по умолчанию: 09:00-18:00 с шагом 30 минут
	require.Len(t, resp.Slots, 18)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
}

func TestExecute_InvalidStoredConfigDegradesToEmpty(t *testing.T) {
	now := time.Date(2025, 10, 13, 8, 0, 0, 0, time.UTC)
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	broken := testConfig()
	broken.IntervalMinutes = 0

	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeCalendarRepo{config: broken}, &fakeCatalogClient{}, now)

	resp, err := uc.Execute(context.Background(), Request{TenantID: 1, Date: date})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	now := time.Date(2025, 10, 13, 8, 0, 0, 0, time.UTC)
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	catalog := &fakeCatalogClient{err: catalogservice.ErrServiceNotFound}

	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeCalendarRepo{config: testConfig()}, catalog, now)

	_, err := uc.Execute(context.Background(), Request{TenantID: 1, Date: date, ServiceIDs: []int64{99}})
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeCalendarRepo{config: testConfig()}, &fakeCatalogClient{}, time.Now())

	_, err := uc.Execute(context.Background(), Request{TenantID: 0, Date: time.Now()})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), Request{TenantID: 1})
	require.ErrorIs(t, err, ErrInvalidInput)
}
