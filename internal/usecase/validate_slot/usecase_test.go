package validate_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendly/appointment-service/internal/domain"
	"github.com/agendly/appointment-service/internal/integrations/catalogservice"
	"github.com/agendly/appointment-service/pkg/ptr"
	"github.com/agendly/appointment-service/pkg/types"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByTenantWithFilter(_ context.Context, _ domain.TenantAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, nil
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
		EndHour:         18,
		IntervalMinutes: 30,
		LunchStart:      13,
		LunchEnd:        14,
		MaxMonthsAhead:  3,
		WorkingDays:     []int{1, 2, 3, 4, 5},
		StaffCount:      2,
	}
}

var (
	testNow  = time.Date(2025, 10, 13, 8, 0, 0, 0, time.UTC) // Monday
	testDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC) // Wednesday
)

func newTestUseCase(appts *fakeAppointmentRepo, cal *fakeCalendarRepo, catalog *fakeCatalogClient) *UseCase {
	return NewUseCase(appts, cal, catalog, &fixedTimeProvider{now: testNow}, nopLogger{})
}

func oneHourService() *fakeCatalogClient {
	return &fakeCatalogClient{services: []catalogservice.Service{
		{ID: 5, Duration: 60, DurationUnit: "minutes"},
	}}
}

func TestExecute_Bookable(t *testing.T) {
	appts := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{ID: 1, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}}

	uc := newTestUseCase(appts, &fakeCalendarRepo{config: testConfig()}, oneHourService())

	resp, err := uc.Execute(context.Background(), Request{
		TenantID:   1,
		Date:       testDate,
		StartTime:  "10:30",
		ServiceIDs: []int64{5},
	})
	require.NoError(t, err)

	assert.True(t, resp.Bookable)
	assert.Empty(t, resp.Reason)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, 1, resp.AvailableSpots, "один из двух сотрудников занят")
	assert.Equal(t, 2, resp.TotalSpots)
}

func TestExecute_CapacityExceeded(t *testing.T) {
	appts := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{ID: 1, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
		{ID: 2, StartTime: "10:30", DurationMinutes: 60, Status: domain.StatusPending},
	}}

	uc := newTestUseCase(appts, &fakeCalendarRepo{config: testConfig()}, oneHourService())

	resp, err := uc.Execute(context.Background(), Request{
		TenantID:   1,
		Date:       testDate,
		StartTime:  "10:30",
		ServiceIDs: []int64{5},
	})
	require.NoError(t, err)

	assert.False(t, resp.Bookable)
	assert.Equal(t, domain.ReasonCapacityExceeded, resp.Reason)
	assert.Equal(t, 0, resp.AvailableSpots)
}

func TestExecute_ExcludedAppointmentDoesNotCount(t *testing.T) {
	appts := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{ID: 42, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
		{ID: 43, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}}

	uc := newTestUseCase(appts, &fakeCalendarRepo{config: testConfig()}, oneHourService())

	resp, err := uc.Execute(context.Background(), Request{
		TenantID:             1,
		Date:                 testDate,
		StartTime:            "10:00",
		ServiceIDs:           []int64{5},
		ExcludeAppointmentID: ptr.Ptr(int64(42)),
	})
	require.NoError(t, err)

	assert.True(t, resp.Bookable, "перенос в собственное окно не конфликтует сам с собой")
	assert.Equal(t, 1, resp.AvailableSpots)
}

func TestExecute_InvalidDuration(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeCalendarRepo{config: testConfig()}, &fakeCatalogClient{})

	resp, err := uc.Execute(context.Background(), Request{
		TenantID:  1,
		Date:      testDate,
		StartTime: "10:00",
	})
	require.NoError(t, err)

	assert.False(t, resp.Bookable)
	assert.Equal(t, domain.ReasonInvalidDuration, resp.Reason)
	assert.Equal(t, 0, resp.DurationMinutes)
}

func TestExecute_OutOfHorizon(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeCalendarRepo{config: testConfig()}, oneHourService())

	tests := []struct {
		name      string
		date      time.Time
		startTime string
	}{
		{name: "past date", date: time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC), startTime: "10:00"},
		{name: "beyond horizon", date: time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC), startTime: "10:00"},
		{name: "passed time today", date: testNow, startTime: "07:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.Execute(context.Background(), Request{
				TenantID:   1,
				Date:       tt.date,
				StartTime:  types.TimeString(tt.startTime),
				ServiceIDs: []int64{5},
			})
			require.NoError(t, err)
			assert.False(t, resp.Bookable)
			assert.Equal(t, domain.ReasonOutOfHorizon, resp.Reason)
		})
	}
}

func TestExecute_NonWorkingDay(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeCalendarRepo{config: testConfig()}, oneHourService())

	tests := []struct {
		name      string
		date      time.Time
		startTime string
	}{
		{name: "sunday", date: time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC), startTime: "10:00"},
		{name: "window crosses lunch", date: testDate, startTime: "12:30"},
		{name: "window past closing", date: testDate, startTime: "17:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.Execute(context.Background(), Request{
				TenantID:   1,
				Date:       tt.date,
				StartTime:  types.TimeString(tt.startTime),
				ServiceIDs: []int64{5},
			})
			require.NoError(t, err)
			assert.False(t, resp.Bookable)
			assert.Equal(t, domain.ReasonNonWorkingDay, resp.Reason)
		})
	}
}

func TestExecute_InvalidStoredConfig(t *testing.T) {
	broken := testConfig()
	broken.StaffCount = 0

	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeCalendarRepo{config: broken}, oneHourService())

	resp, err := uc.Execute(context.Background(), Request{
		TenantID:   1,
		Date:       testDate,
		StartTime:  "10:00",
		ServiceIDs: []int64{5},
	})
	require.NoError(t, err)

	assert.False(t, resp.Bookable)
	assert.Equal(t, domain.ReasonNonWorkingDay, resp.Reason)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	catalog := &fakeCatalogClient{err: catalogservice.ErrServiceNotFound}

	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeCalendarRepo{config: testConfig()}, catalog)

	_, err := uc.Execute(context.Background(), Request{
		TenantID:   1,
		Date:       testDate,
		StartTime:  "10:00",
		ServiceIDs: []int64{99},
	})
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeCalendarRepo{config: testConfig()}, &fakeCatalogClient{})

	_, err := uc.Execute(context.Background(), Request{TenantID: 0, Date: testDate, StartTime: "10:00"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), Request{TenantID: 1, Date: testDate, StartTime: "10:70"})
	require.ErrorIs(t, err, ErrInvalidInput)
}
