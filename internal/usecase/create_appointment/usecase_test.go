package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendly/appointment-service/internal/domain"
	"github.com/agendly/appointment-service/internal/integrations/catalogservice"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	created      *domain.Appointment
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	appt.ID = 101
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt
	f.created = appt
	return appt, nil
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

// fakeTxManager выполняет fn без настоящей транзакции
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
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
		StaffCount:      1,
	}
}

func validRequest() Request {
	return Request{
		UserID:     100,
		TenantID:   1,
		Date:       time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), // Wednesday
		StartTime:  "10:00",
		ServiceIDs: []int64{5},
	}
}

var testNow = time.Date(2025, 10, 13, 8, 0, 0, 0, time.UTC)

func newTestUseCase(repo *fakeAppointmentRepo, cal *fakeCalendarRepo, catalog *fakeCatalogClient, tx *fakeTxManager) *UseCase {
	return NewUseCase(repo, cal, catalog, tx, &fixedTimeProvider{now: testNow}, nopLogger{})
}

func TestExecute_CreatesAppointmentWithSnapshot(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	tx := &fakeTxManager{}
	catalog := &fakeCatalogClient{services: []catalogservice.Service{
		{ID: 5, Name: "Haircut", Price: 1500, Duration: 1, DurationUnit: "hours"},
		{ID: 6, Name: "Styling", Price: 700, Duration: 30, DurationUnit: "minutes"},
	}}

	uc := newTestUseCase(repo, &fakeCalendarRepo{config: testConfig()}, catalog, tx)

	req := validRequest()
	req.ServiceIDs = []int64{5, 6}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, tx.calls, "проверка и вставка выполняются в транзакции")
	require.NotNil(t, repo.created)

	appt := resp.Appointment
	assert.Equal(t, int64(101), appt.ID)
	assert.Equal(t, domain.StatusConfirmed, appt.Status)
	assert.Equal(t, 90, appt.DurationMinutes, "60 минут за час + 30 минут")
	assert.Equal(t, 2200.0, appt.TotalPrice)
	require.Len(t, appt.Services, 2)
	assert.Equal(t, 60, appt.Services[0].DurationMinutes)
}

func TestExecute_CapacityExceeded(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{ID: 1, StartTime: "09:30", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}}
	catalog := &fakeCatalogClient{services: []catalogservice.Service{
		{ID: 5, Duration: 60, DurationUnit: "minutes"},
	}}

	uc := newTestUseCase(repo, &fakeCalendarRepo{config: testConfig()}, catalog, &fakeTxManager{})

	// Окно 10:00-11:00 пересекается с занятым 09:30-10:30 при staffCount=1
	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Nil(t, repo.created)
}

func TestExecute_BackToBackDoesNotConflict(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{ID: 1, StartTime: "09:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}}
	catalog := &fakeCatalogClient{services: []catalogservice.Service{
		{ID: 5, Duration: 60, DurationUnit: "minutes"},
	}}

	uc := newTestUseCase(repo, &fakeCalendarRepo{config: testConfig()}, catalog, &fakeTxManager{})

	// 10:00-11:00 стык в стык с 09:00-10:00
	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotNil(t, resp.Appointment)
}

func TestExecute_WindowCrossingLunchRejected(t *testing.T) {
	catalog := &fakeCatalogClient{services: []catalogservice.Service{
		{ID: 5, Duration: 90, DurationUnit: "minutes"},
	}}

	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeCalendarRepo{config: testConfig()}, catalog, &fakeTxManager{})

	req := validRequest()
	req.StartTime = "12:00" // 12:00-13:30 пересекает обед 13:00-14:00

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrNonWorkingDay)
}

func TestExecute_NonWorkingDayRejected(t *testing.T) {
	catalog := &fakeCatalogClient{services: []catalogservice.Service{
		{ID: 5, Duration: 30, DurationUnit: "minutes"},
	}}

	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeCalendarRepo{config: testConfig()}, catalog, &fakeTxManager{})

	req := validRequest()
	req.Date = time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC) // Sunday

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrNonWorkingDay)
}

func TestExecute_OutOfHorizonRejected(t *testing.T) {
	catalog := &fakeCatalogClient{services: []catalogservice.Service{
		{ID: 5, Duration: 30, DurationUnit: "minutes"},
	}}

	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeCalendarRepo{config: testConfig()}, catalog, &fakeTxManager{})

	t.Run("past date", func(t *testing.T) {
		req := validRequest()
		req.Date = time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)
		_, err := uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrOutOfHorizon)
	})

	t.Run("beyond horizon", func(t *testing.T) {
		req := validRequest()
		req.Date = time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
		_, err := uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrOutOfHorizon)
	})

	t.Run("passed time today", func(t *testing.T) {
		req := validRequest()
		req.Date = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
		req.StartTime = "07:00" // testNow = 08:00
		_, err := uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrOutOfHorizon)
	})
}

func TestExecute_ZeroDurationRejected(t *testing.T) {
	catalog := &fakeCatalogClient{services: []catalogservice.Service{
		{ID: 5, Duration: 0, DurationUnit: "minutes"},
	}}

	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeCalendarRepo{config: testConfig()}, catalog, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrInvalidDuration)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	catalog := &fakeCatalogClient{err: catalogservice.ErrServiceNotFound}

	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeCalendarRepo{config: testConfig()}, catalog, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeCalendarRepo{config: testConfig()}, &fakeCatalogClient{}, &fakeTxManager{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "missing user", mutate: func(r *Request) { r.UserID = 0 }},
		{name: "missing tenant", mutate: func(r *Request) { r.TenantID = 0 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "bad start time", mutate: func(r *Request) { r.StartTime = "9am" }},
		{name: "no services", mutate: func(r *Request) { r.ServiceIDs = nil }},
		{name: "negative service id", mutate: func(r *Request) { r.ServiceIDs = []int64{-1} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			_, err := uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
