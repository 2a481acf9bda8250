package calendar

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/agendly/appointment-service/internal/domain"
	"github.com/agendly/appointment-service/pkg/dbmetrics"
	"github.com/agendly/appointment-service/pkg/psqlbuilder"
)

// Repository репозиторий конфигурации календаря (одна конфигурация на арендатора)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации календаря
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByTenant получает конфигурацию календаря арендатора
func (r *Repository) GetByTenant(ctx context.Context, tenantID int64) (*domain.CalendarConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"start_hour",
		"end_hour",
		"interval_minutes",
		"lunch_start",
		"lunch_end",
		"max_months_ahead",
		"working_days",
		"staff_count",
		"day_blocks",
		"created_at",
		"updated_at",
	).
		From("calendar_configs").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenant - build select query: %v", ErrBuildQuery, err)
	}

	var config domain.CalendarConfig
	var workingDays jsonWorkingDays
	var dayBlocks jsonDayBlocks
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&config.TenantID,
		&config.StartHour,
		&config.EndHour,
		&config.IntervalMinutes,
		&config.LunchStart,
		&config.LunchEnd,
		&config.MaxMonthsAhead,
		&workingDays,
		&config.StaffCount,
		&dayBlocks,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenant - scan config: %v", ErrScanRow, err)
	}

	config.WorkingDays = workingDays
	config.DayBlocks = dayBlocks
	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}

// Save сохраняет конфигурацию арендатора. Конфигурация никогда не удаляется,
// только перезаписывается (upsert по tenant_id).
func (r *Repository) Save(ctx context.Context, config *domain.CalendarConfig) (*domain.CalendarConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("calendar_configs").
		Columns(
			"tenant_id",
			"start_hour",
			"end_hour",
			"interval_minutes",
			"lunch_start",
			"lunch_end",
			"max_months_ahead",
			"working_days",
			"staff_count",
			"day_blocks",
		).
		Values(
			config.TenantID,
			config.StartHour,
			config.EndHour,
			config.IntervalMinutes,
			config.LunchStart,
			config.LunchEnd,
			config.MaxMonthsAhead,
			jsonWorkingDays(config.WorkingDays),
			config.StaffCount,
			jsonDayBlocks(config.DayBlocks),
		).
		Suffix(`ON CONFLICT (tenant_id) DO UPDATE SET
			start_hour = EXCLUDED.start_hour,
			end_hour = EXCLUDED.end_hour,
			interval_minutes = EXCLUDED.interval_minutes,
			lunch_start = EXCLUDED.lunch_start,
			lunch_end = EXCLUDED.lunch_end,
			max_months_ahead = EXCLUDED.max_months_ahead,
			working_days = EXCLUDED.working_days,
			staff_count = EXCLUDED.staff_count,
			day_blocks = EXCLUDED.day_blocks,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// jsonWorkingDays хранит ординалы рабочих дней как JSONB массив
type jsonWorkingDays []int

func (w jsonWorkingDays) Value() (driver.Value, error) {
	if w == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]int(w))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (w *jsonWorkingDays) Scan(src interface{}) error {
	data, err := jsonBytes(src)
	if err != nil {
		return err
	}
	if data == nil {
		*w = jsonWorkingDays{}
		return nil
	}
	return json.Unmarshal(data, (*[]int)(w))
}

// jsonDayBlocks хранит переопределения блоков по дням недели как JSONB объект.
// NULL в колонке означает отсутствие переопределений.
type jsonDayBlocks map[string][]domain.TimeBlock

func (d jsonDayBlocks) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	data, err := json.Marshal(map[string][]domain.TimeBlock(d))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (d *jsonDayBlocks) Scan(src interface{}) error {
	data, err := jsonBytes(src)
	if err != nil {
		return err
	}
	if data == nil {
		*d = nil
		return nil
	}
	return json.Unmarshal(data, (*map[string][]domain.TimeBlock)(d))
}

func jsonBytes(src interface{}) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New("unsupported JSONB source type")
	}
}
