package domain

import "errors"

// Default calendar configuration values
const (
	DefaultStartHour       = 9.0
	DefaultEndHour         = 18.0
	DefaultIntervalMinutes = 30
	DefaultMaxMonthsAhead  = 3
	DefaultStaffCount      = 1
)

// Business validation constants
const (
	MinIntervalMinutes  = 5
	MaxIntervalMinutes  = 480 // 8 hours
	MinStaffCount       = 1
	MaxStaffCount       = 100
	MinMonthsAhead      = 1
	MaxMonthsAheadLimit = 24
	MaxNotesLength      = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ErrInvalidConfig возвращается при некорректной конфигурации календаря.
// Блокирует сохранение конфигурации; запросы слотов против некорректной
// конфигурации деградируют до пустого списка.
var ErrInvalidConfig = errors.New("domain: invalid calendar configuration")

// OccupyingStatuses статусы, занимающие вместимость персонала
var OccupyingStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы, не занимающие вместимость персонала
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusCompleted,
}
