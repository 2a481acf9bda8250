package reschedule_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrAccessDenied возвращается при попытке перенести чужую запись
	ErrAccessDenied = errors.New("reschedule_appointment: access denied")

	// ErrNotReschedulable возвращается для отменённых и завершённых записей
	ErrNotReschedulable = errors.New("reschedule_appointment: appointment cannot be rescheduled")

	// ErrNonWorkingDay возвращается при переносе на нерабочий день
	// или на время вне открытых блоков дня
	ErrNonWorkingDay = errors.New("reschedule_appointment: outside working hours")

	// ErrOutOfHorizon возвращается, когда новая дата в прошлом или дальше горизонта
	ErrOutOfHorizon = errors.New("reschedule_appointment: date outside booking horizon")

	// ErrCapacityExceeded возвращается, когда все сотрудники заняты в новое окно
	ErrCapacityExceeded = errors.New("reschedule_appointment: capacity exceeded")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
