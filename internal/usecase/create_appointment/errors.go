package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrServiceNotFound возвращается, когда одна из выбранных услуг не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrInvalidDuration возвращается, когда суммарная длительность услуг не положительна
	ErrInvalidDuration = errors.New("create_appointment: invalid total duration")

	// ErrNonWorkingDay возвращается при попытке записи на нерабочий день
	// или на время вне открытых блоков дня
	ErrNonWorkingDay = errors.New("create_appointment: outside working hours")

	// ErrOutOfHorizon возвращается, когда дата в прошлом или дальше горизонта бронирования
	ErrOutOfHorizon = errors.New("create_appointment: date outside booking horizon")

	// ErrCapacityExceeded возвращается, когда все сотрудники заняты в запрошенное окно
	ErrCapacityExceeded = errors.New("create_appointment: capacity exceeded")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
