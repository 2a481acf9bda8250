package appointments

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointments: invalid input data")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrAccessDenied возвращается при попытке доступа к чужой записи
	ErrAccessDenied = errors.New("appointments: access denied")

	// ErrNotCancellable возвращается для уже отменённых и завершённых записей
	ErrNotCancellable = errors.New("appointments: appointment cannot be cancelled")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = errors.New("appointments: invalid status transition")

	// ErrCapacityExceeded возвращается, когда реактивация отменённой записи
	// не проходит повторную проверку вместимости
	ErrCapacityExceeded = errors.New("appointments: capacity exceeded")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
