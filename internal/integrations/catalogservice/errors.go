package catalogservice

import "errors"

var (
	// ErrServiceNotFound возвращается, когда одна из запрошенных услуг не найдена в каталоге
	ErrServiceNotFound = errors.New("catalogservice: service not found")

	// ErrInvalidResponse возвращается при некорректном ответе каталога
	ErrInvalidResponse = errors.New("catalogservice: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice: internal error")
)
