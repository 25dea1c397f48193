package delete_session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сеанс не найден
	ErrSessionNotFound = errors.New("delete_session: session not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("delete_session: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("delete_session: internal error")
)
