package update_session_status

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сеанс не найден
	ErrSessionNotFound = errors.New("update_session_status: session not found")

	// ErrSlotConflict возвращается, когда возврат сеанса в активный
	// статус невозможен - его диапазон уже занят другим сеансом.
	// Статус при этом не меняется.
	ErrSlotConflict = errors.New("update_session_status: slot range conflicts with existing session")

	// ErrInvalidStatus возвращается при неизвестном целевом статусе
	ErrInvalidStatus = errors.New("update_session_status: invalid status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_session_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_session_status: internal error")
)
