package reschedule_session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сеанс не найден
	ErrSessionNotFound = errors.New("reschedule_session: session not found")

	// ErrSessionNotActive возвращается при попытке перенести
	// отмененный сеанс или неявку
	ErrSessionNotActive = errors.New("reschedule_session: session is not active")

	// ErrSlotConflict возвращается, когда новый диапазон слотов
	// пересекается с другим сеансом
	ErrSlotConflict = errors.New("reschedule_session: slot range conflicts with existing session")

	// ErrTypeNotFound возвращается, когда новый тип сеанса не найден
	ErrTypeNotFound = errors.New("reschedule_session: session type not found")

	// ErrTypeNotAvailable возвращается, когда новый тип закрыт для записи
	ErrTypeNotAvailable = errors.New("reschedule_session: session type is not available")

	// ErrNoWorkerAvailable возвращается, когда в новом кабинете
	// нет доступного работника
	ErrNoWorkerAvailable = errors.New("reschedule_session: no available worker in room")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_session: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_session: internal error")
)
