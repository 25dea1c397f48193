package create_session

import "errors"

var (
	// ErrTypeNotFound возвращается, когда тип сеанса не найден
	ErrTypeNotFound = errors.New("create_session: session type not found")

	// ErrTypeNotAvailable возвращается, когда тип сеанса закрыт для записи
	ErrTypeNotAvailable = errors.New("create_session: session type is not available")

	// ErrPatientNotFound возвращается, когда пациент не найден
	ErrPatientNotFound = errors.New("create_session: patient not found")

	// ErrNoWorkerAvailable возвращается, когда в кабинете нет доступного работника
	ErrNoWorkerAvailable = errors.New("create_session: no available worker in room")

	// ErrSlotConflict возвращается, когда запрошенный диапазон слотов
	// пересекается с существующим сеансом
	ErrSlotConflict = errors.New("create_session: slot range conflicts with existing session")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_session: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_session: internal error")
)
