package sessiontype

import "errors"

var (
	// ErrTypeNotFound возвращается, когда тип сеанса не найден
	ErrTypeNotFound = errors.New("sessiontype.repository: session type not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("sessiontype.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("sessiontype.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("sessiontype.repository: failed to scan row")
)
