package scheduleday

import "errors"

var (
	// ErrDayNotFound возвращается, когда день не найден
	ErrDayNotFound = errors.New("scheduleday.repository: day not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("scheduleday.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("scheduleday.repository: failed to execute query")
)
