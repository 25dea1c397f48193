package reschedule_session

import "time"

// Request модель запроса на перенос сеанса
type Request struct {
	SessionID int64     // Переносимый сеанс
	Date      time.Time // Новая дата
	Room      int       // Новый кабинет
	Slot      int       // Новый первый слот диапазона
	TypeID    int64     // Новый тип: задает длину диапазона
}

// Response модель ответа с перенесенным сеансом
type Response struct {
	ID        int64
	Date      time.Time
	Room      int
	Slot      int
	TypeID    int64
	WorkerID  int64
	PatientID int64

	// Цена не пересчитывается при переносе
	Price int64

	Status string
	Note   string

	CreatedAt time.Time
	UpdatedAt time.Time
}
