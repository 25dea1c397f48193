package create_session

import "time"

// Request модель запроса на запись сеанса
type Request struct {
	Date      time.Time // Дата сеанса (без времени)
	Room      int       // Номер кабинета
	Slot      int       // Номер первого слота диапазона
	TypeID    int64     // Тип сеанса (определяет количество слотов и цену)
	PatientID int64     // Пациент
	Note      string    // Заметка (опционально)
}

// Response модель ответа с созданным сеансом
type Response struct {
	ID        int64
	Date      time.Time
	Room      int
	Slot      int
	TypeID    int64
	WorkerID  int64
	PatientID int64

	// Снимок цены типа на момент записи
	Price int64

	Status string
	Note   string

	CreatedAt time.Time
	UpdatedAt time.Time
}
