package update_session_status

import "time"

// Request модель запроса на смену статуса сеанса
type Request struct {
	SessionID int64   // Сеанс
	Status    string  // Целевой статус (active/canceled/noshow)
	Note      *string // Новая заметка (nil - не менять)
}

// Response модель ответа с обновленным сеансом
type Response struct {
	ID        int64
	Date      time.Time
	Room      int
	Slot      int
	TypeID    int64
	WorkerID  int64
	PatientID int64
	Price     int64
	Status    string
	Note      string

	CreatedAt time.Time
	UpdatedAt time.Time
}
