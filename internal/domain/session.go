package domain

import "time"

// SessionStatus represents the status of a therapy session
type SessionStatus string

const (
	StatusActive   SessionStatus = "active"
	StatusCanceled SessionStatus = "canceled"
	StatusNoShow   SessionStatus = "noshow"
)

// ValidStatuses все допустимые статусы сеанса
var ValidStatuses = []SessionStatus{StatusActive, StatusCanceled, StatusNoShow}

// IsValid проверяет, что статус - один из допустимых
func (s SessionStatus) IsValid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Session represents one scheduled therapy session.
// Room, Slot и Date описывают первый слот занимаемого диапазона;
// количество слотов берётся из типа сеанса в момент записи.
type Session struct {
	ID        int64
	Date      time.Time
	Room      int
	Slot      int
	TypeID    int64
	WorkerID  int64
	PatientID int64

	// Снимок цены типа сеанса на момент записи;
	// последующие изменения типа его не меняют
	Price int64

	Status SessionStatus
	Note   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the session holds its slots
func (s *Session) IsActive() bool {
	return s.Status == StatusActive
}

// SessionDetail сеанс с присоединенными справочными данными
// для отображения расписания
type SessionDetail struct {
	Session

	TypeName     string
	SlotQuantity int
	WorkerName   string
	PatientMRN   int64
	PatientName  string
	PatientTel   string
	PatientNote  string
}

// StatusFilter режим видимости при чтении расписания и проверке конфликтов.
// FilterActive - быстрый путь через занятые слоты (физическая занятость);
// остальные значения - выборка сеансов с конкретным статусом напрямую,
// так как неактивные сеансы слотов не держат.
type StatusFilter string

const (
	FilterActive   StatusFilter = "active"
	FilterCanceled StatusFilter = "canceled"
	FilterNoShow   StatusFilter = "noshow"
)

// IsValid проверяет, что фильтр - один из допустимых
func (f StatusFilter) IsValid() bool {
	switch f {
	case FilterActive, FilterCanceled, FilterNoShow:
		return true
	}
	return false
}
