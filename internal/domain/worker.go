package domain

import "time"

// Worker терапевт, закрепленный за кабинетом.
// При записи сеанса выбирается первый доступный работник кабинета
// в порядке возрастания id.
type Worker struct {
	ID        int64
	Name      string
	Room      int
	Available bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
