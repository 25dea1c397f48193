package domain

import "time"

// SessionType represents a billable session category.
// SlotQuantity определяет, сколько последовательных слотов занимает
// сеанс этого типа, Price - цену, фиксируемую в сеансе при записи.
type SessionType struct {
	ID           int64
	Name         string
	OrderCode    string
	SlotQuantity int
	Price        int64
	Available    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
