package domain

import "time"

// Patient пациент клиники (справочные данные для записи).
// Пациент с MRN = BlockedPatientMRN используется для административного
// закрытия слотов и обрабатывается как обычный пациент.
type Patient struct {
	ID       int64
	MRN      int64
	Name     string
	Sex      string
	Birthday *time.Time
	Tel      string
	Note     string

	CreatedAt time.Time
	UpdatedAt time.Time
}
