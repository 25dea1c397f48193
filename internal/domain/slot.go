package domain

import "time"

// ScheduleDay календарный день, для которого хотя бы раз занимался слот.
// Создается при первой записи на дату и далее живет как якорь для
// записей занятости (не удаляется, пока на него ссылаются слоты).
type ScheduleDay struct {
	ID   int64
	Date time.Time
}

// ConflictScope область проверки занятости при поиске конфликтов.
// Реестр занятости хранит тройки (день, кабинет, номер слота),
// привязанные ровно к одному сеансу; тройка уникальна на уровне БД,
// и записи держат только активные сеансы.
type ConflictScope int

const (
	// ScopeActiveOnly конфликтом считаются только слоты активных сеансов:
	// слоты отмененного сеанса свободны, даже если запись занятости
	// еще не вычищена
	ScopeActiveOnly ConflictScope = iota

	// ScopeAll любая запись занятости блокирует диапазон
	// независимо от статуса владеющего сеанса
	ScopeAll
)
