package domain

// Дефолтное расписание клиники, применяется при ленивом создании
// конфигурации по умолчанию (будни 09:00-21:00 с обедом 13:00-14:00,
// суббота 09:00-15:00, слот 30 минут)
const (
	DefaultWeekdayStartHour      = "09:00"
	DefaultWeekdayEndHour        = "21:00"
	DefaultWeekdayLunchStartHour = "13:00"
	DefaultWeekdayLunchEndHour   = "14:00"
	DefaultWeekdayOvertimeHour   = "18:00"
	DefaultSaturdayStartHour     = "09:00"
	DefaultSaturdayEndHour       = "15:00"
	DefaultSaturdayOvertimeHour  = "13:00"
	DefaultSlotDurationMinutes   = 30

	DefaultConfigName = "default"
)

// EndOfTimeDate конец окна действия для конфигурации-заглушки:
// не-дефолтная конфигурация не должна быть открыта в бесконечность
const EndOfTimeDate = "9999-12-01"

// Business validation constants
const (
	MinRoom       = 1
	MaxRoom       = 2 // два процедурных кабинета
	MaxNoteLength = 1000
	MaxConfigName = 100
	MinSlotNumber = 0
)

// AllowedSlotDurations допустимые длительности слота в минутах
var AllowedSlotDurations = []int{10, 20, 30}

// BlockedPatientMRN служебный номер пациента для административного
// закрытия слотов ("off" типы). Обрабатывается как обычный пациент.
const BlockedPatientMRN = 0

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
