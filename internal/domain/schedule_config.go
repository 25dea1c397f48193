package domain

import (
	"fmt"
	"time"

	"github.com/dosuclinic/DosuSchedulerService/pkg/types"
)

// ScheduleConfig именованный профиль рабочих часов клиники.
// Действует на месяцы, попадающие в окно [StartDate, EndDate]
// (границы приводятся к первому/последнему дню месяца при записи).
// Ровно одна конфигурация помечена IsDefault и служит fallback-ом.
type ScheduleConfig struct {
	ID        int64
	Name      string
	IsDefault bool
	StartDate time.Time
	EndDate   time.Time

	// Будни
	WdStartHour      types.TimeString
	WdEndHour        types.TimeString
	WdLunchStartHour types.TimeString
	WdLunchEndHour   types.TimeString
	WdOvertimeHour   types.TimeString

	// Суббота (без обеда)
	SdStartHour    types.TimeString
	SdEndHour      types.TimeString
	SdOvertimeHour types.TimeString

	// Длительность слота в минутах (10/20/30)
	Duration int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDefaultConfig собирает конфигурацию по умолчанию с зашитым
// расписанием. Используется при ленивом создании дефолта.
func NewDefaultConfig() *ScheduleConfig {
	now := time.Now()
	return &ScheduleConfig{
		Name:             DefaultConfigName,
		IsDefault:        true,
		StartDate:        time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
		EndDate:          mustParseDate(EndOfTimeDate),
		WdStartHour:      DefaultWeekdayStartHour,
		WdEndHour:        DefaultWeekdayEndHour,
		WdLunchStartHour: DefaultWeekdayLunchStartHour,
		WdLunchEndHour:   DefaultWeekdayLunchEndHour,
		WdOvertimeHour:   DefaultWeekdayOvertimeHour,
		SdStartHour:      DefaultSaturdayStartHour,
		SdEndHour:        DefaultSaturdayEndHour,
		SdOvertimeHour:   DefaultSaturdayOvertimeHour,
		Duration:         DefaultSlotDurationMinutes,
	}
}

func mustParseDate(s string) time.Time {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Validate проверяет согласованность конфигурации
func (c *ScheduleConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(c.Name) > MaxConfigName {
		return fmt.Errorf("name must be at most %d characters", MaxConfigName)
	}

	allowed := false
	for _, d := range AllowedSlotDurations {
		if c.Duration == d {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("slot duration must be one of %v, got %d", AllowedSlotDurations, c.Duration)
	}

	for name, ts := range map[string]types.TimeString{
		"wd_start_hour":       c.WdStartHour,
		"wd_end_hour":         c.WdEndHour,
		"wd_lunch_start_hour": c.WdLunchStartHour,
		"wd_lunch_end_hour":   c.WdLunchEndHour,
		"wd_overtime_hour":    c.WdOvertimeHour,
		"sd_start_hour":       c.SdStartHour,
		"sd_end_hour":         c.SdEndHour,
		"sd_overtime_hour":    c.SdOvertimeHour,
	} {
		if err := ts.Validate(); err != nil {
			return fmt.Errorf("%s: %v", name, err)
		}
	}

	if !c.WdStartHour.IsBefore(c.WdEndHour) {
		return fmt.Errorf("wd_start_hour must be before wd_end_hour")
	}
	if !c.WdLunchStartHour.IsBefore(c.WdLunchEndHour) {
		return fmt.Errorf("wd_lunch_start_hour must be before wd_lunch_end_hour")
	}
	if !c.SdStartHour.IsBefore(c.SdEndHour) {
		return fmt.Errorf("sd_start_hour must be before sd_end_hour")
	}
	if c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("end_date must not be before start_date")
	}

	return nil
}

// TruncateWindow приводит окно действия к месячной гранулярности:
// начало - к первому дню месяца, конец - к последнему
func (c *ScheduleConfig) TruncateWindow() {
	c.StartDate = time.Date(c.StartDate.Year(), c.StartDate.Month(), 1, 0, 0, 0, 0, time.UTC)
	c.EndDate = time.Date(c.EndDate.Year(), c.EndDate.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 1, -1)
}

// lunchSpanMinutes длительность обеденного перерыва в минутах
func (c *ScheduleConfig) lunchSpanMinutes() (int, error) {
	return c.WdLunchEndHour.DiffMinutes(c.WdLunchStartHour)
}

// isSaturday суббота - единственный рабочий день с отдельным расписанием
func isSaturday(date time.Time) bool {
	return date.Weekday() == time.Saturday
}

// SlotTime конвертирует номер слота в время суток по этой конфигурации.
// Отсчет идет от часа открытия (будни/суббота раздельно) с шагом Duration.
// Нумерация слотов непрерывно перешагивает обеденный перерыв: слот,
// чье "сырое" время попадает на границу обеда или позже, сдвигается
// вперед на длину перерыва. По субботам обеда нет.
//
// Верхняя граница дня здесь не проверяется - это ответственность
// вызывающего кода.
func (c *ScheduleConfig) SlotTime(date time.Time, slot int) (types.TimeString, error) {
	if slot < MinSlotNumber {
		return "", fmt.Errorf("slot number must be >= %d, got %d", MinSlotNumber, slot)
	}

	start := c.WdStartHour
	if isSaturday(date) {
		start = c.SdStartHour
	}

	t, err := start.AddMinutes(slot * c.Duration)
	if err != nil {
		return "", err
	}

	if !isSaturday(date) && !t.IsBefore(c.WdLunchStartHour) {
		span, err := c.lunchSpanMinutes()
		if err != nil {
			return "", err
		}
		t, err = t.AddMinutes(span)
		if err != nil {
			return "", err
		}
	}

	return t, nil
}

// SlotForTime обратное преобразование: время суток -> номер ближайшего
// слота, начинающегося не позже этого времени. Для времени после обеда
// компенсирует обеденный сдвиг SlotTime.
func (c *ScheduleConfig) SlotForTime(date time.Time, t types.TimeString) (int, error) {
	start := c.WdStartHour
	if isSaturday(date) {
		start = c.SdStartHour
	}

	minutes, err := t.DiffMinutes(start)
	if err != nil {
		return 0, err
	}

	if !isSaturday(date) && !t.IsBefore(c.WdLunchEndHour) {
		span, err := c.lunchSpanMinutes()
		if err != nil {
			return 0, err
		}
		minutes -= span
	}

	if minutes < 0 {
		return 0, fmt.Errorf("time %s is before opening hour %s", t, start)
	}

	return minutes / c.Duration, nil
}

// IsOvertime сообщает, попадает ли время на переработку
// (после маркера overtime соответствующего дня)
func (c *ScheduleConfig) IsOvertime(date time.Time, t types.TimeString) bool {
	marker := c.WdOvertimeHour
	if isSaturday(date) {
		marker = c.SdOvertimeHour
	}
	return !t.IsBefore(marker)
}

// EndHour час закрытия для указанной даты
func (c *ScheduleConfig) EndHour(date time.Time) types.TimeString {
	if isSaturday(date) {
		return c.SdEndHour
	}
	return c.WdEndHour
}

// SlotsPerDay количество слотов, умещающихся в рабочий день указанной
// даты (с вычетом обеда по будням). Информационное значение для
// построения сетки расписания, жестко не навязывается записям.
func (c *ScheduleConfig) SlotsPerDay(date time.Time) (int, error) {
	start := c.WdStartHour
	if isSaturday(date) {
		start = c.SdStartHour
	}

	total, err := c.EndHour(date).DiffMinutes(start)
	if err != nil {
		return 0, err
	}

	if !isSaturday(date) {
		span, err := c.lunchSpanMinutes()
		if err != nil {
			return 0, err
		}
		total -= span
	}

	if total < 0 {
		total = 0
	}

	return total / c.Duration, nil
}
