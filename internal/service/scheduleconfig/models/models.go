package models

import (
	"errors"
	"time"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
	"github.com/dosuclinic/DosuSchedulerService/pkg/types"
)

var (
	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("invalid date format")
)

// Request модели

// CreateConfigRequest запрос на создание конфигурации расписания
type CreateConfigRequest struct {
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault"`
	StartDate string `json:"startDate"` // "2025-06-01"
	EndDate   string `json:"endDate"`   // "2025-08-31"

	WdStartHour      string `json:"wdStartHour"`      // "09:00"
	WdEndHour        string `json:"wdEndHour"`        // "21:00"
	WdLunchStartHour string `json:"wdLunchStartHour"` // "13:00"
	WdLunchEndHour   string `json:"wdLunchEndHour"`   // "14:00"
	WdOvertimeHour   string `json:"wdOvertimeHour"`   // "18:00"

	SdStartHour    string `json:"sdStartHour"`    // "09:00"
	SdEndHour      string `json:"sdEndHour"`      // "15:00"
	SdOvertimeHour string `json:"sdOvertimeHour"` // "13:00"

	DurationMinutes int `json:"durationMinutes"` // 10/20/30
}

// UpdateConfigRequest запрос на обновление конфигурации.
// Формат полей совпадает с CreateConfigRequest.
type UpdateConfigRequest = CreateConfigRequest

// ToDomainConfig конвертирует request в domain модель
func (r *CreateConfigRequest) ToDomainConfig() (*domain.ScheduleConfig, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	return &domain.ScheduleConfig{
		Name:             r.Name,
		IsDefault:        r.IsDefault,
		StartDate:        startDate,
		EndDate:          endDate,
		WdStartHour:      types.TimeString(r.WdStartHour),
		WdEndHour:        types.TimeString(r.WdEndHour),
		WdLunchStartHour: types.TimeString(r.WdLunchStartHour),
		WdLunchEndHour:   types.TimeString(r.WdLunchEndHour),
		WdOvertimeHour:   types.TimeString(r.WdOvertimeHour),
		SdStartHour:      types.TimeString(r.SdStartHour),
		SdEndHour:        types.TimeString(r.SdEndHour),
		SdOvertimeHour:   types.TimeString(r.SdOvertimeHour),
		Duration:         r.DurationMinutes,
	}, nil
}

// Response модели

// ConfigResponse ответ с данными конфигурации
type ConfigResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`

	WdStartHour      string `json:"wdStartHour"`
	WdEndHour        string `json:"wdEndHour"`
	WdLunchStartHour string `json:"wdLunchStartHour"`
	WdLunchEndHour   string `json:"wdLunchEndHour"`
	WdOvertimeHour   string `json:"wdOvertimeHour"`

	SdStartHour    string `json:"sdStartHour"`
	SdEndHour      string `json:"sdEndHour"`
	SdOvertimeHour string `json:"sdOvertimeHour"`

	DurationMinutes int `json:"durationMinutes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ConfigListResponse ответ со списком конфигураций
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.ScheduleConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	return &ConfigResponse{
		ID:               c.ID,
		Name:             c.Name,
		IsDefault:        c.IsDefault,
		StartDate:        c.StartDate.Format(domain.DateFormat),
		EndDate:          c.EndDate.Format(domain.DateFormat),
		WdStartHour:      c.WdStartHour.String(),
		WdEndHour:        c.WdEndHour.String(),
		WdLunchStartHour: c.WdLunchStartHour.String(),
		WdLunchEndHour:   c.WdLunchEndHour.String(),
		WdOvertimeHour:   c.WdOvertimeHour.String(),
		SdStartHour:      c.SdStartHour.String(),
		SdEndHour:        c.SdEndHour.String(),
		SdOvertimeHour:   c.SdOvertimeHour.String(),
		DurationMinutes:  c.Duration,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.ScheduleConfig) *ConfigListResponse {
	resp := &ConfigListResponse{
		Configs: make([]ConfigResponse, 0, len(configs)),
	}

	for _, config := range configs {
		if configResp := FromDomainConfig(config); configResp != nil {
			resp.Configs = append(resp.Configs, *configResp)
		}
	}

	return resp
}
