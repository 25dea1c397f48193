package models

import (
	"time"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
	configModels "github.com/dosuclinic/DosuSchedulerService/internal/service/scheduleconfig/models"
)

// SessionView сеанс в сетке расписания
type SessionView struct {
	ID           int64  `json:"id"`
	Room         int    `json:"room"`
	Slot         int    `json:"slot"`
	SlotQuantity int    `json:"slotQuantity"`
	Time         string `json:"time"`     // "14:30", по конфигурации месяца
	Overtime     bool   `json:"overtime"` // Попадает ли на переработку
	Status       string `json:"status"`
	Price        int64  `json:"price"`
	Note         string `json:"note,omitempty"`

	TypeID   int64  `json:"typeId"`
	TypeName string `json:"typeName"`

	WorkerID   int64  `json:"workerId"`
	WorkerName string `json:"workerName"`

	PatientID   int64  `json:"patientId"`
	PatientMRN  int64  `json:"patientMrn"`
	PatientName string `json:"patientName"`
}

// DayViewResponse расписание одного дня с действующей конфигурацией
type DayViewResponse struct {
	Date     string                       `json:"date"`
	Config   *configModels.ConfigResponse `json:"config"`
	Sessions []SessionView                `json:"sessions"`
}

// MonthDay день месяца с сеансами. Пустые дни в MonthViewResponse
// не попадают.
type MonthDay struct {
	Date     string        `json:"date"`
	Sessions []SessionView `json:"sessions"`
}

// MonthViewResponse помесячный обзор расписания
type MonthViewResponse struct {
	Year   int                          `json:"year"`
	Month  int                          `json:"month"`
	Config *configModels.ConfigResponse `json:"config"`
	Days   []MonthDay                   `json:"days"`
}

// SessionDetailResponse полная карточка сеанса
type SessionDetailResponse struct {
	ID           int64  `json:"id"`
	Date         string `json:"date"`
	Room         int    `json:"room"`
	Slot         int    `json:"slot"`
	SlotQuantity int    `json:"slotQuantity"`
	Status       string `json:"status"`
	Price        int64  `json:"price"`
	Note         string `json:"note,omitempty"`

	TypeID   int64  `json:"typeId"`
	TypeName string `json:"typeName"`

	WorkerID   int64  `json:"workerId"`
	WorkerName string `json:"workerName"`

	PatientID   int64  `json:"patientId"`
	PatientMRN  int64  `json:"patientMrn"`
	PatientName string `json:"patientName"`
	PatientTel  string `json:"patientTel,omitempty"`
	PatientNote string `json:"patientNote,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainDetail конвертирует domain модель в карточку сеанса
func FromDomainDetail(d *domain.SessionDetail) *SessionDetailResponse {
	if d == nil {
		return nil
	}

	return &SessionDetailResponse{
		ID:           d.ID,
		Date:         d.Date.Format(domain.DateFormat),
		Room:         d.Room,
		Slot:         d.Slot,
		SlotQuantity: d.SlotQuantity,
		Status:       string(d.Status),
		Price:        d.Price,
		Note:         d.Note,
		TypeID:       d.TypeID,
		TypeName:     d.TypeName,
		WorkerID:     d.WorkerID,
		WorkerName:   d.WorkerName,
		PatientID:    d.PatientID,
		PatientMRN:   d.PatientMRN,
		PatientName:  d.PatientName,
		PatientTel:   d.PatientTel,
		PatientNote:  d.PatientNote,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// FromDomainDetailView конвертирует domain модель в элемент сетки.
// Время и признак переработки вычисляются по конфигурации месяца.
func FromDomainDetailView(d *domain.SessionDetail, config *domain.ScheduleConfig) SessionView {
	view := SessionView{
		ID:           d.ID,
		Room:         d.Room,
		Slot:         d.Slot,
		SlotQuantity: d.SlotQuantity,
		Status:       string(d.Status),
		Price:        d.Price,
		Note:         d.Note,
		TypeID:       d.TypeID,
		TypeName:     d.TypeName,
		WorkerID:     d.WorkerID,
		WorkerName:   d.WorkerName,
		PatientID:    d.PatientID,
		PatientMRN:   d.PatientMRN,
		PatientName:  d.PatientName,
	}

	if t, err := config.SlotTime(d.Date, d.Slot); err == nil {
		view.Time = t.String()
		view.Overtime = config.IsOvertime(d.Date, t)
	}

	return view
}
