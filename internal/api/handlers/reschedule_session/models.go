package reschedule_session

import (
	"time"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
	rescheduleSession "github.com/dosuclinic/DosuSchedulerService/internal/usecase/reschedule_session"
)

// RescheduleSessionRequest HTTP request model
type RescheduleSessionRequest struct {
	Date   string `json:"date"` // "2025-06-02"
	Room   int    `json:"room"`
	Slot   int    `json:"slot"`
	TypeID int64  `json:"typeId"`
}

// SessionResponse HTTP response model
type SessionResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Room      int    `json:"room"`
	Slot      int    `json:"slot"`
	TypeID    int64  `json:"typeId"`
	WorkerID  int64  `json:"workerId"`
	PatientID int64  `json:"patientId"`
	Price     int64  `json:"price"`
	Status    string `json:"status"`
	Note      string `json:"note,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleSessionRequest) ToUseCaseRequest(sessionID int64) (*rescheduleSession.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &rescheduleSession.Request{
		SessionID: sessionID,
		Date:      date,
		Room:      r.Room,
		Slot:      r.Slot,
		TypeID:    r.TypeID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleSession.Response) *SessionResponse {
	return &SessionResponse{
		ID:        resp.ID,
		Date:      resp.Date.Format(domain.DateFormat),
		Room:      resp.Room,
		Slot:      resp.Slot,
		TypeID:    resp.TypeID,
		WorkerID:  resp.WorkerID,
		PatientID: resp.PatientID,
		Price:     resp.Price,
		Status:    resp.Status,
		Note:      resp.Note,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
