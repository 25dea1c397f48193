package create_session

import (
	"time"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
	createSession "github.com/dosuclinic/DosuSchedulerService/internal/usecase/create_session"
)

// CreateSessionRequest HTTP request model
type CreateSessionRequest struct {
	Date      string `json:"date"` // "2025-06-02"
	Room      int    `json:"room"`
	Slot      int    `json:"slot"`
	TypeID    int64  `json:"typeId"`
	PatientID int64  `json:"patientId"`
	Note      string `json:"note,omitempty"`
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
func (r *CreateSessionRequest) ToUseCaseRequest() (*createSession.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createSession.Request{
		Date:      date,
		Room:      r.Room,
		Slot:      r.Slot,
		TypeID:    r.TypeID,
		PatientID: r.PatientID,
		Note:      r.Note,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createSession.Response) *SessionResponse {
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
