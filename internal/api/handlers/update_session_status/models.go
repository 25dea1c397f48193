package update_session_status

import (
	"time"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
	updateStatus "github.com/dosuclinic/DosuSchedulerService/internal/usecase/update_session_status"
)

// UpdateStatusRequest HTTP request model.
// Note равная nil оставляет заметку без изменений.
type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Note   *string `json:"note,omitempty"`
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
func (r *UpdateStatusRequest) ToUseCaseRequest(sessionID int64) *updateStatus.Request {
	return &updateStatus.Request{
		SessionID: sessionID,
		Status:    r.Status,
		Note:      r.Note,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateStatus.Response) *SessionResponse {
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
