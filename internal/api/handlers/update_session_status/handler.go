package update_session_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dosuclinic/DosuSchedulerService/internal/api/handlers"
	updateStatus "github.com/dosuclinic/DosuSchedulerService/internal/usecase/update_session_status"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSessionID   = "некорректный идентификатор сеанса"
	msgSessionNotFound    = "сеанс не найден"
	msgSlotConflict       = "слоты сеанса уже заняты, возврат в активный статус невозможен"
	msgInvalidStatus      = "некорректный статус сеанса"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase UpdateSessionStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateSessionStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/sessions/{sessionId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, err := strconv.ParseInt(mux.Vars(r)["sessionId"], 10, 64)
	if err != nil || sessionID <= 0 {
		h.logger.Warn("PATCH /sessions/{sessionId}/status - Invalid session ID: %s", mux.Vars(r)["sessionId"])
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /sessions/{sessionId}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(sessionID))
	if err != nil {
		switch {
		case errors.Is(err, updateStatus.ErrSessionNotFound):
			h.logger.Warn("PATCH /sessions/{sessionId}/status - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, updateStatus.ErrSlotConflict):
			h.logger.Warn("PATCH /sessions/{sessionId}/status - Slot conflict on reactivation: session_id=%d", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, updateStatus.ErrInvalidStatus):
			h.logger.Warn("PATCH /sessions/{sessionId}/status - Invalid status: %q", req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, updateStatus.ErrInvalidInput):
			h.logger.Warn("PATCH /sessions/{sessionId}/status - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /sessions/{sessionId}/status - Failed to update status of session %d: %v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /sessions/{sessionId}/status - Status updated: session_id=%d, status=%s",
		sessionID, req.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
