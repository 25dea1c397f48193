package delete_session

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dosuclinic/DosuSchedulerService/internal/api/handlers"
	deleteSession "github.com/dosuclinic/DosuSchedulerService/internal/usecase/delete_session"
)

const (
	msgInvalidSessionID = "некорректный идентификатор сеанса"
	msgSessionNotFound  = "сеанс не найден"
)

type Handler struct {
	useCase DeleteSessionUseCase
	logger  Logger
}

func NewHandler(useCase DeleteSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, err := strconv.ParseInt(mux.Vars(r)["sessionId"], 10, 64)
	if err != nil || sessionID <= 0 {
		h.logger.Warn("DELETE /sessions/{sessionId} - Invalid session ID: %s", mux.Vars(r)["sessionId"])
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	if err := h.useCase.Execute(r.Context(), sessionID); err != nil {
		switch {
		case errors.Is(err, deleteSession.ErrSessionNotFound):
			h.logger.Warn("DELETE /sessions/{sessionId} - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, deleteSession.ErrInvalidInput):
			h.logger.Warn("DELETE /sessions/{sessionId} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSessionID)

		default:
			h.logger.Error("DELETE /sessions/{sessionId} - Failed to delete session %d: %v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /sessions/{sessionId} - Session deleted: session_id=%d", sessionID)
	w.WriteHeader(http.StatusNoContent)
}
