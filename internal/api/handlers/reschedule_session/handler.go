package reschedule_session

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dosuclinic/DosuSchedulerService/internal/api/handlers"
	rescheduleSession "github.com/dosuclinic/DosuSchedulerService/internal/usecase/reschedule_session"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSessionID   = "некорректный идентификатор сеанса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSessionNotFound    = "сеанс не найден"
	msgSessionNotActive   = "перенести можно только активный сеанс"
	msgSlotConflict       = "выбранные слоты уже заняты"
	msgTypeNotFound       = "тип сеанса не найден"
	msgTypeNotAvailable   = "тип сеанса недоступен для записи"
	msgNoWorkerAvailable  = "в кабинете нет доступного специалиста"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase RescheduleSessionUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/sessions/{sessionId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, err := strconv.ParseInt(mux.Vars(r)["sessionId"], 10, 64)
	if err != nil || sessionID <= 0 {
		h.logger.Warn("PATCH /sessions/{sessionId}/schedule - Invalid session ID: %s", mux.Vars(r)["sessionId"])
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	var req RescheduleSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /sessions/{sessionId}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(sessionID)
	if err != nil {
		h.logger.Warn("PATCH /sessions/{sessionId}/schedule - Failed to parse date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleSession.ErrSessionNotFound):
			h.logger.Warn("PATCH /sessions/{sessionId}/schedule - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, rescheduleSession.ErrSessionNotActive):
			h.logger.Warn("PATCH /sessions/{sessionId}/schedule - Session not active: session_id=%d", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgSessionNotActive)

		case errors.Is(err, rescheduleSession.ErrSlotConflict):
			h.logger.Warn("PATCH /sessions/{sessionId}/schedule - Slot conflict: session_id=%d, date=%s, room=%d, slot=%d",
				sessionID, req.Date, req.Room, req.Slot)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, rescheduleSession.ErrTypeNotFound):
			h.logger.Warn("PATCH /sessions/{sessionId}/schedule - Type not found: type_id=%d", req.TypeID)
			handlers.RespondNotFound(w, msgTypeNotFound)

		case errors.Is(err, rescheduleSession.ErrTypeNotAvailable):
			h.logger.Warn("PATCH /sessions/{sessionId}/schedule - Type not available: type_id=%d", req.TypeID)
			handlers.RespondBadRequest(w, msgTypeNotAvailable)

		case errors.Is(err, rescheduleSession.ErrNoWorkerAvailable):
			h.logger.Warn("PATCH /sessions/{sessionId}/schedule - No worker available: room=%d", req.Room)
			handlers.RespondNotFound(w, msgNoWorkerAvailable)

		case errors.Is(err, rescheduleSession.ErrInvalidInput):
			h.logger.Warn("PATCH /sessions/{sessionId}/schedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /sessions/{sessionId}/schedule - Failed to reschedule session %d: %v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /sessions/{sessionId}/schedule - Session rescheduled: session_id=%d, date=%s, room=%d, slot=%d",
		sessionID, req.Date, req.Room, req.Slot)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
