package create_session

import (
	"errors"
	"net/http"

	"github.com/dosuclinic/DosuSchedulerService/internal/api/handlers"
	createSession "github.com/dosuclinic/DosuSchedulerService/internal/usecase/create_session"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSlotConflict       = "выбранные слоты уже заняты"
	msgTypeNotFound       = "тип сеанса не найден"
	msgTypeNotAvailable   = "тип сеанса недоступен для записи"
	msgPatientNotFound    = "пациент не найден"
	msgNoWorkerAvailable  = "в кабинете нет доступного специалиста"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase CreateSessionUseCase
	logger  Logger
}

func NewHandler(useCase CreateSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /sessions - Failed to parse date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createSession.ErrSlotConflict):
			h.logger.Warn("POST /sessions - Slot conflict: date=%s, room=%d, slot=%d",
				req.Date, req.Room, req.Slot)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createSession.ErrTypeNotFound):
			h.logger.Warn("POST /sessions - Type not found: type_id=%d", req.TypeID)
			handlers.RespondNotFound(w, msgTypeNotFound)

		case errors.Is(err, createSession.ErrTypeNotAvailable):
			h.logger.Warn("POST /sessions - Type not available: type_id=%d", req.TypeID)
			handlers.RespondBadRequest(w, msgTypeNotAvailable)

		case errors.Is(err, createSession.ErrPatientNotFound):
			h.logger.Warn("POST /sessions - Patient not found: patient_id=%d", req.PatientID)
			handlers.RespondNotFound(w, msgPatientNotFound)

		case errors.Is(err, createSession.ErrNoWorkerAvailable):
			h.logger.Warn("POST /sessions - No worker available: room=%d", req.Room)
			handlers.RespondNotFound(w, msgNoWorkerAvailable)

		case errors.Is(err, createSession.ErrInvalidInput):
			h.logger.Warn("POST /sessions - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /sessions - Failed to create session: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions - Session created successfully: session_id=%d, date=%s, room=%d, slot=%d",
		result.ID, req.Date, req.Room, req.Slot)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
