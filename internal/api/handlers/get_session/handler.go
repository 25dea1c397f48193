package get_session

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dosuclinic/DosuSchedulerService/internal/api/handlers"
	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
	"github.com/dosuclinic/DosuSchedulerService/internal/service/schedule"
)

const (
	msgInvalidSessionID = "некорректный идентификатор сеанса"
	msgInvalidFilter    = "некорректный фильтр статуса"
	msgSessionNotFound  = "сеанс не найден"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, err := strconv.ParseInt(mux.Vars(r)["sessionId"], 10, 64)
	if err != nil || sessionID <= 0 {
		h.logger.Warn("GET /sessions/{sessionId} - Invalid session ID: %s", mux.Vars(r)["sessionId"])
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	filter := domain.StatusFilter(r.URL.Query().Get("status"))
	if filter != "" && !filter.IsValid() {
		h.logger.Warn("GET /sessions/{sessionId} - Invalid status filter: %q", filter)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.SessionDetail(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrSessionNotFound):
			h.logger.Warn("GET /sessions/{sessionId} - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		default:
			h.logger.Error("GET /sessions/{sessionId} - Failed to get session %d: %v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Фильтр статуса сужает видимость: сеанс в другом статусе
	// для этого запроса не существует
	if filter != "" && result.Status != string(filter) {
		h.logger.Warn("GET /sessions/{sessionId} - Session %d has status %s, filter %s", sessionID, result.Status, filter)
		handlers.RespondNotFound(w, msgSessionNotFound)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
