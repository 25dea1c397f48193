package get_schedule

import (
	"errors"
	"net/http"
	"time"

	"github.com/dosuclinic/DosuSchedulerService/internal/api/handlers"
	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
	"github.com/dosuclinic/DosuSchedulerService/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingPeriod      = "укажите date либо year и month"
	msgInvalidInput       = "некорректные данные запроса"
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

// Handle POST /api/v1/schedule
//
// Тело с date возвращает расписание дня, тело с year+month - обзор
// месяца. Фильтр статусов по умолчанию active.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	filter := domain.StatusFilter(req.Filter)
	if req.Filter == "" {
		filter = domain.FilterActive
	}

	switch {
	case req.Date != "":
		date, err := time.Parse(domain.DateFormat, req.Date)
		if err != nil {
			h.logger.Warn("POST /schedule - Failed to parse date %q: %v", req.Date, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}

		result, err := h.service.DayView(r.Context(), date, filter)
		if err != nil {
			h.respondServiceError(w, err)
			return
		}

		h.logger.Info("POST /schedule - Day view served: date=%s, filter=%s", req.Date, filter)
		handlers.RespondJSON(w, http.StatusOK, result)

	case req.Year > 0 && req.Month > 0:
		result, err := h.service.MonthView(r.Context(), req.Year, time.Month(req.Month), filter)
		if err != nil {
			h.respondServiceError(w, err)
			return
		}

		h.logger.Info("POST /schedule - Month view served: %d-%02d, filter=%s", req.Year, req.Month, filter)
		handlers.RespondJSON(w, http.StatusOK, result)

	default:
		h.logger.Warn("POST /schedule - Neither date nor year/month provided")
		handlers.RespondBadRequest(w, msgMissingPeriod)
	}
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, schedule.ErrInvalidInput):
		h.logger.Warn("POST /schedule - Invalid input: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("POST /schedule - Failed to build schedule view: %v", err)
		handlers.RespondInternalError(w)
	}
}
