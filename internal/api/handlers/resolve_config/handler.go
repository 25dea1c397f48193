package resolve_config

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/dosuclinic/DosuSchedulerService/internal/api/handlers"
	"github.com/dosuclinic/DosuSchedulerService/internal/service/scheduleconfig/models"
)

const (
	msgInvalidYear  = "некорректный год"
	msgInvalidMonth = "некорректный месяц"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/configs/{year}/{month}
//
// Возвращает конфигурацию, действующую для месяца. При отсутствии
// подходящей конфигурации сервис лениво создает дефолтную.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	year, err := strconv.Atoi(vars["year"])
	if err != nil || year < 1 {
		h.logger.Warn("GET /configs/{year}/{month} - Invalid year: %s", vars["year"])
		handlers.RespondBadRequest(w, msgInvalidYear)
		return
	}

	month, err := strconv.Atoi(vars["month"])
	if err != nil || month < 1 || month > 12 {
		h.logger.Warn("GET /configs/{year}/{month} - Invalid month: %s", vars["month"])
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	config, err := h.service.Resolve(r.Context(), year, time.Month(month))
	if err != nil {
		h.logger.Error("GET /configs/{year}/{month} - Failed to resolve config for %d-%02d: %v", year, month, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /configs/{year}/{month} - Config resolved: %d-%02d -> config_id=%d", year, month, config.ID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainConfig(config))
}
