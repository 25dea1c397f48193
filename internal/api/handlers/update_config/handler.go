package update_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dosuclinic/DosuSchedulerService/internal/api/handlers"
	"github.com/dosuclinic/DosuSchedulerService/internal/service/scheduleconfig"
	"github.com/dosuclinic/DosuSchedulerService/internal/service/scheduleconfig/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidConfigID    = "некорректный идентификатор конфигурации"
	msgConfigNotFound     = "конфигурация не найдена"
	msgInvalidInput       = "некорректные данные конфигурации"
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

// Handle PUT /api/v1/configs/{configId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	configID, err := strconv.ParseInt(mux.Vars(r)["configId"], 10, 64)
	if err != nil || configID <= 0 {
		h.logger.Warn("PUT /configs/{configId} - Invalid config ID: %s", mux.Vars(r)["configId"])
		handlers.RespondBadRequest(w, msgInvalidConfigID)
		return
	}

	var req models.UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /configs/{configId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), configID, &req)
	if err != nil {
		switch {
		case errors.Is(err, scheduleconfig.ErrConfigNotFound):
			h.logger.Warn("PUT /configs/{configId} - Config not found: config_id=%d", configID)
			handlers.RespondNotFound(w, msgConfigNotFound)

		case errors.Is(err, scheduleconfig.ErrInvalidInput):
			h.logger.Warn("PUT /configs/{configId} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /configs/{configId} - Failed to update config %d: %v", configID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /configs/{configId} - Config updated: config_id=%d", configID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
