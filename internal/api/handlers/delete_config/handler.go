package delete_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dosuclinic/DosuSchedulerService/internal/api/handlers"
	"github.com/dosuclinic/DosuSchedulerService/internal/service/scheduleconfig"
)

const (
	msgInvalidConfigID     = "некорректный идентификатор конфигурации"
	msgConfigNotFound      = "конфигурация не найдена"
	msgCannotDeleteDefault = "дефолтную конфигурацию удалить нельзя"
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

// Handle DELETE /api/v1/configs/{configId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	configID, err := strconv.ParseInt(mux.Vars(r)["configId"], 10, 64)
	if err != nil || configID <= 0 {
		h.logger.Warn("DELETE /configs/{configId} - Invalid config ID: %s", mux.Vars(r)["configId"])
		handlers.RespondBadRequest(w, msgInvalidConfigID)
		return
	}

	if err := h.service.Delete(r.Context(), configID); err != nil {
		switch {
		case errors.Is(err, scheduleconfig.ErrConfigNotFound):
			h.logger.Warn("DELETE /configs/{configId} - Config not found: config_id=%d", configID)
			handlers.RespondNotFound(w, msgConfigNotFound)

		case errors.Is(err, scheduleconfig.ErrCannotDeleteDefault):
			h.logger.Warn("DELETE /configs/{configId} - Attempt to delete default config: config_id=%d", configID)
			handlers.RespondError(w, http.StatusConflict, msgCannotDeleteDefault)

		default:
			h.logger.Error("DELETE /configs/{configId} - Failed to delete config %d: %v", configID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /configs/{configId} - Config deleted: config_id=%d", configID)
	w.WriteHeader(http.StatusNoContent)
}
