package create_config

import (
	"errors"
	"net/http"

	"github.com/dosuclinic/DosuSchedulerService/internal/api/handlers"
	"github.com/dosuclinic/DosuSchedulerService/internal/service/scheduleconfig"
	"github.com/dosuclinic/DosuSchedulerService/internal/service/scheduleconfig/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle POST /api/v1/configs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /configs - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, scheduleconfig.ErrInvalidInput):
			h.logger.Warn("POST /configs - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /configs - Failed to create config: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /configs - Config created: config_id=%d, name=%s", result.ID, result.Name)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
