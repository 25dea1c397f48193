package create_config

import (
	"context"

	"github.com/dosuclinic/DosuSchedulerService/internal/service/scheduleconfig/models"
)

type ConfigService interface {
	Create(ctx context.Context, req *models.CreateConfigRequest) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
