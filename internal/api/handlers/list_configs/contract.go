package list_configs

import (
	"context"

	"github.com/dosuclinic/DosuSchedulerService/internal/service/scheduleconfig/models"
)

type ConfigService interface {
	List(ctx context.Context) (*models.ConfigListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
