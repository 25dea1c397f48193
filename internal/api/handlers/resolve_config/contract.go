package resolve_config

import (
	"context"
	"time"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
)

type ConfigService interface {
	Resolve(ctx context.Context, year int, month time.Month) (*domain.ScheduleConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
