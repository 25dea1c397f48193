package schedule

import (
	"context"
	"time"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
)

// SessionRepository интерфейс репозитория сеансов
type SessionRepository interface {
	GetDetailByID(ctx context.Context, id int64) (*domain.SessionDetail, error)
	GetDetailsByDate(ctx context.Context, date time.Time, filter domain.StatusFilter) ([]*domain.SessionDetail, error)
}

// ConfigResolver интерфейс разрешения конфигурации расписания по месяцу
type ConfigResolver interface {
	Resolve(ctx context.Context, year int, month time.Month) (*domain.ScheduleConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
