package scheduleconfig

import (
	"context"
	"time"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигураций расписания
type ConfigRepository interface {
	Create(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
	GetByID(ctx context.Context, id int64) (*domain.ScheduleConfig, error)
	List(ctx context.Context) ([]*domain.ScheduleConfig, error)
	FindForMonth(ctx context.Context, firstOfMonth time.Time) (*domain.ScheduleConfig, error)
	Update(ctx context.Context, config *domain.ScheduleConfig) error
	ClearDefault(ctx context.Context, exceptID int64) error
	Delete(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
