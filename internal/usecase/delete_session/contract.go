package delete_session

import (
	"context"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
)

// SessionRepository интерфейс репозитория сеансов
type SessionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Session, error)
	Delete(ctx context.Context, id int64) error
}

// SlotRepository интерфейс реестра занятости слотов
type SlotRepository interface {
	Release(ctx context.Context, sessionID int64) error
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
