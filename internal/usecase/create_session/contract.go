package create_session

import (
	"context"
	"time"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
)

// SessionRepository интерфейс репозитория сеансов
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) (*domain.Session, error)
}

// DayRepository интерфейс репозитория календарных дней
type DayRepository interface {
	GetOrCreate(ctx context.Context, date time.Time) (*domain.ScheduleDay, error)
}

// SlotRepository интерфейс реестра занятости слотов
type SlotRepository interface {
	Reserve(ctx context.Context, dayID int64, room, start, count int, sessionID int64) error
	FindConflict(ctx context.Context, dayID int64, room, start, count int, excludeSessionID *int64, scope domain.ConflictScope) (*int64, error)
}

// TypeRepository интерфейс репозитория типов сеансов
type TypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.SessionType, error)
}

// WorkerRepository интерфейс репозитория работников
type WorkerRepository interface {
	FirstAvailableByRoom(ctx context.Context, room int) (*domain.Worker, error)
}

// PatientRepository интерфейс репозитория пациентов
type PatientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Patient, error)
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
