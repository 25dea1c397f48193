package reschedule_session

import (
	"context"
	"errors"
	"fmt"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
	sessionRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/session"
	typeRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/sessiontype"
	timeslotRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/timeslot"
	workerRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/worker"
	"github.com/dosuclinic/DosuSchedulerService/pkg/ptr"
)

// UseCase use case для переноса сеанса на другие дату/кабинет/слот
type UseCase struct {
	sessionRepo SessionRepository
	dayRepo     DayRepository
	slotRepo    SlotRepository
	typeRepo    TypeRepository
	workerRepo  WorkerRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	dayRepo DayRepository,
	slotRepo SlotRepository,
	typeRepo TypeRepository,
	workerRepo WorkerRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo: sessionRepo,
		dayRepo:     dayRepo,
		slotRepo:    slotRepo,
		typeRepo:    typeRepo,
		workerRepo:  workerRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case переноса сеанса.
// Освобождение старых слотов, проверка нового диапазона и резервирование
// идут одной сериализуемой транзакцией: при конфликте сеанс остается
// на прежнем месте. Цена сеанса при переносе не пересчитывается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleSession: session=%d, date=%s, room=%d, slot=%d, type=%d",
		req.SessionID, req.Date.Format(domain.DateFormat), req.Room, req.Slot, req.TypeID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleSession: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Session

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем сеанс
		session, err := uc.sessionRepo.GetByID(txCtx, req.SessionID)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				uc.logger.Warn("RescheduleSession: session id=%d not found", req.SessionID)
				return ErrSessionNotFound
			}
			uc.logger.Error("RescheduleSession: failed to get session id=%d: %v", req.SessionID, err)
			return fmt.Errorf("%w: failed to get session: %w", ErrInternal, err)
		}

		// 2.2. Переносить можно только активный сеанс: неактивные
		// слотов не держат, их возврат идет через смену статуса
		if !session.IsActive() {
			uc.logger.Warn("RescheduleSession: session id=%d has status %s", session.ID, session.Status)
			return ErrSessionNotActive
		}

		// 2.3. Тип при переносе может смениться: длина нового диапазона
		// берется из нового типа, цена сеанса остается прежней
		sessionType, err := uc.typeRepo.GetByID(txCtx, req.TypeID)
		if err != nil {
			if errors.Is(err, typeRepo.ErrTypeNotFound) {
				uc.logger.Warn("RescheduleSession: type id=%d not found", req.TypeID)
				return ErrTypeNotFound
			}
			uc.logger.Error("RescheduleSession: failed to get type id=%d: %v", req.TypeID, err)
			return fmt.Errorf("%w: failed to get session type: %w", ErrInternal, err)
		}

		if !sessionType.Available {
			uc.logger.Warn("RescheduleSession: type id=%d is not available", req.TypeID)
			return ErrTypeNotAvailable
		}

		// 2.4. Кабинет мог смениться - подбираем работника заново
		worker, err := uc.workerRepo.FirstAvailableByRoom(txCtx, req.Room)
		if err != nil {
			if errors.Is(err, workerRepo.ErrWorkerNotFound) {
				uc.logger.Warn("RescheduleSession: no available worker in room %d", req.Room)
				return ErrNoWorkerAvailable
			}
			uc.logger.Error("RescheduleSession: failed to find worker for room %d: %v", req.Room, err)
			return fmt.Errorf("%w: failed to find worker: %w", ErrInternal, err)
		}

		// 2.5. Получаем (или создаем) день назначения
		day, err := uc.dayRepo.GetOrCreate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("RescheduleSession: failed to get day for %s: %v",
				req.Date.Format(domain.DateFormat), err)
			return fmt.Errorf("%w: failed to get schedule day: %w", ErrInternal, err)
		}

		// 2.6. Проверяем новый диапазон, исключая собственные слоты:
		// перенос внутри своего диапазона конфликтом не считается.
		// ScopeAll: реестр держит только слоты активных сеансов, проверка
		// по всему реестру совпадает с уникальным индексом, страхующим Reserve
		owner, err := uc.slotRepo.FindConflict(txCtx, day.ID, req.Room, req.Slot,
			sessionType.SlotQuantity, ptr.Ptr(session.ID), domain.ScopeAll)
		if err != nil {
			uc.logger.Error("RescheduleSession: failed to check conflicts: %v", err)
			return fmt.Errorf("%w: failed to check conflicts: %w", ErrInternal, err)
		}
		if owner != nil {
			uc.logger.Warn("RescheduleSession: slot range conflicts with session id=%d", *owner)
			return ErrSlotConflict
		}

		// 2.7. Перевыпускаем слоты: старые снимаем, новые занимаем
		if err := uc.slotRepo.Release(txCtx, session.ID); err != nil {
			uc.logger.Error("RescheduleSession: failed to release slots: %v", err)
			return fmt.Errorf("%w: failed to release slots: %w", ErrInternal, err)
		}

		err = uc.slotRepo.Reserve(txCtx, day.ID, req.Room, req.Slot,
			sessionType.SlotQuantity, session.ID)
		if err != nil {
			if errors.Is(err, timeslotRepo.ErrSlotTaken) {
				uc.logger.Warn("RescheduleSession: slot range taken concurrently")
				return ErrSlotConflict
			}
			uc.logger.Error("RescheduleSession: failed to reserve slots: %v", err)
			return fmt.Errorf("%w: failed to reserve slots: %w", ErrInternal, err)
		}

		// 2.8. Обновляем сам сеанс
		if err := uc.sessionRepo.UpdateSchedule(txCtx, session.ID, req.Date, req.Room, req.Slot, sessionType.ID, worker.ID); err != nil {
			uc.logger.Error("RescheduleSession: failed to update session: %v", err)
			return fmt.Errorf("%w: failed to update session: %w", ErrInternal, err)
		}

		session.Date = req.Date
		session.Room = req.Room
		session.Slot = req.Slot
		session.TypeID = sessionType.ID
		session.WorkerID = worker.ID

		result = session
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleSession: successfully moved session id=%d", result.ID)

	return &Response{
		ID:        result.ID,
		Date:      result.Date,
		Room:      result.Room,
		Slot:      result.Slot,
		TypeID:    result.TypeID,
		WorkerID:  result.WorkerID,
		PatientID: result.PatientID,
		Price:     result.Price,
		Status:    string(result.Status),
		Note:      result.Note,
		CreatedAt: result.CreatedAt,
		UpdatedAt: result.UpdatedAt,
	}, nil
}
