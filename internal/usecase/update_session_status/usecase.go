package update_session_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
	sessionRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/session"
	timeslotRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/timeslot"
)

// UseCase use case для смены статуса сеанса.
// Слоты следуют за статусом: уход из active освобождает диапазон,
// возврат в active резервирует его заново (и падает конфликтом,
// если место уже занято).
type UseCase struct {
	sessionRepo SessionRepository
	dayRepo     DayRepository
	slotRepo    SlotRepository
	typeRepo    TypeRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	dayRepo DayRepository,
	slotRepo SlotRepository,
	typeRepo TypeRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo: sessionRepo,
		dayRepo:     dayRepo,
		slotRepo:    slotRepo,
		typeRepo:    typeRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case смены статуса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateSessionStatus: session=%d, status=%s", req.SessionID, req.Status)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateSessionStatus: validation failed: %v", err)
		return nil, err
	}

	newStatus := domain.SessionStatus(req.Status)

	var result *domain.Session

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем сеанс
		session, err := uc.sessionRepo.GetByID(txCtx, req.SessionID)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				uc.logger.Warn("UpdateSessionStatus: session id=%d not found", req.SessionID)
				return ErrSessionNotFound
			}
			uc.logger.Error("UpdateSessionStatus: failed to get session id=%d: %v", req.SessionID, err)
			return fmt.Errorf("%w: failed to get session: %w", ErrInternal, err)
		}

		// 2.2. Синхронизируем реестр занятости с новым статусом
		switch {
		case session.IsActive() && newStatus != domain.StatusActive:
			// Отмена или неявка: слоты освобождаются сразу
			if err := uc.slotRepo.Release(txCtx, session.ID); err != nil {
				uc.logger.Error("UpdateSessionStatus: failed to release slots: %v", err)
				return fmt.Errorf("%w: failed to release slots: %w", ErrInternal, err)
			}
			uc.logger.Info("UpdateSessionStatus: released slots of session id=%d", session.ID)

		case !session.IsActive() && newStatus == domain.StatusActive:
			// Возврат в активные: диапазон резервируется заново
			if err := uc.reactivate(txCtx, session); err != nil {
				return err
			}
		}

		// 2.3. Обновляем статус и заметку
		note := session.Note
		if req.Note != nil {
			note = *req.Note
		}

		if err := uc.sessionRepo.UpdateStatus(txCtx, session.ID, newStatus, note); err != nil {
			uc.logger.Error("UpdateSessionStatus: failed to update session: %v", err)
			return fmt.Errorf("%w: failed to update session: %w", ErrInternal, err)
		}

		session.Status = newStatus
		session.Note = note

		result = session
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateSessionStatus: session id=%d is now %s", result.ID, result.Status)

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

// reactivate резервирует диапазон сеанса заново на его прежнем месте.
// Если место уже занято, возвращает ErrSlotConflict - транзакция
// откатывается и статус остается прежним.
func (uc *UseCase) reactivate(ctx context.Context, session *domain.Session) error {
	sessionType, err := uc.typeRepo.GetByID(ctx, session.TypeID)
	if err != nil {
		uc.logger.Error("UpdateSessionStatus: failed to get type id=%d: %v", session.TypeID, err)
		return fmt.Errorf("%w: failed to get session type: %w", ErrInternal, err)
	}

	day, err := uc.dayRepo.GetOrCreate(ctx, session.Date)
	if err != nil {
		uc.logger.Error("UpdateSessionStatus: failed to get day for %s: %v",
			session.Date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: failed to get schedule day: %w", ErrInternal, err)
	}

	// ScopeAll: реестр держит только слоты активных сеансов, и проверка
	// по всему реестру совпадает с уникальным индексом, страхующим Reserve
	owner, err := uc.slotRepo.FindConflict(ctx, day.ID, session.Room, session.Slot,
		sessionType.SlotQuantity, nil, domain.ScopeAll)
	if err != nil {
		uc.logger.Error("UpdateSessionStatus: failed to check conflicts: %v", err)
		return fmt.Errorf("%w: failed to check conflicts: %w", ErrInternal, err)
	}
	if owner != nil {
		uc.logger.Warn("UpdateSessionStatus: cannot reactivate session id=%d, range held by session id=%d",
			session.ID, *owner)
		return ErrSlotConflict
	}

	err = uc.slotRepo.Reserve(ctx, day.ID, session.Room, session.Slot,
		sessionType.SlotQuantity, session.ID)
	if err != nil {
		if errors.Is(err, timeslotRepo.ErrSlotTaken) {
			uc.logger.Warn("UpdateSessionStatus: slot range taken concurrently")
			return ErrSlotConflict
		}
		uc.logger.Error("UpdateSessionStatus: failed to reserve slots: %v", err)
		return fmt.Errorf("%w: failed to reserve slots: %w", ErrInternal, err)
	}

	uc.logger.Info("UpdateSessionStatus: re-reserved slots of session id=%d", session.ID)
	return nil
}
