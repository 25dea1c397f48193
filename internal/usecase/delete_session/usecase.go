package delete_session

import (
	"context"
	"errors"
	"fmt"

	sessionRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/session"
)

// UseCase use case для физического удаления сеанса.
// В отличие от отмены след в истории не остается: запись и её слоты
// исчезают из БД.
type UseCase struct {
	sessionRepo SessionRepository
	slotRepo    SlotRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo: sessionRepo,
		slotRepo:    slotRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case удаления сеанса
func (uc *UseCase) Execute(ctx context.Context, sessionID int64) error {
	uc.logger.Info("DeleteSession: session=%d", sessionID)

	if sessionID <= 0 {
		uc.logger.Warn("DeleteSession: invalid session id %d", sessionID)
		return fmt.Errorf("%w: sessionID must be positive", ErrInvalidInput)
	}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		session, err := uc.sessionRepo.GetByID(txCtx, sessionID)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				uc.logger.Warn("DeleteSession: session id=%d not found", sessionID)
				return ErrSessionNotFound
			}
			uc.logger.Error("DeleteSession: failed to get session id=%d: %v", sessionID, err)
			return fmt.Errorf("%w: failed to get session: %w", ErrInternal, err)
		}

		// Слоты освобождаются первыми: Release идемпотентен и для
		// неактивных сеансов просто ничего не удалит
		if err := uc.slotRepo.Release(txCtx, session.ID); err != nil {
			uc.logger.Error("DeleteSession: failed to release slots: %v", err)
			return fmt.Errorf("%w: failed to release slots: %w", ErrInternal, err)
		}

		if err := uc.sessionRepo.Delete(txCtx, session.ID); err != nil {
			uc.logger.Error("DeleteSession: failed to delete session: %v", err)
			return fmt.Errorf("%w: failed to delete session: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	uc.logger.Info("DeleteSession: successfully deleted session id=%d", sessionID)
	return nil
}
