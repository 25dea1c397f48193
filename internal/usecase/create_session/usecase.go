package create_session

import (
	"context"
	"errors"
	"fmt"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
	patientRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/patient"
	typeRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/sessiontype"
	timeslotRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/timeslot"
	workerRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/worker"
)

// UseCase use case для записи нового сеанса
type UseCase struct {
	sessionRepo SessionRepository
	dayRepo     DayRepository
	slotRepo    SlotRepository
	typeRepo    TypeRepository
	workerRepo  WorkerRepository
	patientRepo PatientRepository
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
	patientRepo PatientRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo: sessionRepo,
		dayRepo:     dayRepo,
		slotRepo:    slotRepo,
		typeRepo:    typeRepo,
		workerRepo:  workerRepo,
		patientRepo: patientRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case записи сеанса.
// Резервирование слотов и создание сеанса идут в сериализуемой
// транзакции: конкурирующая запись на пересекающийся диапазон либо
// увидит конфликт, либо упрется в уникальный индекс реестра занятости.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateSession: date=%s, room=%d, slot=%d, type=%d, patient=%d",
		req.Date.Format(domain.DateFormat), req.Room, req.Slot, req.TypeID, req.PatientID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateSession: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем тип сеанса: он определяет длину диапазона и цену
	sessionType, err := uc.typeRepo.GetByID(ctx, req.TypeID)
	if err != nil {
		if errors.Is(err, typeRepo.ErrTypeNotFound) {
			uc.logger.Warn("CreateSession: type id=%d not found", req.TypeID)
			return nil, ErrTypeNotFound
		}
		uc.logger.Error("CreateSession: failed to get type id=%d: %v", req.TypeID, err)
		return nil, fmt.Errorf("%w: failed to get session type: %w", ErrInternal, err)
	}

	if !sessionType.Available {
		uc.logger.Warn("CreateSession: type id=%d is not available", req.TypeID)
		return nil, ErrTypeNotAvailable
	}

	// 3. Проверяем существование пациента
	if _, err := uc.patientRepo.GetByID(ctx, req.PatientID); err != nil {
		if errors.Is(err, patientRepo.ErrPatientNotFound) {
			uc.logger.Warn("CreateSession: patient id=%d not found", req.PatientID)
			return nil, ErrPatientNotFound
		}
		uc.logger.Error("CreateSession: failed to get patient id=%d: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: failed to get patient: %w", ErrInternal, err)
	}

	// 4. Подбираем терапевта: первый доступный работник кабинета
	worker, err := uc.workerRepo.FirstAvailableByRoom(ctx, req.Room)
	if err != nil {
		if errors.Is(err, workerRepo.ErrWorkerNotFound) {
			uc.logger.Warn("CreateSession: no available worker in room %d", req.Room)
			return nil, ErrNoWorkerAvailable
		}
		uc.logger.Error("CreateSession: failed to find worker for room %d: %v", req.Room, err)
		return nil, fmt.Errorf("%w: failed to find worker: %w", ErrInternal, err)
	}

	var result *domain.Session

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем (или создаем) день расписания
		day, err := uc.dayRepo.GetOrCreate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateSession: failed to get day for %s: %v",
				req.Date.Format(domain.DateFormat), err)
			return fmt.Errorf("%w: failed to get schedule day: %w", ErrInternal, err)
		}

		// 5.2. Проверяем занятость диапазона. ScopeAll: неактивные сеансы
		// слотов не держат, а уникальный индекс, страхующий резервирование,
		// статусов не различает - честная проверка идет по всему реестру
		owner, err := uc.slotRepo.FindConflict(txCtx, day.ID, req.Room, req.Slot,
			sessionType.SlotQuantity, nil, domain.ScopeAll)
		if err != nil {
			uc.logger.Error("CreateSession: failed to check conflicts: %v", err)
			return fmt.Errorf("%w: failed to check conflicts: %w", ErrInternal, err)
		}
		if owner != nil {
			uc.logger.Warn("CreateSession: slot range conflicts with session id=%d", *owner)
			return ErrSlotConflict
		}

		// 5.3. Создаем сеанс со снимком цены типа
		session := &domain.Session{
			Date:      req.Date,
			Room:      req.Room,
			Slot:      req.Slot,
			TypeID:    sessionType.ID,
			WorkerID:  worker.ID,
			PatientID: req.PatientID,
			Price:     sessionType.Price,
			Status:    domain.StatusActive,
			Note:      req.Note,
		}

		created, err := uc.sessionRepo.Create(txCtx, session)
		if err != nil {
			uc.logger.Error("CreateSession: failed to create session: %v", err)
			return fmt.Errorf("%w: failed to create session: %w", ErrInternal, err)
		}

		// 5.4. Резервируем диапазон слотов за сеансом.
		// Уникальный индекс реестра - последний рубеж от гонки.
		err = uc.slotRepo.Reserve(txCtx, day.ID, req.Room, req.Slot,
			sessionType.SlotQuantity, created.ID)
		if err != nil {
			if errors.Is(err, timeslotRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateSession: slot range taken concurrently")
				return ErrSlotConflict
			}
			uc.logger.Error("CreateSession: failed to reserve slots: %v", err)
			return fmt.Errorf("%w: failed to reserve slots: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateSession: successfully created session id=%d, worker=%d", result.ID, result.WorkerID)

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
