package scheduleconfig

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
	configRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/scheduleconfig"
	"github.com/dosuclinic/DosuSchedulerService/internal/service/scheduleconfig/models"
)

// Service сервис для работы с конфигурациями расписания
type Service struct {
	configRepo ConfigRepository
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигураций
func NewService(
	configRepo ConfigRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		configRepo: configRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// List возвращает все конфигурации расписания
func (s *Service) List(ctx context.Context) (*models.ConfigListResponse, error) {
	s.logger.Info("ListConfigs: fetching all configs")

	configs, err := s.configRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListConfigs: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListConfigs: successfully fetched %d configs", len(configs))
	return models.FromDomainConfigList(configs), nil
}

// GetByID получает конфигурацию по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ConfigResponse, error) {
	s.logger.Info("GetConfig: fetching config id=%d", id)

	config, err := s.configRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("GetConfig: config id=%d not found", id)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("GetConfig: repository error for config id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainConfig(config), nil
}

// Create создает конфигурацию расписания.
// Окно действия приводится к месячной гранулярности. Если новая
// конфигурация помечена дефолтной, прежний дефолт теряет флаг в той же
// транзакции.
func (s *Service) Create(ctx context.Context, req *models.CreateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("CreateConfig: name=%s, default=%t", req.Name, req.IsDefault)

	config, err := req.ToDomainConfig()
	if err != nil {
		s.logger.Warn("CreateConfig: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	config.TruncateWindow()

	if err := config.Validate(); err != nil {
		s.logger.Warn("CreateConfig: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	var created *domain.ScheduleConfig

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Снимаем прежний дефолт до вставки, чтобы не упереться
		// в частичный уникальный индекс
		if config.IsDefault {
			if err := s.configRepo.ClearDefault(txCtx, 0); err != nil {
				s.logger.Error("CreateConfig: failed to clear default: %v", err)
				return fmt.Errorf("%w: failed to clear default: %w", ErrInternal, err)
			}
		}

		result, err := s.configRepo.Create(txCtx, config)
		if err != nil {
			s.logger.Error("CreateConfig: repository error: %v", err)
			return fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
		}

		created = result
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("CreateConfig: successfully created config id=%d", created.ID)
	return models.FromDomainConfig(created), nil
}

// Update обновляет конфигурацию расписания
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("UpdateConfig: config id=%d", id)

	config, err := req.ToDomainConfig()
	if err != nil {
		s.logger.Warn("UpdateConfig: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	config.ID = id
	config.TruncateWindow()

	if err := config.Validate(); err != nil {
		s.logger.Warn("UpdateConfig: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := s.configRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, configRepo.ErrConfigNotFound) {
				s.logger.Warn("UpdateConfig: config id=%d not found", id)
				return ErrConfigNotFound
			}
			s.logger.Error("UpdateConfig: repository error for config id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
		}

		// Дефолт не разжалуется обновлением: без fallback-конфигурации
		// разрешение месяца может остаться ни с чем
		if current.IsDefault {
			config.IsDefault = true
		}

		if config.IsDefault && !current.IsDefault {
			if err := s.configRepo.ClearDefault(txCtx, id); err != nil {
				s.logger.Error("UpdateConfig: failed to clear default: %v", err)
				return fmt.Errorf("%w: failed to clear default: %w", ErrInternal, err)
			}
		}

		if err := s.configRepo.Update(txCtx, config); err != nil {
			if errors.Is(err, configRepo.ErrConfigNotFound) {
				return ErrConfigNotFound
			}
			s.logger.Error("UpdateConfig: repository error for config id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	updated, err := s.configRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("UpdateConfig: failed to reread config id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - failed to reread config: %w", ErrInternal, err)
	}

	s.logger.Info("UpdateConfig: successfully updated config id=%d", id)
	return models.FromDomainConfig(updated), nil
}

// Delete удаляет конфигурацию. Дефолтную удалить нельзя.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("DeleteConfig: config id=%d", id)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		config, err := s.configRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, configRepo.ErrConfigNotFound) {
				s.logger.Warn("DeleteConfig: config id=%d not found", id)
				return ErrConfigNotFound
			}
			s.logger.Error("DeleteConfig: repository error for config id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
		}

		if config.IsDefault {
			s.logger.Warn("DeleteConfig: config id=%d is default", id)
			return ErrCannotDeleteDefault
		}

		if err := s.configRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, configRepo.ErrConfigNotFound) {
				return ErrConfigNotFound
			}
			s.logger.Error("DeleteConfig: repository error for config id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	s.logger.Info("DeleteConfig: successfully deleted config id=%d", id)
	return nil
}

// Resolve находит конфигурацию, действующую для указанного месяца.
// Если в БД нет ни одной подходящей (включая дефолтную), дефолт
// создается лениво с зашитым расписанием; гонку на создании выигрывает
// первый, остальные перечитывают его результат.
func (s *Service) Resolve(ctx context.Context, year int, month time.Month) (*domain.ScheduleConfig, error) {
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	config, err := s.configRepo.FindForMonth(ctx, firstOfMonth)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, configRepo.ErrConfigNotFound) {
		s.logger.Error("ResolveConfig: repository error for %d-%02d: %v", year, month, err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ResolveConfig: no config for %d-%02d, creating default", year, month)

	created, err := s.configRepo.Create(ctx, domain.NewDefaultConfig())
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, configRepo.ErrDefaultExists) {
		s.logger.Error("ResolveConfig: failed to create default: %v", err)
		return nil, fmt.Errorf("%w: Resolve - failed to create default: %w", ErrInternal, err)
	}

	// Конкурирующий запрос успел создать дефолт первым
	config, err = s.configRepo.FindForMonth(ctx, firstOfMonth)
	if err != nil {
		s.logger.Error("ResolveConfig: failed to reread config for %d-%02d: %v", year, month, err)
		return nil, fmt.Errorf("%w: Resolve - failed to reread config: %w", ErrInternal, err)
	}

	return config, nil
}
