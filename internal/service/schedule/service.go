package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
	sessionRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/session"
	"github.com/dosuclinic/DosuSchedulerService/internal/service/schedule/models"
	configModels "github.com/dosuclinic/DosuSchedulerService/internal/service/scheduleconfig/models"
)

// Service сервис чтения расписания
type Service struct {
	sessionRepo    SessionRepository
	configResolver ConfigResolver
	logger         Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	sessionRepo SessionRepository,
	configResolver ConfigResolver,
	logger Logger,
) *Service {
	return &Service{
		sessionRepo:    sessionRepo,
		configResolver: configResolver,
		logger:         logger,
	}
}

// DayView возвращает расписание одного дня вместе с конфигурацией,
// действующей для его месяца. Времена слотов в ответе вычислены
// по этой конфигурации.
func (s *Service) DayView(ctx context.Context, date time.Time, filter domain.StatusFilter) (*models.DayViewResponse, error) {
	s.logger.Info("DayView: date=%s, filter=%s", date.Format(domain.DateFormat), filter)

	if !filter.IsValid() {
		s.logger.Warn("DayView: invalid filter %q", filter)
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
	}

	config, err := s.configResolver.Resolve(ctx, date.Year(), date.Month())
	if err != nil {
		s.logger.Error("DayView: failed to resolve config: %v", err)
		return nil, fmt.Errorf("%w: DayView - failed to resolve config: %w", ErrInternal, err)
	}

	details, err := s.sessionRepo.GetDetailsByDate(ctx, date, filter)
	if err != nil {
		s.logger.Error("DayView: repository error for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: DayView - repository error: %w", ErrInternal, err)
	}

	sessions := make([]models.SessionView, 0, len(details))
	for _, detail := range details {
		sessions = append(sessions, models.FromDomainDetailView(detail, config))
	}

	s.logger.Info("DayView: %d sessions on %s", len(sessions), date.Format(domain.DateFormat))

	return &models.DayViewResponse{
		Date:     date.Format(domain.DateFormat),
		Config:   configModels.FromDomainConfig(config),
		Sessions: sessions,
	}, nil
}

// MonthView собирает помесячный обзор: дни с сеансами под выбранный
// фильтр. Конфигурация разрешается один раз на месяц, дни без сеансов
// в ответ не попадают, несуществующие числа (31 февраля) пропускаются.
func (s *Service) MonthView(ctx context.Context, year int, month time.Month, filter domain.StatusFilter) (*models.MonthViewResponse, error) {
	s.logger.Info("MonthView: %d-%02d, filter=%s", year, month, filter)

	if !filter.IsValid() {
		s.logger.Warn("MonthView: invalid filter %q", filter)
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
	}
	if month < time.January || month > time.December {
		s.logger.Warn("MonthView: invalid month %d", month)
		return nil, fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidInput)
	}

	config, err := s.configResolver.Resolve(ctx, year, month)
	if err != nil {
		s.logger.Error("MonthView: failed to resolve config: %v", err)
		return nil, fmt.Errorf("%w: MonthView - failed to resolve config: %w", ErrInternal, err)
	}

	days := make([]models.MonthDay, 0)

	for dayNum := 1; dayNum <= 31; dayNum++ {
		date := time.Date(year, month, dayNum, 0, 0, 0, 0, time.UTC)
		if date.Month() != month {
			// time.Date нормализует несуществующие числа в следующий
			// месяц - такие дни пропускаем
			continue
		}

		details, err := s.sessionRepo.GetDetailsByDate(ctx, date, filter)
		if err != nil {
			s.logger.Error("MonthView: repository error for %s: %v", date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: MonthView - repository error: %w", ErrInternal, err)
		}

		if len(details) == 0 {
			continue
		}

		sessions := make([]models.SessionView, 0, len(details))
		for _, detail := range details {
			sessions = append(sessions, models.FromDomainDetailView(detail, config))
		}

		days = append(days, models.MonthDay{
			Date:     date.Format(domain.DateFormat),
			Sessions: sessions,
		})
	}

	s.logger.Info("MonthView: %d days with sessions in %d-%02d", len(days), year, month)

	return &models.MonthViewResponse{
		Year:   year,
		Month:  int(month),
		Config: configModels.FromDomainConfig(config),
		Days:   days,
	}, nil
}

// SessionDetail возвращает полную карточку сеанса
func (s *Service) SessionDetail(ctx context.Context, id int64) (*models.SessionDetailResponse, error) {
	s.logger.Info("SessionDetail: session id=%d", id)

	detail, err := s.sessionRepo.GetDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("SessionDetail: session id=%d not found", id)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("SessionDetail: repository error for session id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: SessionDetail - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainDetail(detail), nil
}
