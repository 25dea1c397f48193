package get_schedule

import (
	"context"
	"time"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
	"github.com/dosuclinic/DosuSchedulerService/internal/service/schedule/models"
)

type ScheduleService interface {
	DayView(ctx context.Context, date time.Time, filter domain.StatusFilter) (*models.DayViewResponse, error)
	MonthView(ctx context.Context, year int, month time.Month, filter domain.StatusFilter) (*models.MonthViewResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
