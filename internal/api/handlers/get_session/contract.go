package get_session

import (
	"context"

	"github.com/dosuclinic/DosuSchedulerService/internal/service/schedule/models"
)

type ScheduleService interface {
	SessionDetail(ctx context.Context, id int64) (*models.SessionDetailResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
