package update_session_status

import (
	"context"

	updateStatus "github.com/dosuclinic/DosuSchedulerService/internal/usecase/update_session_status"
)

type UpdateSessionStatusUseCase interface {
	Execute(ctx context.Context, req *updateStatus.Request) (*updateStatus.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
