package scheduleconfig

import "github.com/dosuclinic/DosuSchedulerService/pkg/dbmetrics"

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
