package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createConfigHandler "github.com/dosuclinic/DosuSchedulerService/internal/api/handlers/create_config"
	createSessionHandler "github.com/dosuclinic/DosuSchedulerService/internal/api/handlers/create_session"
	deleteConfigHandler "github.com/dosuclinic/DosuSchedulerService/internal/api/handlers/delete_config"
	deleteSessionHandler "github.com/dosuclinic/DosuSchedulerService/internal/api/handlers/delete_session"
	getScheduleHandler "github.com/dosuclinic/DosuSchedulerService/internal/api/handlers/get_schedule"
	getSessionHandler "github.com/dosuclinic/DosuSchedulerService/internal/api/handlers/get_session"
	listConfigsHandler "github.com/dosuclinic/DosuSchedulerService/internal/api/handlers/list_configs"
	rescheduleSessionHandler "github.com/dosuclinic/DosuSchedulerService/internal/api/handlers/reschedule_session"
	resolveConfigHandler "github.com/dosuclinic/DosuSchedulerService/internal/api/handlers/resolve_config"
	updateConfigHandler "github.com/dosuclinic/DosuSchedulerService/internal/api/handlers/update_config"
	updateStatusHandler "github.com/dosuclinic/DosuSchedulerService/internal/api/handlers/update_session_status"
	"github.com/dosuclinic/DosuSchedulerService/internal/api/middleware"
	"github.com/dosuclinic/DosuSchedulerService/internal/config"
	patientRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/patient"
	configRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/scheduleconfig"
	dayRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/scheduleday"
	sessionRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/session"
	typeRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/sessiontype"
	slotRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/timeslot"
	workerRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/worker"
	scheduleService "github.com/dosuclinic/DosuSchedulerService/internal/service/schedule"
	configService "github.com/dosuclinic/DosuSchedulerService/internal/service/scheduleconfig"
	createSessionUC "github.com/dosuclinic/DosuSchedulerService/internal/usecase/create_session"
	deleteSessionUC "github.com/dosuclinic/DosuSchedulerService/internal/usecase/delete_session"
	rescheduleSessionUC "github.com/dosuclinic/DosuSchedulerService/internal/usecase/reschedule_session"
	updateStatusUC "github.com/dosuclinic/DosuSchedulerService/internal/usecase/update_session_status"
	"github.com/dosuclinic/DosuSchedulerService/pkg/dbmetrics"
	"github.com/dosuclinic/DosuSchedulerService/pkg/logger"
	"github.com/dosuclinic/DosuSchedulerService/pkg/metrics"
	"github.com/dosuclinic/DosuSchedulerService/pkg/simpletxmanager"
	"github.com/dosuclinic/DosuSchedulerService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting DosuSchedulerService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории (с метриками или без)
	var (
		sessionRepository *sessionRepo.Repository
		dayRepository     *dayRepo.Repository
		slotRepository    *slotRepo.Repository
		typeRepository    *typeRepo.Repository
		workerRepository  *workerRepo.Repository
		patientRepository *patientRepo.Repository
		configRepository  *configRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	// TODO: вынести общий интерфейс в pkg, чтобы не объявлять его в main
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		dayRepository = dayRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		typeRepository = typeRepo.NewRepository(wrappedDB)
		workerRepository = workerRepo.NewRepository(wrappedDB)
		patientRepository = patientRepo.NewRepository(wrappedDB)
		configRepository = configRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		sessionRepository = sessionRepo.NewRepository(db)
		dayRepository = dayRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		typeRepository = typeRepo.NewRepository(db)
		workerRepository = workerRepo.NewRepository(db)
		patientRepository = patientRepo.NewRepository(db)
		configRepository = configRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	configSvc := configService.NewService(
		configRepository,
		txMgr,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		sessionRepository,
		configSvc,
		log,
	)

	// Инициализируем use cases
	createSessionUseCase := createSessionUC.NewUseCase(
		sessionRepository,
		dayRepository,
		slotRepository,
		typeRepository,
		workerRepository,
		patientRepository,
		txMgr,
		log,
	)

	rescheduleSessionUseCase := rescheduleSessionUC.NewUseCase(
		sessionRepository,
		dayRepository,
		slotRepository,
		typeRepository,
		workerRepository,
		txMgr,
		log,
	)

	updateStatusUseCase := updateStatusUC.NewUseCase(
		sessionRepository,
		dayRepository,
		slotRepository,
		typeRepository,
		txMgr,
		log,
	)

	deleteSessionUseCase := deleteSessionUC.NewUseCase(
		sessionRepository,
		slotRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createSession := createSessionHandler.NewHandler(createSessionUseCase, log)
	getSession := getSessionHandler.NewHandler(scheduleSvc, log)
	rescheduleSession := rescheduleSessionHandler.NewHandler(rescheduleSessionUseCase, log)
	updateStatus := updateStatusHandler.NewHandler(updateStatusUseCase, log)
	deleteSession := deleteSessionHandler.NewHandler(deleteSessionUseCase, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	listConfigs := listConfigsHandler.NewHandler(configSvc, log)
	resolveConfig := resolveConfigHandler.NewHandler(configSvc, log)
	createConfig := createConfigHandler.NewHandler(configSvc, log)
	updateConfig := updateConfigHandler.NewHandler(configSvc, log)
	deleteConfig := deleteConfigHandler.NewHandler(configSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расписание дня или месяца
	api.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodPost)

	// Карточка сеанса
	api.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)

	// Конфигурации расписания
	api.HandleFunc("/configs", listConfigs.Handle).Methods(http.MethodGet)
	api.HandleFunc("/configs/{year}/{month}", resolveConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Сеансы ---
	// Запись на сеанс
	protected.HandleFunc("/sessions", createSession.Handle).Methods(http.MethodPost)

	// Перенос сеанса на другие дату/кабинет/слот
	protected.HandleFunc("/sessions/{sessionId}/schedule", rescheduleSession.Handle).Methods(http.MethodPatch)

	// Смена статуса сеанса (active/canceled/noshow)
	protected.HandleFunc("/sessions/{sessionId}/status", updateStatus.Handle).Methods(http.MethodPatch)

	// Удаление сеанса
	protected.HandleFunc("/sessions/{sessionId}", deleteSession.Handle).Methods(http.MethodDelete)

	// --- Управление конфигурациями (для администраторов) ---
	protected.HandleFunc("/configs", createConfig.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/configs/{configId}", updateConfig.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/configs/{configId}", deleteConfig.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
