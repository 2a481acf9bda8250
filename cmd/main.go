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

	cancelAppointmentHandler "github.com/agendly/appointment-service/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/agendly/appointment-service/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/agendly/appointment-service/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/agendly/appointment-service/internal/api/handlers/get_available_slots"
	getCalendarConfigHandler "github.com/agendly/appointment-service/internal/api/handlers/get_calendar_config"
	getTenantAppointmentsHandler "github.com/agendly/appointment-service/internal/api/handlers/get_tenant_appointments"
	getUserAppointmentsHandler "github.com/agendly/appointment-service/internal/api/handlers/get_user_appointments"
	rescheduleAppointmentHandler "github.com/agendly/appointment-service/internal/api/handlers/reschedule_appointment"
	updateAppointmentStatusHandler "github.com/agendly/appointment-service/internal/api/handlers/update_appointment_status"
	updateCalendarConfigHandler "github.com/agendly/appointment-service/internal/api/handlers/update_calendar_config"
	validateSlotHandler "github.com/agendly/appointment-service/internal/api/handlers/validate_slot"
	"github.com/agendly/appointment-service/internal/api/middleware"
	"github.com/agendly/appointment-service/internal/config"
	appointmentRepo "github.com/agendly/appointment-service/internal/infra/storage/appointment"
	calendarRepo "github.com/agendly/appointment-service/internal/infra/storage/calendar"
	catalogServiceClient "github.com/agendly/appointment-service/internal/integrations/catalogservice"
	appointmentsService "github.com/agendly/appointment-service/internal/service/appointments"
	calendarService "github.com/agendly/appointment-service/internal/service/calendar"
	createAppointmentUC "github.com/agendly/appointment-service/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/agendly/appointment-service/internal/usecase/get_available_slots"
	rescheduleAppointmentUC "github.com/agendly/appointment-service/internal/usecase/reschedule_appointment"
	validateSlotUC "github.com/agendly/appointment-service/internal/usecase/validate_slot"
	"github.com/agendly/appointment-service/pkg/dbmetrics"
	"github.com/agendly/appointment-service/pkg/logger"
	"github.com/agendly/appointment-service/pkg/metrics"
	"github.com/agendly/appointment-service/pkg/simpletxmanager"
	"github.com/agendly/appointment-service/pkg/txmanager"
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

	log.Info("Starting appointment-service...")
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

	// Инициализируем клиента каталога услуг
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		calendarRepository    *calendarRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		calendarRepository = calendarRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		calendarRepository = calendarRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		calendarRepository,
		txMgr,
		&appointmentsService.RealTimeProvider{},
		log,
	)
	calendarSvc := calendarService.NewService(calendarRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		calendarRepository,
		catalogClient,
		&getAvailableSlotsUC.RealTimeProvider{},
		log,
	)

	validateSlotUseCase := validateSlotUC.NewUseCase(
		appointmentRepository,
		calendarRepository,
		catalogClient,
		&validateSlotUC.RealTimeProvider{},
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		calendarRepository,
		catalogClient,
		txMgr,
		&createAppointmentUC.RealTimeProvider{},
		log,
	)

	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		calendarRepository,
		txMgr,
		&rescheduleAppointmentUC.RealTimeProvider{},
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	validateSlot := validateSlotHandler.NewHandler(validateSlotUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentSvc, log)
	getTenantAppointments := getTenantAppointmentsHandler.NewHandler(appointmentSvc, log)
	getCalendarConfig := getCalendarConfigHandler.NewHandler(calendarSvc, log)
	updateCalendarConfig := updateCalendarConfigHandler.NewHandler(calendarSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
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

	// Сетка доступных слотов на дату
	api.HandleFunc("/tenants/{tenantId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Проверка одного окна кандидата
	api.HandleFunc("/tenants/{tenantId}/slot-validation",
		validateSlot.Handle).Methods(http.MethodPost)

	// Конфигурация календаря арендатора
	api.HandleFunc("/tenants/{tenantId}/calendar-config",
		getCalendarConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи на приём ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Перенос записи на новое окно
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Смена статуса записи (для администраторов)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// История записей пользователя
	protected.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)

	// --- Управление арендатором (для администраторов) ---
	// Список записей арендатора
	protected.HandleFunc("/tenants/{tenantId}/appointments", getTenantAppointments.Handle).Methods(http.MethodGet)

	// Обновление конфигурации календаря
	protected.HandleFunc("/tenants/{tenantId}/calendar-config", updateCalendarConfig.Handle).Methods(http.MethodPut)

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
