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
	"github.com/redis/go-redis/v9"

	acceptBookingHandler "github.com/vkorolev/CPS-ConsultationService/internal/api/handlers/accept_booking"
	applyCandidateHandler "github.com/vkorolev/CPS-ConsultationService/internal/api/handlers/apply_candidate"
	approveCandidateHandler "github.com/vkorolev/CPS-ConsultationService/internal/api/handlers/approve_candidate"
	blockSpecialistHandler "github.com/vkorolev/CPS-ConsultationService/internal/api/handlers/block_specialist"
	blockUserHandler "github.com/vkorolev/CPS-ConsultationService/internal/api/handlers/block_user"
	cancelBookingHandler "github.com/vkorolev/CPS-ConsultationService/internal/api/handlers/cancel_booking"
	cancelConsultationHandler "github.com/vkorolev/CPS-ConsultationService/internal/api/handlers/cancel_consultation"
	confirmEmailHandler "github.com/vkorolev/CPS-ConsultationService/internal/api/handlers/confirm_email"
	createBookingHandler "github.com/vkorolev/CPS-ConsultationService/internal/api/handlers/create_booking"
	createConsultationHandler "github.com/vkorolev/CPS-ConsultationService/internal/api/handlers/create_consultation"
	getBookingHandler "github.com/vkorolev/CPS-ConsultationService/internal/api/handlers/get_booking"
	getCandidateHandler "github.com/vkorolev/CPS-ConsultationService/internal/api/handlers/get_candidate"
	getConsultationHandler "github.com/vkorolev/CPS-ConsultationService/internal/api/handlers/get_consultation"
	getSpecialistHandler "github.com/vkorolev/CPS-ConsultationService/internal/api/handlers/get_specialist"
	getUserHandler "github.com/vkorolev/CPS-ConsultationService/internal/api/handlers/get_user"
	listBookingsHandler "github.com/vkorolev/CPS-ConsultationService/internal/api/handlers/list_bookings"
	listCandidatesHandler "github.com/vkorolev/CPS-ConsultationService/internal/api/handlers/list_candidates"
	listConsultationsHandler "github.com/vkorolev/CPS-ConsultationService/internal/api/handlers/list_consultations"
	listSpecialistsHandler "github.com/vkorolev/CPS-ConsultationService/internal/api/handlers/list_specialists"
	reapplyCandidateHandler "github.com/vkorolev/CPS-ConsultationService/internal/api/handlers/reapply_candidate"
	rejectCandidateHandler "github.com/vkorolev/CPS-ConsultationService/internal/api/handlers/reject_candidate"
	requestEmailVerificationHandler "github.com/vkorolev/CPS-ConsultationService/internal/api/handlers/request_email_verification"
	unblockSpecialistHandler "github.com/vkorolev/CPS-ConsultationService/internal/api/handlers/unblock_specialist"
	unblockUserHandler "github.com/vkorolev/CPS-ConsultationService/internal/api/handlers/unblock_user"
	updateBookingHandler "github.com/vkorolev/CPS-ConsultationService/internal/api/handlers/update_booking"
	updateConsultationHandler "github.com/vkorolev/CPS-ConsultationService/internal/api/handlers/update_consultation"
	updateSpecialistHandler "github.com/vkorolev/CPS-ConsultationService/internal/api/handlers/update_specialist"
	"github.com/vkorolev/CPS-ConsultationService/internal/api/middleware"
	"github.com/vkorolev/CPS-ConsultationService/internal/config"
	"github.com/vkorolev/CPS-ConsultationService/internal/infra/cache"
	"github.com/vkorolev/CPS-ConsultationService/internal/infra/scheduler"
	bookingRepo "github.com/vkorolev/CPS-ConsultationService/internal/infra/storage/booking"
	candidateRepo "github.com/vkorolev/CPS-ConsultationService/internal/infra/storage/candidate"
	consultationRepo "github.com/vkorolev/CPS-ConsultationService/internal/infra/storage/consultation"
	specialistRepo "github.com/vkorolev/CPS-ConsultationService/internal/infra/storage/specialist"
	taskRepo "github.com/vkorolev/CPS-ConsultationService/internal/infra/storage/task"
	userRepo "github.com/vkorolev/CPS-ConsultationService/internal/infra/storage/user"
	notifyServiceClient "github.com/vkorolev/CPS-ConsultationService/internal/integrations/notifyservice"
	bookingsService "github.com/vkorolev/CPS-ConsultationService/internal/service/bookings"
	candidatesService "github.com/vkorolev/CPS-ConsultationService/internal/service/candidates"
	consultationsService "github.com/vkorolev/CPS-ConsultationService/internal/service/consultations"
	specialistsService "github.com/vkorolev/CPS-ConsultationService/internal/service/specialists"
	usersService "github.com/vkorolev/CPS-ConsultationService/internal/service/users"
	acceptBookingUC "github.com/vkorolev/CPS-ConsultationService/internal/usecase/accept_booking"
	createBookingUC "github.com/vkorolev/CPS-ConsultationService/internal/usecase/create_booking"
	createConsultationUC "github.com/vkorolev/CPS-ConsultationService/internal/usecase/create_consultation"
	"github.com/vkorolev/CPS-ConsultationService/migrations"
	"github.com/vkorolev/CPS-ConsultationService/pkg/logger"
	"github.com/vkorolev/CPS-ConsultationService/pkg/metrics"
	"github.com/vkorolev/CPS-ConsultationService/pkg/txmanager"
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

	log.Info("Starting CPS-ConsultationService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Применяем миграции
	if err := migrations.Up(db); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Database migrations applied")

	// Подключаемся к Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	invalidator := cache.NewInvalidator(redisClient, log)
	log.Info("Redis cache invalidator initialized (addr=%s)", cfg.Redis.Addr)

	// Инициализируем клиента сервиса уведомлений
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("NotifyService client initialized (url=%s, timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории
	consultationRepository := consultationRepo.NewRepository(db)
	bookingRepository := bookingRepo.NewRepository(db)
	candidateRepository := candidateRepo.NewRepository(db)
	specialistRepository := specialistRepo.NewRepository(db)
	userRepository := userRepo.NewRepository(db)
	taskRepository := taskRepo.NewRepository(db)

	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем планировщик отложенных задач
	taskScheduler := scheduler.New(taskRepository, log)

	// Инициализируем сервисы
	consultationSvc := consultationsService.NewService(
		consultationRepository,
		bookingRepository,
		taskScheduler,
		invalidator,
		notifyClient,
		txMgr,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		consultationRepository,
		invalidator,
		notifyClient,
		txMgr,
		log,
	)
	candidateSvc := candidatesService.NewService(
		candidateRepository,
		specialistRepository,
		invalidator,
		notifyClient,
		txMgr,
		log,
	)
	specialistSvc := specialistsService.NewService(
		specialistRepository,
		consultationRepository,
		bookingRepository,
		taskScheduler,
		invalidator,
		notifyClient,
		txMgr,
		log,
	)
	userSvc := usersService.NewService(userRepository, notifyClient, log)

	// Инициализируем use cases
	createConsultationUseCase := createConsultationUC.NewUseCase(
		consultationRepository,
		specialistRepository,
		taskScheduler,
		invalidator,
		txMgr,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		consultationRepository,
		invalidator,
		notifyClient,
		txMgr,
		log,
	)
	acceptBookingUseCase := acceptBookingUC.NewUseCase(
		bookingRepository,
		consultationRepository,
		invalidator,
		notifyClient,
		txMgr,
		log,
	)

	// Запускаем воркер отложенных задач
	worker := scheduler.NewWorker(
		taskRepository,
		consultationSvc,
		txMgr,
		metricsCollector,
		log,
		time.Duration(cfg.Scheduler.PollInterval)*time.Second,
	)
	worker.Start(context.Background())
	log.Info("Scheduled tasks worker started (poll interval=%ds)", cfg.Scheduler.PollInterval)

	// Инициализируем handlers
	createConsultation := createConsultationHandler.NewHandler(createConsultationUseCase, log)
	getConsultation := getConsultationHandler.NewHandler(consultationSvc, log)
	listConsultations := listConsultationsHandler.NewHandler(consultationSvc, log)
	updateConsultation := updateConsultationHandler.NewHandler(consultationSvc, log)
	cancelConsultation := cancelConsultationHandler.NewHandler(consultationSvc, log)

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	acceptBooking := acceptBookingHandler.NewHandler(acceptBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)

	applyCandidate := applyCandidateHandler.NewHandler(candidateSvc, log)
	getCandidate := getCandidateHandler.NewHandler(candidateSvc, log)
	listCandidates := listCandidatesHandler.NewHandler(candidateSvc, log)
	approveCandidate := approveCandidateHandler.NewHandler(candidateSvc, log)
	rejectCandidate := rejectCandidateHandler.NewHandler(candidateSvc, log)
	reapplyCandidate := reapplyCandidateHandler.NewHandler(candidateSvc, log)

	getSpecialist := getSpecialistHandler.NewHandler(specialistSvc, log)
	listSpecialists := listSpecialistsHandler.NewHandler(specialistSvc, log)
	updateSpecialist := updateSpecialistHandler.NewHandler(specialistSvc, log)
	blockSpecialist := blockSpecialistHandler.NewHandler(specialistSvc, log)
	unblockSpecialist := unblockSpecialistHandler.NewHandler(specialistSvc, log)

	getUser := getUserHandler.NewHandler(userSvc, log)
	blockUser := blockUserHandler.NewHandler(userSvc, log)
	unblockUser := unblockUserHandler.NewHandler(userSvc, log)
	requestEmailVerification := requestEmailVerificationHandler.NewHandler(userSvc, log)
	confirmEmail := confirmEmailHandler.NewHandler(userSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// PUBLIC ROUTES (без аутентификации)
	api.HandleFunc("/consultations", listConsultations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/consultations/{id}", getConsultation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/specialists/{userId}", getSpecialist.Handle).Methods(http.MethodGet)

	// PROTECTED ROUTES (требуют X-User-ID header)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Консультации ---
	protected.HandleFunc("/consultations", createConsultation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/consultations/{id}", updateConsultation.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/consultations/{id}", cancelConsultation.Handle).Methods(http.MethodDelete)

	// --- Заявки ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id}", updateBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{id}/accept", acceptBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{id}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// --- Кандидатуры ---
	protected.HandleFunc("/candidates", applyCandidate.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/candidates", listCandidates.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/candidates/me", getCandidate.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/candidates/reapply", reapplyCandidate.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/candidates/{userId}/approve", approveCandidate.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/candidates/{userId}/reject", rejectCandidate.Handle).Methods(http.MethodPost)

	// --- Специалисты ---
	protected.HandleFunc("/specialists", listSpecialists.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/specialists/{userId}", updateSpecialist.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/specialists/{userId}/block", blockSpecialist.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/specialists/{userId}/unblock", unblockSpecialist.Handle).Methods(http.MethodPost)

	// --- Пользователи ---
	protected.HandleFunc("/users/me/verify-email", requestEmailVerification.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/me/confirm-email", confirmEmail.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{id}", getUser.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{id}/block", blockUser.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{id}/unblock", unblockUser.Handle).Methods(http.MethodPost)

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

	worker.Stop()
	log.Info("Scheduled tasks worker stopped")

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
