package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/smart-recruiter/internal"
	"github.com/frahmantamala/smart-recruiter/internal/analytics"
	"github.com/frahmantamala/smart-recruiter/internal/applicant"
	applicantPostgres "github.com/frahmantamala/smart-recruiter/internal/applicant/postgres"
	"github.com/frahmantamala/smart-recruiter/internal/core/database"
	"github.com/frahmantamala/smart-recruiter/internal/core/events"
	"github.com/frahmantamala/smart-recruiter/internal/employee"
	employeePostgres "github.com/frahmantamala/smart-recruiter/internal/employee/postgres"
	"github.com/frahmantamala/smart-recruiter/internal/history"
	historyPostgres "github.com/frahmantamala/smart-recruiter/internal/history/postgres"
	"github.com/frahmantamala/smart-recruiter/internal/interview"
	interviewPostgres "github.com/frahmantamala/smart-recruiter/internal/interview/postgres"
	"github.com/frahmantamala/smart-recruiter/internal/job"
	jobPostgres "github.com/frahmantamala/smart-recruiter/internal/job/postgres"
	"github.com/frahmantamala/smart-recruiter/internal/lifecycle"
	"github.com/frahmantamala/smart-recruiter/internal/mailer"
	"github.com/frahmantamala/smart-recruiter/internal/notification"
	notificationPostgres "github.com/frahmantamala/smart-recruiter/internal/notification/postgres"
	"github.com/frahmantamala/smart-recruiter/internal/screening"
	"github.com/frahmantamala/smart-recruiter/internal/session"
	sessionPostgres "github.com/frahmantamala/smart-recruiter/internal/session/postgres"
	"github.com/frahmantamala/smart-recruiter/internal/transport"
	"github.com/frahmantamala/smart-recruiter/internal/transport/rest"
	"github.com/frahmantamala/smart-recruiter/internal/transport/swagger"
	"github.com/frahmantamala/smart-recruiter/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config    *internal.Config
	DB        *sqlx.DB
	Router    *chi.Mux
	Logger    *slog.Logger
	EventBus  *events.EventBus
	MailRelay *mailer.Relay
	Kafka     *events.KafkaRelay
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}
	lg := deps.Logger

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	lg.Info("Starting HTTP server", "address", addr, "email_enabled", deps.MailRelay != nil, "kafka_enabled", deps.Kafka != nil)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		lg.Info("Received signal, shutting down...", "signal", sig)
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		lg.Error("Server shutdown error", "error", err)
	}
	shutdownBackground(ctx, deps)
	if err := deps.DB.Close(); err != nil {
		lg.Error("Database close error", "error", err)
	}

	lg.Info("Server stopped")
}

// shutdownBackground drains async work once no new requests can arrive.
func shutdownBackground(ctx context.Context, deps *Dependencies) {
	deps.EventBus.Wait()
	if deps.Kafka != nil {
		deps.Kafka.Close()
	}
	if deps.MailRelay != nil {
		deps.MailRelay.Shutdown(ctx)
		delivered, failed := deps.MailRelay.Stats()
		deps.Logger.Info("mail relay drained", "delivered", delivered, "failed", failed)
	}
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Env, cfg.Observability.Logging.Level)
	lg := logger.LoggerWrapper()

	sqlDB, err := database.Open(cfg.Database, lg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	gormDB, err := database.OpenGorm(sqlDB.DB, cfg.Env == "development")
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}
	db := database.New(sqlDB)

	deps := &Dependencies{
		Config:   cfg,
		DB:       sqlDB,
		Router:   chi.NewRouter(),
		Logger:   lg,
		EventBus: events.NewEventBus(lg),
	}

	if cfg.Events.KafkaEnabled {
		deps.Kafka = events.NewKafkaRelay(cfg.Events.KafkaBrokers, cfg.Events.KafkaTopic, cfg.Events.BufferSize, lg)
		deps.Kafka.Attach(deps.EventBus)
	}

	var relay notification.Relay
	var mailStats rest.MailStats
	if cfg.Email.Enabled() {
		deps.MailRelay = mailer.NewRelay(mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			From:     cfg.Email.Sender(),
		}), mailer.Config{
			Workers:     cfg.Email.Workers,
			QueueSize:   cfg.Email.QueueSize,
			SendTimeout: cfg.Email.SendTimeout,
		}, lg)
		relay = deps.MailRelay
		mailStats = deps.MailRelay
	} else {
		lg.Warn("email credentials not configured, notifications will only be stored")
	}

	jobRepo := jobPostgres.NewJobRepository(gormDB)
	applicantService := applicant.NewService(applicantPostgres.NewApplicantRepository(gormDB), jobRepo, lg)
	notificationService := notification.NewService(notificationPostgres.NewNotificationRepository(gormDB), relay, lg)
	historyService := history.NewService(historyPostgres.NewHistoryRepository(gormDB), lg)
	sessionService := session.NewService(
		sessionPostgres.NewSessionRepository(gormDB),
		session.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.AccessTokenDuration),
		lg,
	)
	jobService := job.NewService(jobRepo, applicantService, notificationService, deps.EventBus, lg)
	lifecycleService := lifecycle.NewService(lifecycle.Deps{
		Applicants: applicantService,
		Notifier:   notificationService,
		History:    historyService,
		Audit:      sessionService,
		Events:     deps.EventBus,
	}, cfg.Email.ClientURL, lg)

	base := transport.NewBaseHandler(lg)
	handlers := rest.Handlers{
		Health:       rest.NewHealthHandler(db, mailStats),
		Session:      session.NewHandler(base, sessionService),
		Job:          job.NewHandler(base, jobService),
		Applicant:    applicant.NewHandler(base, applicantService),
		Lifecycle:    lifecycle.NewHandler(base, lifecycleService),
		Screening:    screening.NewHandler(base, screening.NewService(applicantService, screening.NewRuleBasedScorer(), lg)),
		Notification: notification.NewHandler(base, notificationService),
		History:      history.NewHandler(base, historyService),
		Employee:     employee.NewHandler(base, employee.NewService(employeePostgres.NewEmployeeRepository(gormDB), historyService, lg)),
		Interview:    interview.NewHandler(base, interview.NewService(interviewPostgres.NewInterviewRepository(gormDB), applicantService, jobService, lg)),
		Analytics:    analytics.NewHandler(base, analytics.NewService(db, lg)),
	}

	if path := cfg.Server.OpenAPIPath; path != "" {
		doc, err := swagger.DocumentHandler(context.Background(), path)
		if err != nil {
			// docs are optional; the API still serves without them
			lg.Warn("openapi document not served", "path", path, "error", err)
		} else {
			handlers.OpenAPI = doc
		}
	}

	rest.RegisterAllRoutes(deps.Router, handlers, rest.RouterOptions{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         lg,
	})

	return deps, nil
}
