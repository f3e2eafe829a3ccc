package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"academixstore-admin/internal/access"
	"academixstore-admin/internal/api"
	"academixstore-admin/internal/colleges"
	"academixstore-admin/internal/config"
	"academixstore-admin/internal/dashboard"
	"academixstore-admin/internal/health"
	"academixstore-admin/internal/logger"
	"academixstore-admin/internal/metrics"
	"academixstore-admin/internal/middleware"
	"academixstore-admin/internal/notify"
	"academixstore-admin/internal/students"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
)

type App struct {
	config    *config.Config
	router    chi.Router
	server    *http.Server
	logger    *slog.Logger
	notifier  notify.Notifier
	health    *health.Handler
	students  *students.Controller
	colleges  *colleges.Controller
	dashboard *dashboard.Controller
}

func New() *App {
	slogLogger := logger.NewWithServiceContext(ServiceName, Version)

	// Set as default logger so slog.Info() uses the same handler
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application", "build", BuildInfo())

	cfg, err := config.Load()
	if err != nil {
		slogLogger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slogLogger.Info("config loaded", "env", cfg.Env, "api", cfg.API.BaseURL)

	return NewWithConfig(cfg, slogLogger)
}

// NewWithConfig wires every component from an already loaded config.
func NewWithConfig(cfg *config.Config, slogLogger *slog.Logger) *App {
	app := &App{
		config: cfg,
		router: chi.NewRouter(),
		logger: slogLogger,
		health: health.NewHandler(),
	}

	m, err := metrics.New(otel.Meter(ServiceName))
	if err != nil {
		slogLogger.Warn("failed to initialize metrics", "error", err)
		m = nil
	}

	client := api.NewClient(
		cfg.API.BaseURL,
		cfg.API.Token,
		time.Duration(cfg.API.TimeoutSeconds)*time.Second,
		slogLogger,
	)
	gate := newAccessGate(cfg, slogLogger)
	app.notifier = newNotifier(cfg.Notifications, slogLogger)

	app.students = students.NewController(client, gate, app.notifier, slogLogger, m, cfg.API.PageSize)
	app.colleges = colleges.NewController(client, slogLogger, m, cfg.API.PageSize)
	app.dashboard = dashboard.NewController(client, slogLogger, m, cfg.API.ActivityLimit)

	app.router.Use(middleware.RequestLogger(slogLogger))
	app.router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	// Health endpoints (no auth required)
	app.health.RegisterRoutes(app.router)

	app.router.Route("/api", func(r chi.Router) {
		students.NewHandler(app.students, slogLogger).RegisterRoutes(r)
		colleges.NewHandler(app.colleges, slogLogger).RegisterRoutes(r)
		dashboard.NewHandler(app.dashboard, slogLogger).RegisterRoutes(r)
	})

	slogLogger.Info("application initialized successfully",
		"role", gate.Role(),
		"api", cfg.API.BaseURL,
		"notifier", app.NotifierDriver(),
	)

	return app
}

func newAccessGate(cfg *config.Config, logger *slog.Logger) *access.RoleAccess {
	var policy access.Policy
	if len(cfg.Access.Policy) > 0 {
		policy = access.Policy(cfg.Access.Policy)
	}
	if cfg.API.Token == "" {
		logger.Warn("no API token configured, write operations are disabled")
		return access.New("", policy)
	}
	gate, err := access.FromToken(cfg.API.Token, policy)
	if err != nil {
		logger.Warn("failed to read role from API token, write operations are disabled", "error", err)
		return access.New("", policy)
	}
	return gate
}

func newNotifier(cfg config.NotificationsConfig, logger *slog.Logger) notify.Notifier {
	switch cfg.Driver {
	case config.DriverNATS:
		n, err := notify.NewNATSNotifier(cfg.NATS.URL, cfg.NATS.Subject, logger)
		if err == nil {
			return n
		}
		logger.Warn("failed to initialize NATS notifier, falling back to log", "error", err)
	case config.DriverKafka:
		n, err := notify.NewKafkaNotifier(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		if err == nil {
			return n
		}
		logger.Warn("failed to initialize Kafka notifier, falling back to log", "error", err)
	}
	return notify.NewLogNotifier(logger)
}

func (a *App) APIBaseURL() string {
	return a.config.API.BaseURL
}

// NotifierDriver reports the notification transport actually in use, which is
// "log" when the configured broker could not be reached.
func (a *App) NotifierDriver() string {
	switch a.notifier.(type) {
	case *notify.NATSNotifier:
		return config.DriverNATS
	case *notify.KafkaNotifier:
		return config.DriverKafka
	default:
		return config.DriverLog
	}
}

func (a *App) Handler() http.Handler {
	return a.router
}

// Run performs the initial loads in the background and serves HTTP until
// Shutdown is called.
func (a *App) Run() error {
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.config.Server.IdleTimeout) * time.Second,
	}

	go a.Preload(context.Background())

	a.logger.Info("server starting", "port", a.config.Server.Port)
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Preload fetches the first page of every list and then marks the service
// ready. Load failures are kept in controller state, not returned.
func (a *App) Preload(ctx context.Context) {
	a.students.LoadStudents(ctx, false)
	a.colleges.LoadColleges(ctx, false)
	a.dashboard.LoadDashboard(ctx)

	if msg := a.students.State().Error; msg != "" {
		a.logger.WarnContext(ctx, "initial students load failed", "error", msg)
	}
	a.health.MarkReady()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")

	var err error
	if a.server != nil {
		err = a.server.Shutdown(ctx)
	}
	if closer, ok := a.notifier.(io.Closer); ok {
		if cerr := closer.Close(); cerr != nil {
			a.logger.Warn("failed to close notifier", "error", cerr)
		}
	}
	return err
}
