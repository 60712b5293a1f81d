package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"FarmDashboard/internal/config"
	"FarmDashboard/internal/family"
	"FarmDashboard/internal/infrastructure/httpapi"
	"FarmDashboard/internal/infrastructure/metrics"
	"FarmDashboard/internal/infrastructure/storage"
	"FarmDashboard/internal/logging"
	"FarmDashboard/internal/ports"
	"FarmDashboard/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg    config.Config
	db     *sql.DB
	server *httpapi.Server
	logger *slog.Logger
}

// New opens the store and builds the HTTP server.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging)
	}

	db, driver, err := storage.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	baseLogger.Info("store connected", "driver", driver)

	app := &Application{cfg: cfg, db: db, logger: baseLogger}
	app.server = app.buildServer(storage.NewSQLRepository(db, driver))
	return app, nil
}

func (a *Application) buildServer(source ports.RecordSource) *httpapi.Server {
	recorder := metrics.NewRecorder()

	dashboard := usecase.NewDashboard(usecase.DashboardDeps{
		Source:   source,
		Families: family.Defaults(),
		Metrics:  recorder,
		Location: a.cfg.Report.Location(),
		Logger:   a.logger.With("component", "dashboard"),
	})

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Dashboard:      httpapi.NewDashboardHandler(dashboard, a.logger.With("component", "http")),
		AuthMiddleware: httpapi.NewAuthMiddleware(a.cfg.Auth.JWTSecret, a.cfg.Auth.Roles),
		Metrics:        recorder.Handler(),
	})
	if a.cfg.Auth.JWTSecret == "" {
		a.logger.Warn("auth disabled: no jwt secret configured")
	}

	return httpapi.NewServer(a.cfg.HTTP.Addr, router, a.cfg.HTTP.ReadTimeout, a.cfg.HTTP.ShutdownTimeout,
		a.logger.With("component", "server"))
}

// Run serves HTTP until ctx is cancelled and closes the store afterwards.
func (a *Application) Run(ctx context.Context) error {
	defer func() {
		if err := a.db.Close(); err != nil {
			a.logger.Error("close store", "error", err)
		}
	}()

	return a.server.Run(ctx)
}
