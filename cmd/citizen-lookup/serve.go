package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/bigkaa/citizen-lookup/internal/api/generated"
	"github.com/bigkaa/citizen-lookup/internal/api/handlers"
	"github.com/bigkaa/citizen-lookup/internal/api/middleware"
	"github.com/bigkaa/citizen-lookup/internal/auth"
	"github.com/bigkaa/citizen-lookup/internal/config"
	"github.com/bigkaa/citizen-lookup/internal/database"
	"github.com/bigkaa/citizen-lookup/internal/ingest"
	"github.com/bigkaa/citizen-lookup/internal/repository"
	"github.com/bigkaa/citizen-lookup/internal/server"
	"github.com/bigkaa/citizen-lookup/internal/service"
	"github.com/bigkaa/citizen-lookup/internal/storage/recordstore"
)

// serviceID — имя вершины графа зависимостей в topologymetrics.
const serviceID = "citizen-lookup"

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Запустить HTTP API (конфигурация из переменных окружения CL_*)",
		Action: func(ctx context.Context, _ *cli.Command) error {
			return serve(ctx)
		},
	}
}

// serve загружает конфигурацию и данные, собирает HTTP-стек и блокируется
// до SIGINT/SIGTERM.
func serve(ctx context.Context) error {
	// 1. Конфигурация и логгер
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}
	logger := config.SetupLogger(cfg)
	logger.Info("Citizen Lookup запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Хранилище записей и начальная загрузка
	store := recordstore.New(logger)
	loader := ingest.NewLoader(store, logger)

	primary := ingest.Source{Name: "primary", Path: cfg.DataPrimaryCSV, Format: ingest.FormatCSV}
	secondary := ingest.Source{Name: "secondary", Path: cfg.DataSecondaryCSV, Format: ingest.FormatCSV}
	excel := ingest.Source{Name: "excel", Path: cfg.DataExcel, Format: ingest.FormatExcel}

	reloadAll := func(ctx context.Context) error {
		_, err := loader.Load(ctx, primary, secondary, excel)
		return err
	}
	if err := reloadAll(ctx); err != nil {
		// Сервис стартует без данных, /health/ready вернёт 503
		logger.Warn("Начальная загрузка данных не удалась", slog.String("error", err.Error()))
	}

	// 3. Журнал поиска: память или PostgreSQL
	var (
		history   repository.HistoryRepository
		pgChecker handlers.ReadinessChecker
		target    service.DephealthTarget
	)
	if cfg.UsesPostgres() {
		logger.Info("Применение миграций БД...")
		if err := database.Migrate(cfg, logger); err != nil {
			return fmt.Errorf("ошибка миграций БД: %w", err)
		}
		pool, err := database.Connect(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer pool.Close()

		// Адаптер pgxpool → *sql.DB для topologymetrics
		pgDB := stdlib.OpenDBFromPool(pool)
		defer func() { _ = pgDB.Close() }()

		history = repository.NewHistoryRepository(pool)
		pgChecker = database.NewReadinessChecker(pool)
		target.DB = pgDB
		target.PostgresURL = cfg.DatabaseURL("postgres")
	} else {
		history = repository.NewMemoryHistoryRepository()
	}

	search := service.NewSearchService(store, history, logger)

	// 4. Аутентификация
	verifier, err := auth.NewStaticVerifier(cfg.AdminUsername, cfg.AdminPassword, cfg.AdminPasswordHash, logger)
	if err != nil {
		return fmt.Errorf("ошибка настройки учётной записи администратора: %w", err)
	}
	if cfg.SessionSecret == "" {
		logger.Warn("CL_SESSION_SECRET не задан, сессии не сохраняются между рестартами")
	}
	sessions, err := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL, cfg.CookieSecure, nil)
	if err != nil {
		return fmt.Errorf("ошибка создания менеджера сессий: %w", err)
	}

	var bearer *middleware.BearerAuth
	if cfg.JWKSUrl != "" {
		bearer, err = middleware.NewBearerAuth(cfg.JWKSUrl, cfg.JWKSRefreshInterval, cfg.JWTLeeway, logger)
		if err != nil {
			return fmt.Errorf("ошибка создания JWT middleware: %w", err)
		}
		target.JWKSURL = cfg.JWKSUrl
		logger.Info("Bearer-аутентификация включена", slog.String("jwks_url", cfg.JWKSUrl))
	}
	authn := middleware.NewAuthenticator(sessions, bearer, logger)

	// 5. OpenAPI-контракт
	doc, err := generated.GetSwagger()
	if err != nil {
		return fmt.Errorf("ошибка загрузки OpenAPI-документа: %w", err)
	}
	specHandler, err := handlers.NewSpecHandler(doc)
	if err != nil {
		return err
	}

	// 6. Handlers
	apiHandler := handlers.NewAPIHandler(
		handlers.NewUsersHandler(search, cfg.DefaultPageSize, cfg.MaxPageSize, logger),
		handlers.NewHistoryHandler(search, logger),
		handlers.NewReloadHandler(loader, primary, excel, logger),
		handlers.NewAuthHandler(verifier, sessions, logger),
		handlers.NewHealthHandler(store, pgChecker),
		specHandler,
	)

	// 7. Middleware: metrics → logging → auth → validation
	middlewares := []func(http.Handler) http.Handler{
		middleware.MetricsMiddleware(),
		middleware.RequestLogger(logger),
		middleware.WithExclusions(authn.Middleware(), []string{"/api/"}, "/api/login", "/api/auth/status"),
	}
	if cfg.OpenAPIValidation {
		validator, err := middleware.OpenAPIValidator(doc, logger)
		if err != nil {
			return fmt.Errorf("ошибка создания OpenAPI-валидатора: %w", err)
		}
		middlewares = append(middlewares, validator)
	}

	srv := server.New(cfg, logger, apiHandler, middlewares...)

	// 8. topologymetrics
	dephealthSvc, err := service.NewDephealthService(serviceID, cfg.DephealthGroup, target,
		cfg.DephealthCheckInterval, logger)
	switch {
	case errors.Is(err, service.ErrNoDependencies):
		logger.Debug("topologymetrics: внешних зависимостей нет")
	case err != nil:
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", err.Error()),
		)
	default:
		if startErr := dephealthSvc.Start(ctx); startErr != nil {
			logger.Warn("Ошибка запуска topologymetrics", slog.String("error", startErr.Error()))
		} else {
			defer dephealthSvc.Stop()
		}
	}

	// 9. HTTP-сервер и наблюдение за файлом данных
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})

	if cfg.DataWatch {
		watcher, err := ingest.NewWatcher(cfg.DataPrimaryCSV, cfg.DataWatchDebounce, reloadAll, logger)
		if err != nil {
			logger.Warn("Наблюдение за файлом данных недоступно", slog.String("error", err.Error()))
		} else {
			g.Go(func() error {
				return watcher.Run(gctx)
			})
		}
	}

	if err := g.Wait(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Citizen Lookup остановлен")
	return nil
}
