package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/avc/smm-panel/internal/config"
)

// App представляет приложение
type App struct {
	config *config.Config
	logger *zap.Logger
	db     *pgxpool.Pool
	router *chi.Mux
	deps   *dependencies
	server *http.Server
}

// NewApp создает новое приложение
func NewApp() (*App, error) {
	ctx := context.Background()

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализация логгера
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	// Инициализация базы данных и миграции
	dbPool, err := initDatabase(ctx, cfg.DatabaseURI, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to database")

	// Инициализация зависимостей
	deps := initDependencies(cfg, dbPool, logger)

	// Настройка роутера
	router := setupRouter(deps, deps.jwtManager, logger)

	// Создание HTTP сервера
	server := createServer(cfg.RunAddress, router)

	return &App{
		config: cfg,
		logger: logger,
		db:     dbPool,
		router: router,
		deps:   deps,
		server: server,
	}, nil
}

// Run запускает приложение
func (a *App) Run() error {
	// Синхронизация каталога при старте. Сбой не фатален: каталог
	// можно пересинхронизировать действием администратора.
	if a.config.SyncOnStart {
		if result, err := a.deps.services.catalog.Sync(context.Background()); err != nil {
			a.logger.Warn("startup catalog sync failed", zap.Error(err))
		} else {
			a.logger.Info("startup catalog sync finished",
				zap.Int("added", result.Added),
				zap.Int("updated", result.Updated),
				zap.Int("errors", result.Errors))
		}
	}

	// Запуск HTTP сервера и ожидание сигнала завершения
	if err := a.runServer(); err != nil {
		return err
	}

	// Graceful shutdown
	a.shutdown()

	return nil
}
