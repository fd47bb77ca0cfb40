package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/config"
	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/handler"
	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/middleware"
	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/notification"
	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/repository"
	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/router"
	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/scheduler"
	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/service"
	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/storage"
	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/upload"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/logger"
)

const migrationsDir = "migrations"

type App struct {
	cfg        *config.Config
	log        logger.Logger
	db         *dbpg.DB
	httpServer *http.Server
	scheduler  *scheduler.Scheduler
}

func New(cfg *config.Config) (*App, error) {
	app := &App{cfg: cfg}

	log, err := logger.InitLogger(
		cfg.Logger.LogEngine(),
		"RegistroPCD",
		cfg.Gin.Mode,
		logger.WithLevel(cfg.Logger.LogLevel()),
	)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	app.log = log

	st, err := app.initStorage()
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	if err = app.initServices(st); err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}

	return app, nil
}

// initStorage monta o adaptador de persistência configurado. As migrações e
// a conexão com o banco só entram em cena no modo postgres.
func (a *App) initStorage() (storage.Storage, error) {
	switch a.cfg.Storage.Engine {
	case "memory":
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "storage initialized",
			logger.String("engine", "memory"),
		)
		return storage.NewMemory(), nil

	case "file":
		st, err := storage.NewFile(a.cfg.Storage.Arquivo)
		if err != nil {
			return nil, fmt.Errorf("open storage file: %w", err)
		}
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "storage initialized",
			logger.String("engine", "file"),
			logger.String("path", a.cfg.Storage.Arquivo),
		)
		return st, nil

	case "postgres":
		if err := a.runMigrations(); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
		if err := a.initDB(); err != nil {
			return nil, fmt.Errorf("init db: %w", err)
		}
		return storage.NewPostgres(a.db), nil

	default:
		return nil, fmt.Errorf("unknown storage engine %q", a.cfg.Storage.Engine)
	}
}

func (a *App) initDB() error {
	db, err := dbpg.New(
		a.cfg.Postgres.DSN(),
		nil,
		&dbpg.Options{
			MaxOpenConns: a.cfg.Postgres.MaxOpenConns,
			MaxIdleConns: a.cfg.Postgres.MaxIdleConns,
		},
	)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	if err := db.Master.PingContext(context.Background()); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	a.db = db
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connected",
		logger.String("host", a.cfg.Postgres.Host),
		logger.Int("port", a.cfg.Postgres.Port),
		logger.String("database", a.cfg.Postgres.Database),
	)

	return nil
}

func (a *App) initServices(st storage.Storage) error {
	eventoRepo := repository.NewEventoRepo(st)
	cadastroRepo := repository.NewCadastroRepo(st)

	n, err := notification.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.log)
	if err != nil {
		return fmt.Errorf("init notifier: %w", err)
	}

	uploader, err := upload.NewS3(context.Background(), upload.Config{
		Bucket:          a.cfg.S3.Bucket,
		Region:          a.cfg.S3.Region,
		Endpoint:        a.cfg.S3.Endpoint,
		PathStyle:       a.cfg.S3.PathStyle,
		AccessKeyID:     a.cfg.S3.AccessKeyID,
		SecretAccessKey: a.cfg.S3.SecretAccessKey,
	}, a.log)
	if err != nil {
		return fmt.Errorf("init uploader: %w", err)
	}

	confirmacoes := service.NewConfirmacoes(a.cfg.Confirmacao.TTL)

	eventoService := service.NewEventoService(eventoRepo, cadastroRepo, confirmacoes, a.log)
	cadastroService := service.NewCadastroService(cadastroRepo, eventoRepo, n, confirmacoes, a.log)
	backupService := service.NewBackupService(st, confirmacoes, a.log)

	a.scheduler = scheduler.New(
		eventoService,
		confirmacoes,
		a.cfg.Scheduler.Interval,
		a.log,
	)

	h := handler.NewHandler(eventoService, cadastroService, backupService, uploader)
	r := router.InitRouter(
		a.cfg.Gin.Mode,
		h,
		middleware.RequestID(),
		middleware.RequestLogger(a.log),
		middleware.Recovery(a.log),
	)

	a.httpServer = &http.Server{
		Addr:         a.cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	return nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.scheduler.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.log.LogAttrs(ctx, logger.InfoLevel, "HTTP server starting",
			logger.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		a.cfg.Server.WriteTimeout,
	)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "HTTP server stopped")

	if a.db != nil {
		if err := a.db.Master.Close(); err != nil {
			return fmt.Errorf("close db: %w", err)
		}
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connection closed")
	}

	a.log.LogAttrs(context.Background(), logger.InfoLevel, "app stopped")

	return nil
}

func (a *App) runMigrations() error {
	db, err := sql.Open("postgres", a.cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer db.Close()

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	a.log.Info("migrations applied successfully")
	return nil
}
