package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/ilyakaznacheev/cleanenv"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	externalcontent "github.com/goliatone/go-external-content"
	"github.com/goliatone/go-external-content/internal/di"
	internalhttp "github.com/goliatone/go-external-content/internal/http"
	"github.com/goliatone/go-external-content/internal/logging"
)

type Config struct {
	HTTP     HTTPConfig
	DB       DBConfig
	Cache    CacheConfig
	Commands CommandsConfig
	Logging  LoggingConfig
}

type HTTPConfig struct {
	Addr            string        `env:"HTTP_ADDR" env-default:":8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type DBConfig struct {
	Driver     string `env:"DB_DRIVER" env-default:"sqlite"`
	SQLitePath string `env:"DB_SQLITE_PATH" env-default:"external_content.db"`
	Host       string `env:"DB_PG_HOST" env-default:"localhost"`
	Port       uint16 `env:"DB_PG_PORT" env-default:"5432"`
	Name       string `env:"DB_PG_NAME" env-default:"external_content"`
	User       string `env:"DB_PG_USER" env-default:"postgres"`
	Password   string `env:"DB_PG_PASSWORD" env-default:""`
	SSLMode    string `env:"DB_PG_SSLMODE" env-default:"disable"`
}

type CacheConfig struct {
	Enabled     bool          `env:"CACHE_ENABLED" env-default:"true"`
	TemplateTTL time.Duration `env:"CACHE_TEMPLATE_TTL" env-default:"10m"`
	ContentTTL  time.Duration `env:"CACHE_CONTENT_TTL" env-default:"5m"`
	Advanced    bool          `env:"CACHE_ADVANCED" env-default:"false"`
}

type CommandsConfig struct {
	Enabled bool `env:"COMMANDS_ENABLED" env-default:"true"`
}

type LoggingConfig struct {
	Enabled bool   `env:"LOG_ENABLED" env-default:"true"`
	Level   string `env:"LOG_LEVEL" env-default:"info"`
	Format  string `env:"LOG_FORMAT" env-default:"console"`
}

func (c DBConfig) postgresURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.Name,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

func openDatabase(cfg DBConfig) (*bun.DB, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "sqlite", "sqlite3":
		sqlDB, err := sql.Open("sqlite3", cfg.SQLitePath+"?_foreign_keys=on")
		if err != nil {
			return nil, fmt.Errorf("open sqlite database: %w", err)
		}
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case "postgres", "pgx":
		sqlDB, err := sql.Open("pgx", cfg.postgresURL())
		if err != nil {
			return nil, fmt.Errorf("open postgres database: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func applyMigrations(ctx context.Context, db *bun.DB, sqlite bool) error {
	migrations := externalcontent.GetMigrationsFS()
	entries, err := fs.Glob(migrations, "data/sql/migrations/*.up.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}

	for _, path := range entries {
		raw, err := fs.ReadFile(migrations, path)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", path, err)
		}
		content := string(raw)
		if sqlite {
			content = strings.ReplaceAll(content, "::jsonb", "")
		}
		for _, chunk := range strings.Split(content, "---bun:split") {
			statement := strings.TrimSpace(chunk)
			if statement == "" {
				continue
			}
			if _, err := db.ExecContext(ctx, statement); err != nil {
				return fmt.Errorf("apply migration %s: %w", path, err)
			}
		}
	}

	return nil
}

func buildModule(cfg Config, db *bun.DB) (*externalcontent.Module, error) {
	moduleCfg := externalcontent.DefaultConfig()
	moduleCfg.Cache.Enabled = cfg.Cache.Enabled
	moduleCfg.Cache.TemplateTTL = cfg.Cache.TemplateTTL
	moduleCfg.Cache.ContentTTL = cfg.Cache.ContentTTL
	moduleCfg.Features.AdvancedCache = cfg.Cache.Advanced
	moduleCfg.Features.Logger = cfg.Logging.Enabled
	moduleCfg.Commands.Enabled = cfg.Commands.Enabled
	moduleCfg.Logging.Provider = "gologger"
	moduleCfg.Logging.Level = cfg.Logging.Level
	moduleCfg.Logging.Format = cfg.Logging.Format

	return externalcontent.New(moduleCfg, di.WithBunDB(db))
}

func buildRouter(module *externalcontent.Module) chi.Router {
	api := internalhttp.NewAPI(
		internalhttp.WithTemplateService(module.Templates()),
		internalhttp.WithEndpointService(module.Endpoints()),
		internalhttp.WithReferenceService(module.References()),
		internalhttp.WithContentService(module.Content()),
		internalhttp.WithRenderingService(module.Rendering()),
		internalhttp.WithLogger(logging.ModuleLogger(module.Container().LoggerProvider(), "extcontent.http")),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Mount("/api/v1", api.Router())

	return r
}

// registerCommands subscribes the module's command handlers to the go-command
// dispatcher so they can be triggered by dispatched messages.
func registerCommands(module *externalcontent.Module) error {
	handlers, err := module.RegisterCommands(nil)
	if err != nil {
		return fmt.Errorf("register command handlers: %w", err)
	}
	if handlers == nil {
		return nil
	}

	dispatcher.SubscribeCommand(handlers.Templates.InvalidateCache)
	dispatcher.SubscribeCommand(handlers.References.RefreshSnapshot)
	slog.Info("command handlers subscribed")
	return nil
}

func run() error {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return fmt.Errorf("read configuration: %w", err)
	}

	db, err := openDatabase(cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sqlite := strings.HasPrefix(strings.ToLower(cfg.DB.Driver), "sqlite")
	if err := applyMigrations(ctx, db, sqlite); err != nil {
		return err
	}

	module, err := buildModule(cfg, db)
	if err != nil {
		return fmt.Errorf("build module: %w", err)
	}

	if err := registerCommands(module); err != nil {
		return err
	}

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: buildRouter(module),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}
