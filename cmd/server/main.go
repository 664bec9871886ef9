package main

import (
	"context"
	"database/sql"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
	auth "github.com/goliatone/noteful-auth"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func main() {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg ServerConfig, logger *slog.Logger) error {
	ctx := context.Background()

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.Database.DSN)
	if err != nil {
		return err
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()

	if err := migrate(ctx, db); err != nil {
		return err
	}

	repo := auth.NewRepositoryManager(db)
	repo.MustValidate()

	auther := auth.NewAuthenticator(repo.Users(), cfg.Auth).
		WithLogger(slogLogger{logger.With("component", "auth")})

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			AppName: "noteful-auth",
		}))
	})

	auth.RegisterAuthRoutes(srv.Router(),
		auth.WithAuthenticator(auther),
		auth.WithRepositoryManager(repo),
		auth.WithControllerLogger(slogLogger{logger.With("component", "auth:ctrl")}),
		auth.WithDebug(cfg.Debug),
	)

	logger.Info("listening", "addr", cfg.Addr)
	srv.Serve(cfg.Addr)

	sig := waitExitSignal()
	logger.Info("shutting down", "signal", sig.String())

	return nil
}

// migrate applies the embedded schema files in lexical order. sqlite executes
// them idempotently; the DDL is written with IF NOT EXISTS throughout.
func migrate(ctx context.Context, db *bun.DB) error {
	root := auth.GetMigrationsFS()

	var files []string
	err := fs.WalkDir(root, "data/sql/migrations", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".up.sql") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, name := range files {
		ddl, err := fs.ReadFile(root, name)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, string(ddl)); err != nil {
			return err
		}
	}

	return nil
}

func waitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}

// slogLogger adapts slog to the library's Logger interface. The args are
// already key/value pairs at every call site.
type slogLogger struct {
	log *slog.Logger
}

func (l slogLogger) Debug(format string, args ...any) { l.log.Debug(format, args...) }
func (l slogLogger) Info(format string, args ...any)  { l.log.Info(format, args...) }
func (l slogLogger) Warn(format string, args ...any)  { l.log.Warn(format, args...) }
func (l slogLogger) Error(format string, args ...any) { l.log.Error(format, args...) }
