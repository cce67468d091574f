package pg

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// logger is satisfied by *slog.Logger.
type logger interface {
	InfoContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// Migrate applies goose migrations. cfg.MigrationsPath wins when set;
// otherwise migrations are read from the root of embedded.
func Migrate(ctx context.Context, pool *pgxpool.Pool, cfg Config, log logger, embedded fs.FS) error {
	var (
		fsys fs.FS
		dir  = "."
	)
	switch {
	case cfg.MigrationsPath != "":
		if _, err := os.Stat(cfg.MigrationsPath); err != nil {
			return errors.Join(ErrFailedToApplyMigrations, err)
		}
		fsys = os.DirFS(cfg.MigrationsPath)
	case embedded != nil:
		fsys = embedded
	default:
		return errors.Join(ErrFailedToApplyMigrations, ErrMigrationsNotProvided)
	}

	// goose speaks database/sql; share the pool's connections through stdlib.
	db := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := db.Close(); err != nil {
			log.ErrorContext(ctx, "failed to close migration db handle", "error", err)
		}
	}()

	goose.SetBaseFS(fsys)
	goose.SetLogger(&gooseLogger{log: log, ctx: ctx})
	goose.SetTableName(cfg.MigrationsTable)

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	return nil
}

// gooseLogger routes goose output through the application logger.
type gooseLogger struct {
	log logger
	ctx context.Context
}

func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.log.ErrorContext(l.ctx, fmt.Sprintf(format, v...))
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.log.InfoContext(l.ctx, fmt.Sprintf(format, v...))
}
