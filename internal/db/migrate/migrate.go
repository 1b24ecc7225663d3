// Package migrate applies the goose migrations shipped in db/migrations.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/db/migrations"
)

const versionTable = "goose_db_version"

// Options selects the migration source. An empty Dir uses the embedded files.
type Options struct {
	Dir    string
	Logger zerolog.Logger
}

// Run executes a goose command ("up", "down" or "status") against db.
func Run(ctx context.Context, db *sql.DB, command string, opts Options) error {
	var (
		fsys fs.FS = migrations.FS
		dir        = "."
	)
	if opts.Dir != "" {
		fsys = nil
		dir = opts.Dir
	}

	goose.SetBaseFS(fsys)
	goose.SetTableName(versionTable)
	goose.SetLogger(gooseLogger{opts.Logger})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	switch command {
	case "up":
		if err := goose.UpContext(ctx, db, dir); err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
	case "down":
		if err := goose.DownContext(ctx, db, dir); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
	case "status":
		if err := goose.StatusContext(ctx, db, dir); err != nil {
			return fmt.Errorf("migrate status: %w", err)
		}
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
	return nil
}

// gooseLogger routes goose output through zerolog.
type gooseLogger struct {
	logger zerolog.Logger
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Fatal().Msgf(format, v...)
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info().Msgf(format, v...)
}
