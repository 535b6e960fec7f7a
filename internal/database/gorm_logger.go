package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SlowQueryThreshold is the duration above which a statement logs at warn.
const SlowQueryThreshold = 250 * time.Millisecond

const maxSQLLength = 200

// gormLogger sends GORM output to slog. The logger is resolved per call so
// it follows slog.SetDefault.
type gormLogger struct {
	logger func() *slog.Logger
	slow   time.Duration
}

func newGormLogger() gormLogger {
	return gormLogger{logger: slog.Default, slow: SlowQueryThreshold}
}

func (l gormLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface { return l }

func (l gormLogger) Info(ctx context.Context, msg string, args ...any) {
	l.logger().InfoContext(ctx, fmt.Sprintf(msg, args...), slog.String("component", "gorm"))
}

func (l gormLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.logger().WarnContext(ctx, fmt.Sprintf(msg, args...), slog.String("component", "gorm"))
}

func (l gormLogger) Error(ctx context.Context, msg string, args ...any) {
	l.logger().ErrorContext(ctx, fmt.Sprintf(msg, args...), slog.String("component", "gorm"))
}

// Trace logs one statement. Missing rows and unique conflicts are ordinary
// outcomes of lookups and upserts and log like successes.
func (l gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	logger := l.logger()

	level, msg := slog.LevelDebug, "sql"
	switch {
	case err != nil && !expectedError(err):
		level, msg = slog.LevelError, "sql failed"
	case l.slow > 0 && elapsed > l.slow:
		level, msg = slog.LevelWarn, "slow sql"
	}
	if !logger.Enabled(ctx, level) {
		return
	}

	sql, rows := fc()
	attrs := []slog.Attr{
		slog.String("sql", truncateSQL(sql)),
		slog.Int64("rows", rows),
		slog.Duration("duration", elapsed),
	}
	if level == slog.LevelError {
		attrs = append(attrs, slog.Any("error", err))
	}
	logger.LogAttrs(ctx, level, msg, attrs...)
}

func expectedError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, gorm.ErrDuplicatedKey)
}

// truncateSQL keeps the head and tail of long statements.
func truncateSQL(sql string) string {
	if len(sql) <= maxSQLLength {
		return sql
	}
	keep := (maxSQLLength - 3) / 2
	return sql[:keep] + "..." + sql[len(sql)-keep:]
}
