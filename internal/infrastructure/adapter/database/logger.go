package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	coreport "github.com/amirhossein-jamali/lending-core/internal/domain/port/core"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultSlowQuery = 200 * time.Millisecond

// QueryLogger routes gorm output through the core logger. Statements run at
// debug level; lock waits and serialization failures are warnings because
// the unit of work retries them.
type QueryLogger struct {
	log           coreport.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
	clock         coreport.TimeProvider
	classifier    *repository.ErrorClassifier
}

// NewDatabaseLogger creates a gorm logger for the named level (silent, error, warn, info)
func NewDatabaseLogger(log coreport.Logger, clock coreport.TimeProvider, level string) logger.Interface {
	return &QueryLogger{
		log:           log,
		level:         parseGormLevel(level),
		slowThreshold: defaultSlowQuery,
		clock:         clock,
		classifier:    repository.NewErrorClassifier(),
	}
}

func parseGormLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	default:
		return logger.Info
	}
}

// LogMode returns a copy logging at level
func (l *QueryLogger) LogMode(level logger.LogLevel) logger.Interface {
	c := *l
	c.level = level
	return &c
}

// WithSlowThreshold returns a copy that warns about statements slower than threshold
func (l *QueryLogger) WithSlowThreshold(threshold time.Duration) logger.Interface {
	c := *l
	c.slowThreshold = threshold
	return &c
}

func (l *QueryLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		l.log.Info(fmt.Sprintf(msg, data...), l.baseFields(ctx))
	}
}

func (l *QueryLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		l.log.Warn(fmt.Sprintf(msg, data...), l.baseFields(ctx))
	}
}

func (l *QueryLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		l.log.Error(fmt.Sprintf(msg, data...), l.baseFields(ctx))
	}
}

// Trace reports one statement
func (l *QueryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}

	elapsed := l.since(begin)
	stmt, rows := fc()

	fields := l.baseFields(ctx)
	fields["elapsed"] = elapsed.String()
	fields["rows"] = rows
	fields["sql"] = stmt
	if table := statementTable(stmt); table != "" {
		fields["table"] = table
	}
	if isLockingRead(stmt) {
		fields["row_lock"] = true
	}

	switch {
	case err != nil && errors.Is(err, gorm.ErrRecordNotFound):
		// a miss is an ordinary answer to the caller
		if l.level >= logger.Info {
			l.log.Debug("SQL query found no rows", fields)
		}
	case err != nil && l.classifier.IsTransientError(err):
		fields["error"] = err.Error()
		if l.level >= logger.Warn {
			l.log.Warn("SQL query hit a retryable conflict", fields)
		}
	case err != nil:
		fields["error"] = err.Error()
		if l.level >= logger.Error {
			l.log.Error("SQL query failed", fields)
		}
	case l.slowThreshold > 0 && elapsed > l.slowThreshold:
		if l.level >= logger.Warn {
			l.log.Warn("Slow SQL query", fields)
		}
	case l.level >= logger.Info:
		l.log.Debug("SQL query", fields)
	}
}

func (l *QueryLogger) since(begin time.Time) time.Duration {
	if l.clock != nil {
		return l.clock.Since(begin).Std()
	}
	return time.Since(begin)
}

func (l *QueryLogger) baseFields(ctx context.Context) map[string]any {
	fields := map[string]any{"source": "database"}
	if id := coreport.RequestIDFromContext(ctx); id != "" {
		fields["request_id"] = id
	}
	return fields
}

// isLockingRead reports whether stmt takes row locks
func isLockingRead(stmt string) bool {
	upper := strings.ToUpper(stmt)
	return strings.Contains(upper, "FOR UPDATE") || strings.Contains(upper, "FOR SHARE")
}

// statementTable returns the first table a statement names, unquoted
func statementTable(stmt string) string {
	fields := strings.Fields(stmt)
	for i := 0; i < len(fields)-1; i++ {
		switch strings.ToUpper(fields[i]) {
		case "FROM", "INTO", "UPDATE":
			return strings.Trim(fields[i+1], "`\"")
		}
	}
	return ""
}
