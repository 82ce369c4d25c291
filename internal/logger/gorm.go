package logger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// GormLogger 将 GORM 日志转发到 zap
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormlogger.LogLevel
}

func NewGormLogger(slow time.Duration, debug bool) *GormLogger {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	return &GormLogger{
		SlowThreshold: slow,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Info {
		L().Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Warn {
		L().Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Error {
		L().Sugar().Errorf(msg, data...)
	}
}

// shortCaller 只保留 包名/文件名:行号
func shortCaller(caller string) string {
	parts := strings.Split(caller, "/")
	if len(parts) >= 2 {
		return strings.Join(parts[len(parts)-2:], "/")
	}
	return caller
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.LogLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	caller := shortCaller(utils.FileWithLineNum())
	lg := L().WithOptions(zap.WithCaller(false))

	// duplicate keys and missing rows are business outcomes, the services report them
	expected := errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, gorm.ErrDuplicatedKey)

	if IsJSON() {
		fields := []zap.Field{
			zap.String("caller", caller),
			zap.Duration("latency", elapsed),
			zap.Int64("rows", rows),
			zap.String("sql", sql),
		}
		switch {
		case err != nil && !expected && l.LogLevel >= gormlogger.Error:
			lg.Error("SQL", append(fields, zap.Error(err))...)
		case elapsed > l.SlowThreshold && l.SlowThreshold != 0 && l.LogLevel >= gormlogger.Warn:
			lg.Warn("SQL SLOW", fields...)
		case l.LogLevel >= gormlogger.Info:
			lg.Debug("SQL", fields...)
		}
		return
	}

	msg := fmt.Sprintf("[%.3fms] [rows:%d] %s", float64(elapsed.Microseconds())/1000, rows, sql)
	lg = lg.Named(caller)
	switch {
	case err != nil && !expected && l.LogLevel >= gormlogger.Error:
		lg.Error(msg, zap.Error(err))
	case elapsed > l.SlowThreshold && l.SlowThreshold != 0 && l.LogLevel >= gormlogger.Warn:
		lg.Warn("SLOW " + msg)
	case l.LogLevel >= gormlogger.Info:
		lg.Debug(msg)
	}
}
