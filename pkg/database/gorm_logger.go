package database

import (
	"context"
	"errors"
	"time"

	"github.com/corrigo/corrigo/pkg/log"
	"gorm.io/gorm/logger"
)

type GormLogger struct {
	Level         logger.LogLevel
	SlowThreshold time.Duration
}

func NewGormLogger(logLevel logger.LogLevel, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{
		Level:         logLevel,
		SlowThreshold: slowThreshold,
	}
}

func (l *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	l.Level = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.Level < logger.Info {
		return
	}
	log.Infof(msg, data...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.Level < logger.Warn {
		return
	}
	log.Warnf(msg, data...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.Level < logger.Error {
		return
	}
	log.Errorf(msg, data...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin).Seconds()
	sql, rows := fc()

	if err != nil && l.Level >= logger.Error && !errors.Is(err, logger.ErrRecordNotFound) {
		log.Errorf("`%s` [rows: %d, elapsed: %.5f], err: %v", sql, rows, elapsed, err)
		return
	}

	if l.SlowThreshold != 0 && elapsed > l.SlowThreshold.Seconds() && l.Level >= logger.Warn {
		log.Warnf("`%s` [rows: %d, elapsed: %.5f]", sql, rows, elapsed)
		return
	}

	if l.Level == logger.Info {
		log.Debugf("`%s` [rows: %d, elapsed: %.5f]", sql, rows, elapsed)
	}
}
