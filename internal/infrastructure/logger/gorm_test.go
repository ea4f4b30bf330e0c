package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func sqlFunc() (string, int64) { return "SELECT * FROM bills", 3 }

func TestGormLogger_Trace(t *testing.T) {
	t.Run("logs errors", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		g := NewGormLogger(zap.New(core), gormlogger.Warn, 200*time.Millisecond)

		g.Trace(context.Background(), time.Now(), sqlFunc, errors.New("connection refused"))

		logs := recorded.FilterMessage("SQL error").All()
		assert.Len(t, logs, 1)
	})

	t.Run("skips not found and duplicate key", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		g := NewGormLogger(zap.New(core), gormlogger.Warn, 0)

		g.Trace(context.Background(), time.Now(), sqlFunc, gorm.ErrRecordNotFound)
		g.Trace(context.Background(), time.Now(), sqlFunc, gorm.ErrDuplicatedKey)

		assert.Equal(t, 0, recorded.Len())
	})

	t.Run("warns on slow query", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		g := NewGormLogger(zap.New(core), gormlogger.Warn, time.Millisecond)

		g.Trace(context.Background(), time.Now().Add(-time.Second), sqlFunc, nil)

		assert.Equal(t, 1, recorded.FilterMessage("Slow SQL").Len())
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		g := NewGormLogger(zap.New(core), gormlogger.Info, 0).LogMode(gormlogger.Silent)

		g.Trace(context.Background(), time.Now(), sqlFunc, errors.New("x"))

		assert.Equal(t, 0, recorded.Len())
	})

	t.Run("info level logs every query at debug", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		g := NewGormLogger(zap.New(core), gormlogger.Info, 0)

		g.Trace(WithRequestID(context.Background(), "req-9"), time.Now(), sqlFunc, nil)

		logs := recorded.FilterMessage("SQL").All()
		assert.Len(t, logs, 1)
		assert.Equal(t, "req-9", logs[0].ContextMap()["request_id"])
		assert.Equal(t, int64(3), logs[0].ContextMap()["rows"])
	})
}

func TestGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, GormLevel("silent"))
	assert.Equal(t, gormlogger.Info, GormLevel("debug"))
	assert.Equal(t, gormlogger.Error, GormLevel("error"))
	assert.Equal(t, gormlogger.Warn, GormLevel(""))
}
