package logger

import (
	"path/filepath"
	"testing"

	"ecohub/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l := New(&config.LogConfig{Level: "debug", Format: "json", Output: "file", FilePath: path, MaxSize: 1})
	require.NotNil(t, l)

	l.Info("hello")
	require.NoError(t, l.Sync())
	assert.FileExists(t, path)
}

func TestLFallsBackToDefault(t *testing.T) {
	assert.NotNil(t, L())
}

func TestShortCaller(t *testing.T) {
	assert.Equal(t, "services/entity.go:42", shortCaller("/home/app/internal/services/entity.go:42"))
	assert.Equal(t, "main.go:1", shortCaller("main.go:1"))
}

func TestGormLoggerLogMode(t *testing.T) {
	l := NewGormLogger(0, false)
	assert.Equal(t, gormlogger.Warn, l.LogLevel)

	silent := l.LogMode(gormlogger.Silent).(*GormLogger)
	assert.Equal(t, gormlogger.Silent, silent.LogLevel)
	assert.Equal(t, gormlogger.Warn, l.LogLevel, "LogMode must not mutate the receiver")

	assert.Equal(t, gormlogger.Info, NewGormLogger(0, true).LogLevel)
}
