package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNopBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		Debug("debug before init")
		Info("info before init", zap.Int("n", 1))
		Named("movement").Warn("named before init")
		Sync()
	})
}

func TestLogRotation(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "grove.log")

	l, err := New(Options{
		Level: "debug",
		File:  Rotation{Path: logFile, MaxSizeMB: 1, MaxBackups: 2, MaxAgeDays: 1},
	})
	require.NoError(t, err)
	defer Replace(l)()

	line := strings.Repeat("x", 200)
	for i := 0; i < 15000; i++ {
		Sugar.Infof("frame %d: %s", i, line)
	}
	Sync()

	_, err = os.Stat(logFile)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var rotated []string
	for _, e := range entries {
		if e.Name() != "grove.log" && strings.HasPrefix(e.Name(), "grove-") {
			rotated = append(rotated, e.Name())
		}
	}
	assert.NotEmpty(t, rotated, "expected lumberjack backups next to %s", logFile)
}

func TestLevelsFilterFileOutput(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{level: "error", expected: []string{"ERROR"}, excluded: []string{"WARN", "INFO", "DEBUG"}},
		{level: "WARN", expected: []string{"ERROR", "WARN"}, excluded: []string{"INFO", "DEBUG"}},
		{level: "", expected: []string{"ERROR", "WARN", "INFO"}, excluded: []string{"DEBUG"}},
		{level: "debug", expected: []string{"ERROR", "WARN", "INFO", "DEBUG"}},
	}

	for _, tt := range tests {
		t.Run("level="+tt.level, func(t *testing.T) {
			logFile := filepath.Join(dir, "level-"+tt.level+".log")
			l, err := New(Options{Level: tt.level, File: Rotation{Path: logFile, MaxSizeMB: 1}})
			require.NoError(t, err)
			restore := Replace(l)
			defer restore()

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")
			Sync()

			content, err := os.ReadFile(logFile)
			require.NoError(t, err)
			for _, exp := range tt.expected {
				assert.Contains(t, string(content), exp)
			}
			for _, exc := range tt.excluded {
				assert.NotContains(t, string(content), exc)
			}
		})
	}
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Level: "info", Console: &buf})
	require.NoError(t, err)
	defer Replace(l)()

	Info("scene loaded", zap.String("scene", "default"))
	Sync()
	assert.Contains(t, buf.String(), "scene loaded")
	assert.Contains(t, buf.String(), `"scene": "default"`)
	assert.Contains(t, buf.String(), "logger_test.go", "caller points at the call site")
}

func TestNamedLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	defer Replace(zap.New(core))()

	Named("movement").Info("move rejected", zap.String("axis", "dolly"))
	Named("movement").Debug("below level")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "movement", entry.LoggerName)
	assert.Equal(t, "dolly", entry.ContextMap()["axis"])
}

func TestReplaceRestores(t *testing.T) {
	before := Log
	core, logs := observer.New(zapcore.DebugLevel)
	restore := Replace(zap.New(core))
	Debug("captured")
	restore()
	Debug("dropped")

	assert.Same(t, before, Log)
	assert.Equal(t, 1, logs.FilterMessage("captured").Len())
	assert.Zero(t, logs.FilterMessage("dropped").Len())
}

func TestNoOutputsIsNop(t *testing.T) {
	l, err := New(Options{Level: "debug"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.ErrorLevel))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("Warn"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestEnabled(t *testing.T) {
	core, _ := observer.New(zapcore.WarnLevel)
	defer Replace(zap.New(core))()
	assert.False(t, Enabled(zapcore.DebugLevel))
	assert.True(t, Enabled(zapcore.ErrorLevel))
}

func TestDefaultRotation(t *testing.T) {
	r := DefaultRotation("/tmp/grove.log")
	assert.Equal(t, Rotation{Path: "/tmp/grove.log", MaxSizeMB: 20, MaxBackups: 3, MaxAgeDays: 7, Compress: true}, r)
}
