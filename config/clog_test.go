package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceyewan/handylog/clog"
)

// recordingLogger 记录 Warning 调用，其余方法交给内部 Logger
type recordingLogger struct {
	clog.Logger
	mu       sync.Mutex
	warnings []string
}

func newRecordingLogger() *recordingLogger {
	cfg := clog.NewDefaultConfig()
	cfg.Enabled = false // 测试中不输出到标准输出
	return &recordingLogger{Logger: clog.Must(cfg)}
}

func (r *recordingLogger) Warning(parts ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, fmt.Sprint(parts...))
}

func (r *recordingLogger) warningCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.warnings)
}

func TestBindLogger(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bind.yaml"), `
clog:
  enabled: false
  minimum_level: check
  banned_levels: [error]
  default_level: warning
  start_from_new_line: true
  timestamp_format: "HH:mm:ss.SSS"
  separator_char: "~"
  separator_repeat_count: 12
  glyphs:
    info: "🔥"
  thread_glyphs:
    main: "[M]"
  line_marker_glyph: "@"
`)
	loader := newTestLoader(t, dir, "bind")
	logger := newRecordingLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, BindLogger(ctx, loader, "clog", logger))

	cfg := logger.Config()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, clog.CheckLevel, cfg.MinimumLevel)
	assert.Equal(t, []clog.Level{clog.ErrorLevel}, cfg.BannedLevels)
	assert.Equal(t, clog.WarningLevel, cfg.DefaultLevel)
	assert.True(t, cfg.StartFromNewLine)
	assert.Equal(t, "HH:mm:ss.SSS", cfg.TimestampFormat)
	assert.Equal(t, "~", cfg.SeparatorChar)
	assert.Equal(t, 12, cfg.SeparatorRepeatCount)
	assert.Equal(t, "🔥", cfg.Glyphs.Info)
	assert.Equal(t, "@", cfg.LineMarkerGlyph)
	assert.Equal(t, "[M]", cfg.ThreadGlyphs.Main)

	// 未配置的字段保持默认值
	assert.Equal(t, "⚠️", cfg.Glyphs.Warning)
	assert.Equal(t, "(background)", cfg.ThreadGlyphs.Background)
	assert.Equal(t, "⏱", cfg.TimestampGlyph)
}

func TestBindLoggerDefaultKey(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "defkey.yaml"), "clog:\n  minimum_level: fatal\n")
	loader := newTestLoader(t, dir, "defkey")
	logger := newRecordingLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, BindLogger(ctx, loader, "", logger))
	assert.Equal(t, clog.FatalLevel, logger.Config().MinimumLevel)
}

func TestBindLoggerEnvOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bindenv.yaml"), "clog:\n  banned_levels: []\n")
	t.Setenv("HLTEST_BINDENV_CLOG_BANNED_LEVELS", "check,error")
	loader := newTestLoader(t, dir, "bindenv")
	logger := newRecordingLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, BindLogger(ctx, loader, "clog", logger))
	assert.Equal(t, []clog.Level{clog.CheckLevel, clog.ErrorLevel}, logger.Config().BannedLevels)
}

func TestBindLoggerErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "binderr.yaml"), `
other:
  value: 1
badlevel:
  minimum_level: loud
outofrange:
  minimum_level: 9
`)
	loader := newTestLoader(t, dir, "binderr")
	ctx := context.Background()

	err := BindLogger(ctx, loader, "clog", newRecordingLogger())
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	err = BindLogger(ctx, loader, "badlevel", newRecordingLogger())
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))

	logger := newRecordingLogger()
	err = BindLogger(ctx, loader, "outofrange", logger)
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))
	assert.Equal(t, clog.InfoLevel, logger.Config().MinimumLevel)

	assert.True(t, IsInvalidInput(BindLogger(ctx, nil, "clog", logger)))
	assert.True(t, IsInvalidInput(BindLogger(ctx, loader, "clog", nil)))
}

// TestBindLoggerReload 配置文件变化后自动更新，非法配置被忽略
func TestBindLoggerReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reload.yaml")
	writeFile(t, path, "clog:\n  minimum_level: info\n")
	loader := newTestLoader(t, dir, "reload")
	logger := newRecordingLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, BindLogger(ctx, loader, "clog", logger))
	require.Equal(t, clog.InfoLevel, logger.Config().MinimumLevel)

	writeFile(t, path, "clog:\n  minimum_level: error\n  separator_char: \"#\"\n")
	require.Eventually(t, func() bool {
		return logger.Config().MinimumLevel == clog.ErrorLevel
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, "#", logger.Config().SeparatorChar)

	writeFile(t, path, "clog:\n  minimum_level: loud\n")
	require.Eventually(t, func() bool {
		return logger.warningCount() > 0
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, clog.ErrorLevel, logger.Config().MinimumLevel)
}
