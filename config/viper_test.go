package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceyewan/handylog/clog"
	"github.com/ceyewan/handylog/testkit"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	testkit.WriteFile(t, filepath.Dir(path), filepath.Base(path), content)
}

func newTestLoader(t *testing.T, dir, name string, opts ...Option) Loader {
	t.Helper()
	opts = append([]Option{
		WithConfigName(name),
		WithConfigPaths(dir),
		WithEnvPrefix("HLTEST_" + name),
		WithLogger(testkit.NewLogger()),
	}, opts...)
	loader, err := New(opts...)
	require.NoError(t, err)
	require.NoError(t, loader.Load(context.Background()))
	return loader
}

// TestLoaderLoad 测试配置加载优先级
func TestLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "load.yaml"), `
app:
  name: base-app
  version: "1.0.0"
  debug: false
clog:
  minimum_level: info
  separator_repeat_count: 40
`)
	writeFile(t, filepath.Join(dir, "load.dev.yaml"), `
app:
  debug: true
clog:
  separator_repeat_count: 20
`)
	writeFile(t, filepath.Join(dir, ".env"), "HLTEST_LOAD_CLOG_MINIMUM_LEVEL=debug\n")
	t.Cleanup(func() { _ = os.Unsetenv("HLTEST_LOAD_CLOG_MINIMUM_LEVEL") })

	t.Setenv("HLTEST_LOAD_ENV", "dev")
	t.Setenv("HLTEST_LOAD_APP_NAME", "env-app")

	loader := newTestLoader(t, dir, "load")

	// 1. 环境变量（最高优先级）
	assert.Equal(t, "env-app", loader.Get("app.name"))
	// 2. .env 文件
	assert.Equal(t, "debug", loader.Get("clog.minimum_level"))
	// 3. 环境特定配置
	assert.Equal(t, true, loader.Get("app.debug"))
	assert.Equal(t, 20, loader.Get("clog.separator_repeat_count"))
	// 4. 基础配置
	assert.Equal(t, "1.0.0", loader.Get("app.version"))
}

func TestLoaderValidate(t *testing.T) {
	dir := t.TempDir()

	loader, err := New(WithConfigName("absent"), WithConfigPaths(dir))
	require.NoError(t, err)
	err = loader.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.True(t, IsInvalidInput(err))

	writeFile(t, filepath.Join(dir, "empty.yaml"), "")
	loader, err = New(WithConfigName("empty"), WithConfigPaths(dir))
	require.NoError(t, err)
	assert.ErrorIs(t, loader.Load(context.Background()), ErrValidationFailed)
}

func TestLoaderMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "broken.yaml"), "clog: [unclosed\n")

	loader, err := New(WithConfigName("broken"), WithConfigPaths(dir))
	require.NoError(t, err)
	err = loader.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestUnmarshalKeyHooks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "hooks.yaml"), `
clog:
  minimum_level: warn
  banned_levels: "check,error"
  separator_char: "-"
app:
  timeout: 1500ms
  tags: "a,b"
`)
	loader := newTestLoader(t, dir, "hooks")

	cfg := clog.NewDefaultConfig()
	require.NoError(t, loader.UnmarshalKey("clog", cfg))
	assert.Equal(t, clog.WarningLevel, cfg.MinimumLevel)
	assert.Equal(t, []clog.Level{clog.CheckLevel, clog.ErrorLevel}, cfg.BannedLevels)
	assert.Equal(t, "-", cfg.SeparatorChar)
	// 未出现的字段保持默认值
	assert.Equal(t, 80, cfg.SeparatorRepeatCount)
	assert.True(t, cfg.Enabled)

	var app struct {
		Timeout time.Duration `mapstructure:"timeout"`
		Tags    []string      `mapstructure:"tags"`
	}
	require.NoError(t, loader.UnmarshalKey("app", &app))
	assert.Equal(t, 1500*time.Millisecond, app.Timeout)
	assert.Equal(t, []string{"a", "b"}, app.Tags)

	var all struct {
		Clog clog.Config `mapstructure:"clog"`
	}
	require.NoError(t, loader.Unmarshal(&all))
	assert.Equal(t, clog.WarningLevel, all.Clog.MinimumLevel)
}

// TestUnmarshalKeyEnvLevels 环境变量只能以逗号分隔的字符串提供级别列表
func TestUnmarshalKeyEnvLevels(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "envlevels.yaml"), `
clog:
  minimum_level: info
  banned_levels: [debug]
`)
	t.Setenv("HLTEST_ENVLEVELS_CLOG_BANNED_LEVELS", "check, error")
	t.Setenv("HLTEST_ENVLEVELS_CLOG_MINIMUM_LEVEL", "warn")
	loader := newTestLoader(t, dir, "envlevels")

	cfg := clog.NewDefaultConfig()
	require.NoError(t, loader.UnmarshalKey("clog", cfg))
	assert.Equal(t, []clog.Level{clog.CheckLevel, clog.ErrorLevel}, cfg.BannedLevels)
	assert.Equal(t, clog.WarningLevel, cfg.MinimumLevel)

	t.Setenv("HLTEST_ENVLEVELS_CLOG_BANNED_LEVELS", "check,loud")
	err := loader.UnmarshalKey("clog", clog.NewDefaultConfig())
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))
}

func TestUnmarshalKeyInvalidLevel(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "badlevel.yaml"), "clog:\n  minimum_level: loud\n")
	loader := newTestLoader(t, dir, "badlevel")

	cfg := clog.NewDefaultConfig()
	err := loader.UnmarshalKey("clog", cfg)
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))
}

// TestLoaderWatch 测试配置变更通知
func TestLoaderWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watch.yaml")
	writeFile(t, path, "test:\n  value: initial\n  counter: 1\n")
	loader := newTestLoader(t, dir, "watch")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	valueCh, err := loader.Watch(ctx, "test.value")
	require.NoError(t, err)
	counterCh, err := loader.Watch(ctx, "test.counter")
	require.NoError(t, err)

	writeFile(t, path, "test:\n  value: updated\n  counter: 2\n")

	select {
	case event := <-valueCh:
		assert.Equal(t, "test.value", event.Key)
		assert.Equal(t, "updated", event.Value)
		assert.Equal(t, "initial", event.OldValue)
		assert.Equal(t, "file", event.Source)
		assert.False(t, event.Timestamp.IsZero())
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for test.value event")
	}

	select {
	case event := <-counterCh:
		assert.Equal(t, 2, event.Value)
		assert.Equal(t, 1, event.OldValue)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for test.counter event")
	}
}

// TestLoaderWatchCancel ctx 取消后通道被关闭
func TestLoaderWatchCancel(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "cancel.yaml"), "test: {value: 1}\n")
	loader := newTestLoader(t, dir, "cancel")

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := loader.Watch(ctx, "test.value")
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("watch channel not closed after cancel")
	}

	_, err = loader.Watch(context.Background(), "")
	assert.True(t, IsInvalidInput(err))
}
