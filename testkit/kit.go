// Package testkit 提供 handylog 各组件测试共用的依赖。
package testkit

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ceyewan/handylog/clog"
	"github.com/ceyewan/handylog/metrics"
)

// Kit 包含通用的测试依赖
type Kit struct {
	Ctx    context.Context
	Logger clog.Logger
	Meter  metrics.Meter
}

// NewKit 返回一个包含默认依赖的测试工具包，Meter 在测试结束时关闭
func NewKit(t *testing.T) *Kit {
	t.Helper()
	meter := NewMeter()
	t.Cleanup(func() {
		_ = meter.Shutdown(context.Background())
	})
	return &Kit{
		Ctx:    context.Background(),
		Logger: NewLogger(clog.WithMeter(meter)),
		Meter:  meter,
	}
}

// NewLogger 返回一个用于测试的 logger，输出全部级别，适合本地调试
func NewLogger(opts ...clog.Option) clog.Logger {
	cfg := clog.NewDefaultConfig()
	cfg.MinimumLevel = clog.DebugLevel
	logger, err := clog.New(cfg, opts...)
	if err != nil {
		return clog.Discard()
	}
	return logger
}

// NewMeter 返回一个用于测试的 meter
// 不监听端口，指标只记录在内存中；内部日志通过 slog 桥接输出到 clog
func NewMeter() metrics.Meter {
	meter, err := metrics.New(metrics.NewDevDefaultConfig("test"),
		metrics.WithLogger(clog.NewSlogLogger(NewLogger()).With("component", "testkit")),
	)
	if err != nil {
		return metrics.Discard()
	}
	return meter
}

// NewContext 返回一个带有超时的测试上下文，测试结束时自动取消
func NewContext(t *testing.T, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx, cancel
}

// NewID 返回一个唯一的测试 ID (UUID v4 前 8 位)
// 用于生成唯一的文件名、环境变量前缀，避免测试间冲突
func NewID() string {
	return uuid.New().String()[0:8]
}

// WriteFile 在 dir 下写入文件并返回完整路径
//
// 先写临时文件再重命名，文件监听方不会读到写了一半的内容。
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	tmp := path + ".tmp-" + NewID()
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("rename %s: %v", tmp, err)
	}
	return path
}
