package clog

import "context"

// noopLogger 是一个什么都不做的 Logger 实现（内部使用）
type noopLogger struct{}

// Discard 创建一个静默的 Logger 实例
//
// 返回的 Logger 实现了 Logger 接口，但所有方法体都是空操作。
func Discard() Logger {
	return &noopLogger{}
}

// 空实现 - 所有级别日志都不做任何事
func (l *noopLogger) Debug(parts ...any)                                         {}
func (l *noopLogger) Info(parts ...any)                                          {}
func (l *noopLogger) Check(parts ...any)                                         {}
func (l *noopLogger) Warning(parts ...any)                                       {}
func (l *noopLogger) Error(parts ...any)                                         {}
func (l *noopLogger) Fatal(parts ...any)                                         {}
func (l *noopLogger) Log(level Level, parts ...any)                              {}
func (l *noopLogger) LogContext(ctx context.Context, level Level, parts ...any) {}
func (l *noopLogger) Print(parts ...any)                                         {}
func (l *noopLogger) AddDivider()                                                {}
func (l *noopLogger) DumpProperties(v any)                                       {}

// WithHeader 返回自身
func (l *noopLogger) WithHeader(header string) Logger {
	return l
}

// Enabled 永远为 false
func (l *noopLogger) Enabled(level Level) bool {
	return false
}

// Config 返回一个 Enabled 为 false 的默认配置
func (l *noopLogger) Config() Config {
	cfg := NewDefaultConfig()
	cfg.Enabled = false
	return *cfg
}

// SetConfig 只做校验，不保存
func (l *noopLogger) SetConfig(cfg Config) error {
	return cfg.validate()
}

// UpdateConfig 只做校验，不保存
func (l *noopLogger) UpdateConfig(fn func(*Config)) error {
	cfg := l.Config()
	fn(&cfg)
	return cfg.validate()
}

// SetLevel 只做校验
func (l *noopLogger) SetLevel(level Level) error {
	return l.UpdateConfig(func(c *Config) { c.MinimumLevel = level })
}

// Flush 是空操作（noopLogger 没有缓冲区）
func (l *noopLogger) Flush() {}
