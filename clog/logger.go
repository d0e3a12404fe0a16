// Package clog 提供带图标的控制台日志组件。
//
// 每行日志包含级别图标、时间戳、goroutine 来源、调用位置（文件、函数、行号）和消息：
//
//	✳️Info  ⏱14:03:27 (background) ➡️handler.Server.Serve (42)✳️ listening on :8080
//
// 特性：
//   - 6 个级别：Debug < Info < Check < Warning < Error < Fatal
//   - 每个 Logger 持有独立的 Config，运行时修改从下一行开始生效
//   - 按最低级别过滤，或单独屏蔽某些级别
//   - 写同一个输出目标的所有 Logger 共享一把锁，并发输出不会交错
//   - 日志调用永不返回错误、永不 panic，Fatal 也不会退出进程
//   - 可桥接为 slog.Handler，可接入 metrics 统计日志行数
//
// 基本使用：
//
//	logger, _ := clog.New(nil) // 默认配置
//	logger.Info("hello", 42)
//	logger.WithHeader("db").Warning("slow query", elapsed)
//	logger.AddDivider()
//
// 修改配置：
//
//	logger.UpdateConfig(func(c *clog.Config) {
//	    c.MinimumLevel = clog.DebugLevel
//	    c.Ban(clog.CheckLevel)
//	    c.Glyphs.Info = "🔥"
//	})
package clog

import "context"

// Logger 日志接口
//
// 所有方法都可以被多个 goroutine 并发调用。
type Logger interface {
	// 各级别快捷方法，parts 逐个渲染后以空格连接
	Debug(parts ...any)
	Info(parts ...any)
	Check(parts ...any)
	Warning(parts ...any)
	Error(parts ...any)
	Fatal(parts ...any)

	// Log 以指定级别输出
	Log(level Level, parts ...any)

	// LogContext 以指定级别输出，ctx 中通过 WithOrigin 设置的来源优先于自动判断
	LogContext(ctx context.Context, level Level, parts ...any)

	// Print 以 Config.DefaultLevel 输出
	Print(parts ...any)

	// AddDivider 输出一条由 SeparatorChar 重复 SeparatorRepeatCount 次组成的分隔线，
	// 前后各有一个空行。只受 Enabled 控制，不受级别过滤影响。
	AddDivider()

	// DumpProperties 输出 v 的所有字段，格式见 Describe。只受 Enabled 控制。
	DumpProperties(v any)

	// WithHeader 创建一个子 Logger，其每条消息前都带有 "<header> : "
	//
	// 子 Logger 与父 Logger 共享配置和输出目标。
	WithHeader(header string) Logger

	// Enabled 判断 level 的日志当前是否会输出
	Enabled(level Level) bool

	// Config 返回当前配置的副本
	Config() Config

	// SetConfig 校验并替换配置
	SetConfig(cfg Config) error

	// UpdateConfig 在当前配置的副本上执行 fn，校验通过后替换
	//
	// fn 执行期间不持有锁，可以在 fn 中输出日志；遇到并发修改时 fn 会被重新执行。
	//
	//	logger.UpdateConfig(func(c *clog.Config) { c.StartFromNewLine = true })
	UpdateConfig(fn func(*Config)) error

	// SetLevel 动态调整最低输出级别
	SetLevel(level Level) error

	// Flush 同步输出目标
	Flush()
}
