package clog

import (
	"context"
	"log/slog"
	"slices"
)

// LevelCheck 是 CheckLevel 在 slog 中对应的级别，介于 Info 和 Warn 之间
const LevelCheck = slog.LevelInfo + 2

// LevelFatal 是 FatalLevel 在 slog 中对应的级别
const LevelFatal = slog.LevelError + 4

// slogHandler 把 slog 记录转交给 clog Logger 输出
//
// 过滤规则、图标和输出目标都沿用 Logger 的配置；调用位置取自 slog.Record.PC。
// logger 不是 New 创建的实例（例如业务自己包装的 Logger）时只能退化为 LogContext，
// 此时调用位置固定为 slogHandler.Handle，slog 调用方的位置会丢失。
type slogHandler struct {
	logger Logger
	attrs  []string // WithAttrs 预先渲染好的 key=value
	prefix string   // WithGroup 累积的 "group." 前缀
}

// NewSlogHandler 基于 logger 创建 slog.Handler
//
// 适合把依赖 *slog.Logger 的组件（例如 metrics）接到 clog 上：
//
//	meter, _ := metrics.New(cfg, metrics.WithLogger(clog.NewSlogLogger(logger)))
func NewSlogHandler(logger Logger) slog.Handler {
	if logger == nil {
		logger = Discard()
	}
	return &slogHandler{logger: logger}
}

// NewSlogLogger 是 slog.New(NewSlogHandler(logger)) 的简写
func NewSlogLogger(logger Logger) *slog.Logger {
	return slog.New(NewSlogHandler(logger))
}

// FromSlogLevel 把 slog 级别映射为 clog 级别
func FromSlogLevel(level slog.Level) Level {
	switch {
	case level < slog.LevelInfo:
		return DebugLevel
	case level < LevelCheck:
		return InfoLevel
	case level < slog.LevelWarn:
		return CheckLevel
	case level < slog.LevelError:
		return WarningLevel
	case level < LevelFatal:
		return ErrorLevel
	default:
		return FatalLevel
	}
}

// SlogLevel 把 clog 级别映射为 slog 级别
func (l Level) SlogLevel() slog.Level {
	switch l {
	case DebugLevel:
		return slog.LevelDebug
	case InfoLevel:
		return slog.LevelInfo
	case CheckLevel:
		return LevelCheck
	case WarningLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	default:
		return LevelFatal
	}
}

func (h *slogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.logger.Enabled(FromSlogLevel(level))
}

func (h *slogHandler) Handle(ctx context.Context, r slog.Record) error {
	parts := make([]any, 0, 1+len(h.attrs)+r.NumAttrs())
	parts = append(parts, r.Message)
	for _, a := range h.attrs {
		parts = append(parts, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		if !a.Equal(slog.Attr{}) {
			parts = append(parts, renderAttr(h.prefix, a))
		}
		return true
	})

	level := FromSlogLevel(r.Level)
	if l, ok := h.logger.(*loggerImpl); ok {
		l.logAt(ctx, level, r.PC, r.Time, parts)
		return nil
	}
	// 无法把 r.PC 传给其他实现，调用位置记为这里
	h.logger.LogContext(ctx, level, parts...)
	return nil
}

func (h *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := h.clone()
	for _, a := range attrs {
		if !a.Equal(slog.Attr{}) {
			next.attrs = append(next.attrs, renderAttr(h.prefix, a))
		}
	}
	return next
}

func (h *slogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.prefix += name + "."
	return next
}

func (h *slogHandler) clone() *slogHandler {
	return &slogHandler{
		logger: h.logger,
		attrs:  slices.Clip(h.attrs),
		prefix: h.prefix,
	}
}
