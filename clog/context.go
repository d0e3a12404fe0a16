package clog

import "context"

type (
	originKey struct{}
	loggerKey struct{}
)

// WithOrigin 在 ctx 中指定日志来源，LogContext 会优先使用它
//
// 适用于把一个 goroutine 视作“主线程”的场景，例如事件循环。
func WithOrigin(ctx context.Context, origin Origin) context.Context {
	return context.WithValue(ctx, originKey{}, origin)
}

// OriginFromContext 读取 ctx 中通过 WithOrigin 设置的来源
func OriginFromContext(ctx context.Context) (Origin, bool) {
	if ctx == nil {
		return OriginBackground, false
	}
	origin, ok := ctx.Value(originKey{}).(Origin)
	return origin, ok
}

// NewContext 把 logger 放入 ctx
func NewContext(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext 取出 NewContext 放入的 Logger，不存在时返回 Discard()
func FromContext(ctx context.Context) Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(Logger); ok {
			return logger
		}
	}
	return Discard()
}
