package metrics

import "log/slog"

// Option 配置 Meter 实例的选项函数类型
type Option func(*options)

type options struct {
	// logger 记录指标系统的内部事件，默认为 slog.Default()
	logger *slog.Logger
}

// WithLogger 注入日志记录器，nil 会被忽略
//
// 配合 clog 使用时，把 clog.Logger 桥接为 slog：
//
//	logger := clog.Must(nil)
//	meter, err := metrics.New(cfg, metrics.WithLogger(clog.NewSlogLogger(logger)))
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger.With(slog.String("namespace", "metrics"))
		}
	}
}

func applyOptions(opts ...Option) *options {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
