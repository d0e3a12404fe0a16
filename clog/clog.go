package clog

import "github.com/ceyewan/handylog/xerrors"

// New 创建一个新的 Logger 实例
//
// config - 日志配置，如果为 nil 会使用 NewDefaultConfig()
// opts   - 函数式选项列表，用于指标、调用栈跳过层数等配置
//
// Logger - 日志实例
func New(config *Config, opts ...Option) (Logger, error) {
	if config == nil {
		config = NewDefaultConfig()
	}

	cfg := config.Clone()
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Wrap(err, "invalid config")
	}

	// 应用选项
	options := applyOptions(opts...)

	// 调用内部实现
	return newLogger(cfg, options)
}

// Must 同 New，出错时 panic，适合在 main 或测试中使用
func Must(config *Config, opts ...Option) Logger {
	return xerrors.Must(New(config, opts...))
}
