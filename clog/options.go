package clog

import (
	"io"
	"time"

	"github.com/ceyewan/handylog/metrics"
)

// Option 函数式选项，用于配置 Logger 实例
type Option func(*options)

// options 内部选项结构，存储 Logger 的配置选项
type options struct {
	writer         io.Writer // 测试用输出目标，默认 os.Stdout
	callerSkip     int
	meter          metrics.Meter
	clock          func() time.Time
	originDetector func() Origin
}

// WithCallerSkip 额外跳过 n 层调用栈
//
// 在 clog 之上再封装一层日志函数时使用，保证输出的是业务调用位置：
//
//	logger := clog.Must(nil, clog.WithCallerSkip(1))
func WithCallerSkip(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.callerSkip = n
		}
	}
}

// WithMeter 开启日志指标：每个级别输出/过滤的行数、行长度分布、分隔线数量
func WithMeter(meter metrics.Meter) Option {
	return func(o *options) {
		if meter != nil {
			o.meter = meter
		}
	}
}

// WithClock 替换时间源
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithOriginDetector 替换 goroutine 来源判断逻辑，默认为 DetectOrigin
func WithOriginDetector(detect func() Origin) Option {
	return func(o *options) {
		if detect != nil {
			o.originDetector = detect
		}
	}
}

// applyOptions 应用所有选项并返回配置（内部使用）
func applyOptions(opts ...Option) *options {
	o := &options{
		meter:          metrics.Discard(),
		clock:          time.Now,
		originDetector: DetectOrigin,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
