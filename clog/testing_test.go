package clog

import (
	"io"
)

// withWriter 是一个测试专用选项，用于将日志输出写入指定的 io.Writer
//
// 此选项仅用于测试，不在生产代码中使用。
func withWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}
