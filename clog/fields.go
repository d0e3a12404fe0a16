package clog

import (
	"log/slog"
	"strings"
	"time"

	"github.com/ceyewan/handylog/xerrors"
)

// Field 是 slog.Attr 的类型别名，可以直接作为日志的一个 part 传入
//
//	logger.Info("request done", clog.String("path", "/users"), clog.Duration("cost", d))
//
// 输出：request done path=/users cost=12ms
type Field = slog.Attr

// String 创建字符串字段
func String(k, v string) Field {
	return slog.String(k, v)
}

// Int 创建整数字段
func Int(k string, v int) Field {
	return slog.Int(k, v)
}

// Int64 创建64位整数字段
func Int64(k string, v int64) Field {
	return slog.Int64(k, v)
}

// Float64 创建浮点数字段
func Float64(k string, v float64) Field {
	return slog.Float64(k, v)
}

// Bool 创建布尔字段
func Bool(k string, v bool) Field {
	return slog.Bool(k, v)
}

// Time 创建时间字段
func Time(k string, v time.Time) Field {
	return slog.Time(k, v)
}

// Duration 创建时间长度字段
func Duration(k string, v time.Duration) Field {
	return slog.Duration(k, v)
}

// Any 创建任意类型字段
func Any(k string, v any) Field {
	return slog.Any(k, v)
}

// Error 将错误简化为仅包含错误消息的字段，err 为 nil 时返回空字段（不输出）
//
//	logger.Error("open failed", clog.Error(err))
//
// 输出：open failed err_msg=file not found
func Error(err error) Field {
	if err == nil {
		return Field{}
	}
	return slog.String("err_msg", err.Error())
}

// ErrorWithCode 包含错误代码的错误字段，code 为空时尝试从 xerrors.CodedError 中读取
//
// 输出：error.msg=invalid email error.code=ERR_INVALID_INPUT
func ErrorWithCode(err error, code string) Field {
	if code == "" {
		code = xerrors.GetCode(err)
	}
	if err == nil {
		return slog.Group("error", slog.String("code", code))
	}
	return slog.Group("error",
		slog.String("msg", err.Error()),
		slog.String("code", code),
	)
}

// renderAttr 渲染为 key=value，分组的键以 "group." 为前缀
func renderAttr(prefix string, a slog.Attr) string {
	a.Value = a.Value.Resolve()
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		group := a.Value.Group()
		rendered := make([]string, 0, len(group))
		for _, ga := range group {
			if ga.Equal(slog.Attr{}) {
				continue
			}
			rendered = append(rendered, renderAttr(prefix, ga))
		}
		return strings.Join(rendered, " ")
	}
	return prefix + a.Key + "=" + Render(a.Value.Any())
}
