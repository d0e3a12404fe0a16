// Package xerrors 提供 handylog 各组件共用的错误处理工具。
//
// 日志调用本身从不返回错误；这里的工具只服务于初始化路径：
// 构造 Logger、加载配置、创建指标。
package xerrors

import (
	"errors"
	"fmt"
)

// 哨兵错误，配合 Is 使用
var (
	// ErrInvalidInput 输入（配置、级别名称等）无效
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound 请求的资源（配置文件、配置键）不存在
	ErrNotFound = errors.New("not found")
)

// Wrap 用上下文信息包装错误，保留错误链。
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf 用格式化的上下文信息包装错误。
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Invalidf 构造一个包装了 ErrInvalidInput 的错误。
func Invalidf(format string, args ...any) error {
	return Wrapf(ErrInvalidInput, format, args...)
}

// WithCode 用错误码包装错误。
func WithCode(err error, code string) error {
	if err == nil {
		return nil
	}
	return &CodedError{Code: code, Cause: err}
}

// CodedError 带有机器可读错误码的错误。
type CodedError struct {
	Code  string
	Cause error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %v", e.Code, e.Cause)
	}
	return fmt.Sprintf("[%s]", e.Code)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// GetCode 从错误链中提取错误码，没有则返回空串。
func GetCode(err error) string {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ""
}

// Must 在 err 不为 nil 时 panic，供 clog.Must、config.MustLoad 这类初始化入口使用。
func Must[T any](v T, err error) T {
	if err == nil {
		return v
	}
	panic(fmt.Sprintf("must: %v", err))
}

// Collector 收集多个错误，只保留第一个。
//
// 用于一次性创建多个指标的场景：全部创建完后检查 Err。
type Collector struct {
	err error
}

func (c *Collector) Collect(err error) {
	if err != nil && c.err == nil {
		c.err = err
	}
}

func (c *Collector) Err() error {
	return c.err
}

// 标准库函数再导出
var (
	New = errors.New
	Is  = errors.Is
	As  = errors.As
)
