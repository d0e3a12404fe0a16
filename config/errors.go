package config

import "github.com/ceyewan/handylog/xerrors"

// ErrValidationFailed 加载完成后配置为空或不可用，属于 ErrInvalidInput
var ErrValidationFailed = xerrors.Wrap(xerrors.ErrInvalidInput, "configuration validation failed")

// IsNotFound 配置文件或配置 key 不存在
func IsNotFound(err error) bool {
	return xerrors.Is(err, xerrors.ErrNotFound)
}

// IsInvalidInput 配置无法解析，或者解析出的 clog.Config 校验失败
func IsInvalidInput(err error) bool {
	return xerrors.Is(err, xerrors.ErrInvalidInput)
}

// WrapLoadError 为读取 name 对应的配置文件时的错误附加文件名
func WrapLoadError(err error, name string) error {
	return xerrors.Wrapf(err, "failed to load config %q", name)
}
