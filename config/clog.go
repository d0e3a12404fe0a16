package config

import (
	"context"

	"github.com/ceyewan/handylog/clog"
	"github.com/ceyewan/handylog/xerrors"
)

// DefaultLoggerKey BindLogger 默认读取的配置 key
const DefaultLoggerKey = "clog"

// DecodeLoggerConfig 读取 key 下的 clog.Config，未出现的字段保持 clog.NewDefaultConfig() 的值
func DecodeLoggerConfig(loader Loader, key string) (*clog.Config, error) {
	if key == "" {
		key = DefaultLoggerKey
	}
	if loader.Get(key) == nil {
		return nil, xerrors.Wrapf(xerrors.ErrNotFound, "config key %q", key)
	}

	cfg := clog.NewDefaultConfig()
	if err := loader.UnmarshalKey(key, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BindLogger 把 key 下的日志配置应用到 logger，并在配置文件变化时自动更新
//
// 初次读取失败时返回错误；之后的变更如果无法解析或校验不通过，
// 会通过 logger 自身输出一条警告，并保留当前配置。ctx 取消后停止监听。
func BindLogger(ctx context.Context, loader Loader, key string, logger clog.Logger) error {
	if loader == nil || logger == nil {
		return xerrors.Invalidf("loader and logger are required")
	}
	if key == "" {
		key = DefaultLoggerKey
	}

	cfg, err := DecodeLoggerConfig(loader, key)
	if err != nil {
		return err
	}
	if err := logger.SetConfig(*cfg); err != nil {
		return xerrors.Wrapf(err, "apply config key %q", key)
	}

	events, err := loader.Watch(ctx, key)
	if err != nil {
		return err
	}

	go func() {
		for range events {
			cfg, err := DecodeLoggerConfig(loader, key)
			if err == nil {
				err = logger.SetConfig(*cfg)
			}
			if err != nil {
				logger.Warning("ignored invalid logger config:", err)
				continue
			}
			logger.Check("logger config reloaded from", key)
		}
	}()
	return nil
}
