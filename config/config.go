package config

import (
	"context"

	"github.com/ceyewan/handylog/xerrors"
)

// New 创建配置加载器，创建后需要调用 Load
func New(opts ...Option) (Loader, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	if err := options.validate(); err != nil {
		return nil, err
	}
	return newLoader(options), nil
}

// MustLoad 创建并加载配置，失败时 panic
func MustLoad(opts ...Option) Loader {
	loader := xerrors.Must(New(opts...))
	if err := loader.Load(context.Background()); err != nil {
		panic(err)
	}
	return loader
}
