package config

import (
	"strings"

	"github.com/ceyewan/handylog/clog"
)

// DefaultEnvPrefix 默认环境变量前缀，例如 HANDYLOG_ENV=dev
const DefaultEnvPrefix = "HANDYLOG"

// Option 配置选项模式
type Option func(*options)

// options 加载器选项
type options struct {
	name      string   // 配置文件名称（不含扩展名）
	paths     []string // 配置文件搜索路径，默认 [".", "./config"]
	fileType  string   // 配置文件类型 (yaml, json, etc.)
	envPrefix string   // 环境变量前缀，默认 "HANDYLOG"
	logger    clog.Logger
}

func defaultOptions() *options {
	return &options{
		name:      "config",
		paths:     []string{".", "./config"},
		fileType:  "yaml",
		envPrefix: DefaultEnvPrefix,
		logger:    clog.Discard(),
	}
}

// validate 校验选项并规范化（内部使用）
func (o *options) validate() error {
	if o.name == "" {
		o.name = "config"
	}
	if len(o.paths) == 0 {
		o.paths = []string{".", "./config"}
	}
	if o.fileType == "" {
		o.fileType = "yaml"
	}
	if o.envPrefix == "" {
		o.envPrefix = DefaultEnvPrefix
	}
	o.envPrefix = strings.ToUpper(o.envPrefix)
	return nil
}

// WithConfigName 设置配置文件名称（不带扩展名）
func WithConfigName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithConfigPath 添加配置文件搜索路径
func WithConfigPath(path string) Option {
	return func(o *options) {
		o.paths = append(o.paths, path)
	}
}

// WithConfigPaths 设置配置文件搜索路径（覆盖默认值）
func WithConfigPaths(paths ...string) Option {
	return func(o *options) {
		o.paths = paths
	}
}

// WithConfigType 设置配置文件类型 (yaml, json, etc.)
func WithConfigType(typ string) Option {
	return func(o *options) {
		o.fileType = typ
	}
}

// WithEnvPrefix 设置环境变量前缀
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithLogger 设置加载器自身的日志输出，默认静默
func WithLogger(logger clog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger.WithHeader("config")
		}
	}
}
