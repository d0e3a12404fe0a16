// Package config 为 handylog 提供配置加载能力，基于 Viper 实现。
// 最主要的用途是从配置文件中读取 clog.Config，并在文件变化时热更新到运行中的 Logger。
//
// 特性：
//   - 多源配置加载：YAML/JSON 文件、环境变量、.env 文件
//   - 配置优先级：环境变量 > .env > 环境特定配置 > 基础配置
//   - 热更新支持：实时监听配置文件变化，自动通知应用
//   - 级别等字段直接从字符串解析（"warn"、"check,error"）
//
// 基本使用：
//
//	loader := config.MustLoad(
//		config.WithConfigName("config"),
//		config.WithConfigPaths("./config"),
//	)
//
//	logger := clog.Must(nil)
//	if err := config.BindLogger(ctx, loader, "clog", logger); err != nil {
//		panic(err)
//	}
//
// 配置文件示例：
//
//	clog:
//	  minimum_level: debug
//	  banned_levels: [check]
//	  timestamp_format: "HH:mm:ss.SSS"
//	  glyphs:
//	    info: "🔥"
package config

import (
	"context"
	"time"
)

// Loader 定义配置加载器的核心行为
// 职责：加载、解析和监听配置变化
type Loader interface {
	// Load 加载配置并初始化内部状态
	Load(ctx context.Context) error

	// Get 获取原始配置值
	Get(key string) any

	// Unmarshal 将整个配置反序列化到结构体
	Unmarshal(v any) error

	// UnmarshalKey 将指定 Key 的配置反序列化到结构体
	UnmarshalKey(key string, v any) error

	// Watch 监听配置变化，通过 context 取消监听
	Watch(ctx context.Context, key string) (<-chan Event, error)

	// Validate 验证当前配置的有效性
	Validate() error
}

// Event 配置变更事件
type Event struct {
	Key       string // 配置 key
	Value     any    // 新值
	OldValue  any    // 旧值
	Source    string // "file"
	Timestamp time.Time
}
