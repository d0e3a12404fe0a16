package clog

import (
	"fmt"
	"strings"

	"github.com/ceyewan/handylog/xerrors"
)

// Level 日志级别类型
//
// 支持6个级别，按严重程度递增：
//
//	DebugLevel:   调试信息，默认被过滤
//	InfoLevel:    一般信息，默认最低输出级别
//	CheckLevel:   检查点，标记流程走到了某一步
//	WarningLevel: 警告信息，表示潜在问题
//	ErrorLevel:   错误信息，表示程序出错但可恢复
//	FatalLevel:   致命错误（仅表示严重程度，不会退出进程）
//
// 级别之间可以直接比较大小，数值越大越严重。
type Level uint8

const (
	DebugLevel   Level = iota // 调试级别
	InfoLevel                 // 信息级别
	CheckLevel                // 检查级别
	WarningLevel              // 警告级别
	ErrorLevel                // 错误级别
	FatalLevel                // 致命级别
)

var levelNames = [...]string{"debug", "info", "check", "warning", "error", "fatal"}

// 固定 5 字符宽度，保证日志行对齐
var levelLabels = [...]string{"Debug", "Info ", "Check", "Warn ", "Error", "Fatal"}

// AllLevels 按严重程度递增返回所有级别
func AllLevels() []Level {
	return []Level{DebugLevel, InfoLevel, CheckLevel, WarningLevel, ErrorLevel, FatalLevel}
}

// Valid 判断 l 是否为已定义的级别
func (l Level) Valid() bool {
	return int(l) < len(levelNames)
}

// String 返回小写的级别名称
//
//	clog.InfoLevel.String()    // "info"
//	clog.WarningLevel.String() // "warning"
func (l Level) String() string {
	if !l.Valid() {
		return fmt.Sprintf("level(%d)", l)
	}
	return levelNames[l]
}

// Name 返回日志行中使用的定宽标签，例如 "Info "、"Warn "
func (l Level) Name() string {
	if !l.Valid() {
		return "?????"
	}
	return levelLabels[l]
}

// Glyph 返回 cfg 中为该级别配置的图标，未配置时回退到内置图标
func (l Level) Glyph(cfg *Config) string {
	if cfg != nil {
		if g := cfg.Glyphs.For(l); g != "" {
			return g
		}
	}
	return defaultGlyphs.For(l)
}

// MarshalText 实现 encoding.TextMarshaler
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, xerrors.Invalidf("log level %d", l)
	}
	return []byte(l.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler，配置文件与环境变量通过它解析级别
func (l *Level) UnmarshalText(text []byte) error {
	level, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = level
	return nil
}

// ParseLevel 将字符串解析为 Level
//
// 支持的字符串（不区分大小写）：
//
//	"debug", "info", "check", "warning", "warn", "error", "fatal"
//
// 如果无法解析，会返回 InfoLevel 和包装了 xerrors.ErrInvalidInput 的错误。
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "check":
		return CheckLevel, nil
	case "warning", "warn":
		return WarningLevel, nil
	case "error":
		return ErrorLevel, nil
	case "fatal":
		return FatalLevel, nil
	default:
		return InfoLevel, xerrors.Invalidf("unknown log level %q", s)
	}
}

// ParseLevels 解析逗号分隔的级别列表，例如 "check, error"
//
// 空串与空项被忽略，返回空切片；任意一项无法解析时返回错误。
// 环境变量、.env 只能以这种形式提供 BannedLevels。
func ParseLevels(s string) ([]Level, error) {
	levels := []Level{}
	for item := range strings.SplitSeq(s, ",") {
		if strings.TrimSpace(item) == "" {
			continue
		}
		level, err := ParseLevel(item)
		if err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}
	return levels, nil
}
