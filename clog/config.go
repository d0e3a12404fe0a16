package clog

import (
	"slices"

	"github.com/ceyewan/handylog/xerrors"
)

// DefaultTimestampFormat 默认时间戳格式，语法见 FormatTimestamp
const DefaultTimestampFormat = "HH:mm:ss"

// LevelGlyphs 每个级别对应的图标
type LevelGlyphs struct {
	Debug   string `mapstructure:"debug" json:"debug"`
	Info    string `mapstructure:"info" json:"info"`
	Check   string `mapstructure:"check" json:"check"`
	Warning string `mapstructure:"warning" json:"warning"`
	Error   string `mapstructure:"error" json:"error"`
	Fatal   string `mapstructure:"fatal" json:"fatal"`
}

var defaultGlyphs = LevelGlyphs{
	Debug:   "🔥",
	Info:    "✳️",
	Check:   "☑️",
	Warning: "⚠️",
	Error:   "❌",
	Fatal:   "🆘",
}

// For 返回 level 对应的图标
func (g LevelGlyphs) For(level Level) string {
	switch level {
	case DebugLevel:
		return g.Debug
	case InfoLevel:
		return g.Info
	case CheckLevel:
		return g.Check
	case WarningLevel:
		return g.Warning
	case ErrorLevel:
		return g.Error
	case FatalLevel:
		return g.Fatal
	default:
		return ""
	}
}

// Set 修改 level 对应的图标
func (g *LevelGlyphs) Set(level Level, glyph string) {
	switch level {
	case DebugLevel:
		g.Debug = glyph
	case InfoLevel:
		g.Info = glyph
	case CheckLevel:
		g.Check = glyph
	case WarningLevel:
		g.Warning = glyph
	case ErrorLevel:
		g.Error = glyph
	case FatalLevel:
		g.Fatal = glyph
	}
}

// ThreadGlyphs 区分主 goroutine 与后台 goroutine 的标记
type ThreadGlyphs struct {
	Main       string `mapstructure:"main" json:"main"`
	Background string `mapstructure:"background" json:"background"`
}

// For 返回 origin 对应的标记
func (g ThreadGlyphs) For(origin Origin) string {
	if origin == OriginMain {
		return g.Main
	}
	return g.Background
}

// Config 日志配置，每个 Logger 持有自己的一份
//
// 所有字段都可以在创建后修改（通过 Logger.SetConfig / Logger.UpdateConfig），
// 修改从下一行日志开始生效。
//
// 一条日志是否输出：Enabled && level >= MinimumLevel && level 不在 BannedLevels 中。
//
// 推荐从 NewDefaultConfig 出发再做修改；零值 Config 的 Enabled 为 false。
//
// 示例（YAML）：
//
//	clog:
//	  enabled: true
//	  minimum_level: debug
//	  banned_levels: [check]
//	  start_from_new_line: false
//	  timestamp_format: "HH:mm:ss.SSS"
//	  glyphs:
//	    info: "🔥"
type Config struct {
	Enabled          bool    `mapstructure:"enabled" json:"enabled"`
	MinimumLevel     Level   `mapstructure:"minimum_level" json:"minimumLevel"`
	BannedLevels     []Level `mapstructure:"banned_levels" json:"bannedLevels"`
	DefaultLevel     Level   `mapstructure:"default_level" json:"defaultLevel"` // Print 使用的级别
	StartFromNewLine bool    `mapstructure:"start_from_new_line" json:"startFromNewLine"`

	TimestampFormat string `mapstructure:"timestamp_format" json:"timestampFormat"` // 为空时使用 DefaultTimestampFormat
	TimestampGlyph  string `mapstructure:"timestamp_glyph" json:"timestampGlyph"`

	SeparatorChar        string `mapstructure:"separator_char" json:"separatorChar"`
	SeparatorRepeatCount int    `mapstructure:"separator_repeat_count" json:"separatorRepeatCount"`

	Glyphs          LevelGlyphs  `mapstructure:"glyphs" json:"glyphs"`
	ThreadGlyphs    ThreadGlyphs `mapstructure:"thread_glyphs" json:"threadGlyphs"`
	LineMarkerGlyph string       `mapstructure:"line_marker_glyph" json:"lineMarkerGlyph"`

	// EnableColor 为级别标签着色，输出目标不是终端时自动关闭
	EnableColor bool `mapstructure:"enable_color" json:"enableColor"`
}

// NewDefaultConfig 返回默认配置
func NewDefaultConfig() *Config {
	return &Config{
		Enabled:              true,
		MinimumLevel:         InfoLevel,
		DefaultLevel:         InfoLevel,
		TimestampFormat:      DefaultTimestampFormat,
		TimestampGlyph:       "⏱",
		SeparatorChar:        "=",
		SeparatorRepeatCount: 80,
		Glyphs:               defaultGlyphs,
		ThreadGlyphs: ThreadGlyphs{
			Main:       "(main)",
			Background: "(background)",
		},
		LineMarkerGlyph: "➡️",
	}
}

// Clone 返回深拷贝
func (c *Config) Clone() Config {
	out := *c
	out.BannedLevels = slices.Clone(c.BannedLevels)
	return out
}

// Allows 判断 level 的日志是否应该输出
func (c *Config) Allows(level Level) bool {
	return c.Enabled && level >= c.MinimumLevel && !c.IsBanned(level)
}

// IsBanned 判断 level 是否被屏蔽
func (c *Config) IsBanned(level Level) bool {
	return slices.Contains(c.BannedLevels, level)
}

// Ban 屏蔽若干级别
func (c *Config) Ban(levels ...Level) {
	for _, level := range levels {
		if !c.IsBanned(level) {
			c.BannedLevels = append(c.BannedLevels, level)
		}
	}
}

// Unban 取消屏蔽
func (c *Config) Unban(levels ...Level) {
	c.BannedLevels = slices.DeleteFunc(c.BannedLevels, func(l Level) bool {
		return slices.Contains(levels, l)
	})
}

// validate 验证配置的有效性，并补全为空的字符串字段（内部使用）
//
// 越界的级别返回 ErrInvalidInput。时间戳格式、各类图标为空时回退到默认值，
// 保证每行日志都带有级别图标、时间戳图标、goroutine 标记和行号标记。
// 空分隔符、0 重复次数都是合法的，负数重复次数按 0 处理。
func (c *Config) validate() error {
	if !c.MinimumLevel.Valid() {
		return xerrors.Invalidf("minimum level %d", c.MinimumLevel)
	}
	if !c.DefaultLevel.Valid() {
		return xerrors.Invalidf("default level %d", c.DefaultLevel)
	}
	for _, level := range c.BannedLevels {
		if !level.Valid() {
			return xerrors.Invalidf("banned level %d", level)
		}
	}

	def := NewDefaultConfig()
	fill(&c.TimestampFormat, def.TimestampFormat)
	fill(&c.TimestampGlyph, def.TimestampGlyph)
	fill(&c.LineMarkerGlyph, def.LineMarkerGlyph)
	fill(&c.ThreadGlyphs.Main, def.ThreadGlyphs.Main)
	fill(&c.ThreadGlyphs.Background, def.ThreadGlyphs.Background)
	for _, level := range AllLevels() {
		if c.Glyphs.For(level) == "" {
			c.Glyphs.Set(level, def.Glyphs.For(level))
		}
	}
	c.SeparatorRepeatCount = max(c.SeparatorRepeatCount, 0)
	return nil
}

func fill(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}
