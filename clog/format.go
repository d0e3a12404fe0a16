package clog

import (
	"fmt"
	"log/slog"
	"path"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/logrusorgru/aurora"
)

// Caller 调用位置
type Caller struct {
	File     string
	Function string
	Line     int
}

// Record 一条待输出的日志，只在一次调用内存在
type Record struct {
	Level  Level
	Parts  []any
	Header string
	Caller Caller
	Time   time.Time
	Origin Origin
}

// callerFromPC 将程序计数器解析为调用位置
func callerFromPC(pc uintptr) Caller {
	if pc == 0 {
		return Caller{File: "???", Function: "???"}
	}
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	return Caller{File: frame.File, Function: frame.Function, Line: frame.Line}
}

// Formatter 把 Record 格式化为一行文本，无副作用
//
// 输出格式：
//
//	<图标><级别> <时间图标><时间> <线程标记> <行号图标><文件>.<函数> (<行号>)<图标> [<header> : ]<消息>
//
// StartFromNewLine 为 true 时，消息前的空格换成换行。返回值不含结尾换行。
type Formatter struct {
	Colored bool
}

// Format 格式化 r
func (f Formatter) Format(r Record, cfg *Config) string {
	glyph := r.Level.Glyph(cfg)
	name := r.Level.Name()
	if f.Colored {
		name = colorize(r.Level, name)
	}

	var sb strings.Builder
	sb.WriteString(glyph)
	sb.WriteString(name)
	sb.WriteByte(' ')

	sb.WriteString(cfg.TimestampGlyph)
	sb.WriteString(FormatTimestamp(r.Time, cfg.TimestampFormat))
	sb.WriteByte(' ')

	sb.WriteString(cfg.ThreadGlyphs.For(r.Origin))
	sb.WriteByte(' ')

	sb.WriteString(cfg.LineMarkerGlyph)
	sb.WriteString(ShortFile(r.Caller.File))
	sb.WriteByte('.')
	sb.WriteString(ShortFunction(r.Caller.Function))
	sb.WriteString(" (")
	sb.WriteString(strconv.Itoa(r.Caller.Line))
	sb.WriteByte(')')
	sb.WriteString(glyph)

	if cfg.StartFromNewLine {
		sb.WriteByte('\n')
	} else {
		sb.WriteByte(' ')
	}

	if r.Header != "" {
		sb.WriteString(r.Header)
		sb.WriteString(" : ")
	}
	sb.WriteString(JoinParts(r.Parts))
	return sb.String()
}

func colorize(level Level, name string) string {
	switch level {
	case DebugLevel:
		return aurora.Gray(12, name).String()
	case InfoLevel:
		return aurora.Cyan(name).String()
	case CheckLevel:
		return aurora.Green(name).String()
	case WarningLevel:
		return aurora.Yellow(name).String()
	case ErrorLevel:
		return aurora.Red(name).String()
	default:
		return aurora.BgRed(name).Bold().String()
	}
}

// JoinParts 逐个渲染后用单个空格连接，空 Field 会被跳过
func JoinParts(parts []any) string {
	if len(parts) == 1 {
		return Render(parts[0])
	}
	var sb strings.Builder
	n := 0
	for _, p := range parts {
		if a, ok := p.(slog.Attr); ok && a.Equal(slog.Attr{}) {
			continue
		}
		if n > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(Render(p))
		n++
	}
	return sb.String()
}

// Render 把任意值渲染为字符串，永不 panic
//
// 渲染失败（例如 nil 指针上的 String 方法 panic）时返回类型占位符 "<!T>"。
func Render(v any) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = fmt.Sprintf("<!%T>", v)
		}
	}()

	switch x := v.(type) {
	case nil:
		return "<nil>"
	case slog.Attr:
		if x.Equal(slog.Attr{}) {
			return ""
		}
		return renderAttr("", x)
	case string:
		return x
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}

// ShortFile 去掉路径和扩展名：/src/app/handler.go -> handler
func ShortFile(file string) string {
	base := path.Base(file)
	return strings.TrimSuffix(base, path.Ext(base))
}

// ShortFunction 去掉包路径并简化接收者：
// github.com/x/app.(*Server).Serve -> Server.Serve
func ShortFunction(fn string) string {
	if i := strings.LastIndexByte(fn, '/'); i >= 0 {
		fn = fn[i+1:]
	}
	if i := strings.IndexByte(fn, '.'); i >= 0 {
		fn = fn[i+1:]
	}
	return strings.NewReplacer("(*", "", ")", "").Replace(fn)
}
