package clog

import (
	"strconv"
	"strings"
	"time"
)

// FormatTimestamp 按 Unicode 日期模式格式化 t
//
// 支持的字段：
//
//	yyyy 四位年   yy 两位年   MM 月   dd 日
//	HH   24 小时  hh 12 小时  mm 分   ss 秒
//	SSS  毫秒     a  AM/PM
//
// 单引号内为原样输出的文本，'' 表示一个单引号；其他字符原样输出。
// pattern 为空时使用 DefaultTimestampFormat。
func FormatTimestamp(t time.Time, pattern string) string {
	if pattern == "" {
		pattern = DefaultTimestampFormat
	}

	var sb strings.Builder
	for i := 0; i < len(pattern); {
		c := pattern[i]

		if c == '\'' {
			end := strings.IndexByte(pattern[i+1:], '\'')
			switch {
			case end == 0:
				sb.WriteByte('\'')
				i += 2
			case end < 0:
				sb.WriteString(pattern[i+1:])
				i = len(pattern)
			default:
				sb.WriteString(pattern[i+1 : i+1+end])
				i += end + 2
			}
			continue
		}

		n := runLength(pattern, i)
		switch {
		case c == 'y' && n >= 4:
			writePadded(&sb, t.Year(), 4)
			n = 4
		case c == 'y' && n >= 2:
			writePadded(&sb, t.Year()%100, 2)
			n = 2
		case c == 'M' && n >= 2:
			writePadded(&sb, int(t.Month()), 2)
			n = 2
		case c == 'd' && n >= 2:
			writePadded(&sb, t.Day(), 2)
			n = 2
		case c == 'H' && n >= 2:
			writePadded(&sb, t.Hour(), 2)
			n = 2
		case c == 'h' && n >= 2:
			h := t.Hour() % 12
			if h == 0 {
				h = 12
			}
			writePadded(&sb, h, 2)
			n = 2
		case c == 'm' && n >= 2:
			writePadded(&sb, t.Minute(), 2)
			n = 2
		case c == 's' && n >= 2:
			writePadded(&sb, t.Second(), 2)
			n = 2
		case c == 'S' && n >= 3:
			writePadded(&sb, t.Nanosecond()/int(time.Millisecond), 3)
			n = 3
		case c == 'a':
			if t.Hour() < 12 {
				sb.WriteString("AM")
			} else {
				sb.WriteString("PM")
			}
			n = 1
		default:
			sb.WriteByte(c)
			n = 1
		}
		i += n
	}
	return sb.String()
}

// runLength 返回从 i 开始连续相同字节的个数
func runLength(s string, i int) int {
	n := 1
	for i+n < len(s) && s[i+n] == s[i] {
		n++
	}
	return n
}

func writePadded(sb *strings.Builder, v, width int) {
	s := strconv.Itoa(v)
	for i := len(s); i < width; i++ {
		sb.WriteByte('0')
	}
	sb.WriteString(s)
}
