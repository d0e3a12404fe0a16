package clog

import (
	"io"
	"os"
	"reflect"
	"sync"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap/zapcore"
)

// sink 串行化写入同一个输出目标
//
// 同一个 io.Writer 在进程内只对应一个 sink，所以不同 Logger 写同一个目标时也不会交错。
// 一行日志对应一次 Write 调用。
type sink struct {
	ws  zapcore.WriteSyncer
	tty bool
}

// sinks 只增不减。对外只能写标准输出，其他 writer 仅来自测试；
// 如果将来开放自定义 writer，需要在 Logger 不再使用时移除对应条目。
var (
	sinksMu sync.Mutex
	sinks   = make(map[io.Writer]*sink)
)

// sinkFor 返回 w 对应的共享 sink，nil 表示标准输出
func sinkFor(w io.Writer) *sink {
	if w == nil {
		w = os.Stdout
	}
	// 不可比较的类型不能作为 map key，只能独占一把锁
	if !reflect.TypeOf(w).Comparable() {
		return newSink(w)
	}

	sinksMu.Lock()
	defer sinksMu.Unlock()
	if s, ok := sinks[w]; ok {
		return s
	}
	s := newSink(w)
	sinks[w] = s
	return s
}

func newSink(w io.Writer) *sink {
	return &sink{
		ws:  zapcore.Lock(zapcore.AddSync(w)),
		tty: isTerminal(w),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// writeLine 写入一行并补上换行符
//
// 写入失败直接丢弃：标准输出不可用时日志组件无法自救，也不应影响业务。
func (s *sink) writeLine(line string) {
	buf := make([]byte, 0, len(line)+1)
	buf = append(buf, line...)
	buf = append(buf, '\n')
	_, _ = s.ws.Write(buf)
}

func (s *sink) sync() {
	_ = s.ws.Sync()
}
