package clog

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"
)

// state 父子 Logger 共享的配置
type state struct {
	mu  sync.RWMutex
	cfg Config
	gen uint64 // 每次替换 cfg 加一，UpdateConfig 据此发现并发修改
}

// loggerImpl 是 Logger 接口的具体实现
type loggerImpl struct {
	state   *state
	sink    *sink
	options *options
	instr   *instruments
	header  string
}

// newLogger 创建 Logger 实例（内部使用），cfg 已经过校验
func newLogger(cfg Config, options *options) (Logger, error) {
	instr, err := newInstruments(options.meter)
	if err != nil {
		return nil, err
	}
	return &loggerImpl{
		state:   &state{cfg: cfg},
		sink:    sinkFor(options.writer),
		options: options,
		instr:   instr,
	}, nil
}

func (l *loggerImpl) Debug(parts ...any) {
	l.log(context.Background(), DebugLevel, parts)
}

func (l *loggerImpl) Info(parts ...any) {
	l.log(context.Background(), InfoLevel, parts)
}

func (l *loggerImpl) Check(parts ...any) {
	l.log(context.Background(), CheckLevel, parts)
}

func (l *loggerImpl) Warning(parts ...any) {
	l.log(context.Background(), WarningLevel, parts)
}

func (l *loggerImpl) Error(parts ...any) {
	l.log(context.Background(), ErrorLevel, parts)
}

func (l *loggerImpl) Fatal(parts ...any) {
	l.log(context.Background(), FatalLevel, parts)
}

func (l *loggerImpl) Log(level Level, parts ...any) {
	l.log(context.Background(), level, parts)
}

func (l *loggerImpl) LogContext(ctx context.Context, level Level, parts ...any) {
	l.log(ctx, level, parts)
}

func (l *loggerImpl) Print(parts ...any) {
	l.state.mu.RLock()
	level := l.state.cfg.DefaultLevel
	l.state.mu.RUnlock()
	l.log(context.Background(), level, parts)
}

func (l *loggerImpl) WithHeader(header string) Logger {
	child := *l
	child.header = header
	return &child
}

func (l *loggerImpl) Enabled(level Level) bool {
	l.state.mu.RLock()
	defer l.state.mu.RUnlock()
	return l.state.cfg.Allows(level)
}

func (l *loggerImpl) Config() Config {
	l.state.mu.RLock()
	defer l.state.mu.RUnlock()
	return l.state.cfg.Clone()
}

func (l *loggerImpl) SetConfig(cfg Config) error {
	next := cfg.Clone()
	if err := next.validate(); err != nil {
		return err
	}
	l.state.mu.Lock()
	l.state.cfg = next
	l.state.gen++
	l.state.mu.Unlock()
	return nil
}

// UpdateConfig 在副本上执行 fn，校验通过后替换
//
// fn 执行时不持有锁，可以在其中输出日志。期间配置被其他调用替换时，
// 基于新配置重新执行 fn，因此 fn 可能被调用多次。
func (l *loggerImpl) UpdateConfig(fn func(*Config)) error {
	for {
		l.state.mu.RLock()
		next := l.state.cfg.Clone()
		gen := l.state.gen
		l.state.mu.RUnlock()

		fn(&next)
		if err := next.validate(); err != nil {
			return err
		}

		l.state.mu.Lock()
		if l.state.gen == gen {
			l.state.cfg = next
			l.state.gen++
			l.state.mu.Unlock()
			return nil
		}
		l.state.mu.Unlock()
	}
}

func (l *loggerImpl) SetLevel(level Level) error {
	return l.UpdateConfig(func(c *Config) {
		c.MinimumLevel = level
	})
}

func (l *loggerImpl) Flush() {
	l.sink.sync()
}

func (l *loggerImpl) AddDivider() {
	cfg, ok := l.snapshot(func(c *Config) bool { return c.Enabled })
	if !ok {
		return
	}
	count := max(cfg.SeparatorRepeatCount, 0)
	l.sink.writeLine("\n" + strings.Repeat(cfg.SeparatorChar, count) + "\n")
	l.instr.divider(context.Background())
}

func (l *loggerImpl) DumpProperties(v any) {
	if _, ok := l.snapshot(func(c *Config) bool { return c.Enabled }); !ok {
		return
	}
	l.sink.writeLine(strings.TrimSuffix(Describe(v), "\n"))
}

// snapshot 在读锁内判断 gate，通过时返回配置快照
//
// BannedLevels 切片与共享状态共用底层数组，但状态只会被整体替换，不会原地修改。
func (l *loggerImpl) snapshot(gate func(*Config) bool) (Config, bool) {
	l.state.mu.RLock()
	defer l.state.mu.RUnlock()
	if !gate(&l.state.cfg) {
		return Config{}, false
	}
	return l.state.cfg, true
}

// log 内部方法：先过滤，再采集调用位置、格式化和输出
func (l *loggerImpl) log(ctx context.Context, level Level, parts []any) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, ok := l.snapshot(func(c *Config) bool { return c.Allows(level) })
	if !ok {
		l.instr.suppressed(ctx, level)
		return
	}

	// skip: runtime.Callers, log, Info/Debug 等公开方法
	var pcs [1]uintptr
	runtime.Callers(3+l.options.callerSkip, pcs[:])
	l.emit(ctx, &cfg, level, pcs[0], time.Time{}, parts)
}

// logAt 使用调用方提供的程序计数器和时间输出，供 slog 桥接使用
func (l *loggerImpl) logAt(ctx context.Context, level Level, pc uintptr, t time.Time, parts []any) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, ok := l.snapshot(func(c *Config) bool { return c.Allows(level) })
	if !ok {
		l.instr.suppressed(ctx, level)
		return
	}
	l.emit(ctx, &cfg, level, pc, t, parts)
}

func (l *loggerImpl) emit(ctx context.Context, cfg *Config, level Level, pc uintptr, t time.Time, parts []any) {
	if t.IsZero() {
		t = l.options.clock()
	}
	origin, ok := OriginFromContext(ctx)
	if !ok {
		origin = l.options.originDetector()
	}

	record := Record{
		Level:  level,
		Parts:  parts,
		Header: l.header,
		Caller: callerFromPC(pc),
		Time:   t,
		Origin: origin,
	}
	formatter := Formatter{Colored: cfg.EnableColor && l.sink.tty}
	line := formatter.Format(record, cfg)

	l.sink.writeLine(line)
	l.instr.emitted(ctx, level, len(line)+1)
}
