package clog

import (
	"context"

	"github.com/ceyewan/handylog/metrics"
	"github.com/ceyewan/handylog/xerrors"
)

const (
	MetricLinesTotal    = "clog_lines_total"
	MetricLineBytes     = "clog_line_bytes"
	MetricDividersTotal = "clog_dividers_total"
)

var lineBytesBuckets = []float64{32, 64, 128, 256, 512, 1024, 4096}

// instruments 日志组件自身的指标
type instruments struct {
	lines    metrics.Counter
	bytes    metrics.Histogram
	dividers metrics.Counter
}

func newInstruments(m metrics.Meter) (*instruments, error) {
	lines, err := m.Counter(MetricLinesTotal, "按级别和结果统计的日志行数")
	if err != nil {
		return nil, xerrors.Wrap(err, "clog metrics")
	}
	bytes, err := m.Histogram(MetricLineBytes, "输出日志行的字节数",
		metrics.WithUnit("By"),
		metrics.WithBuckets(lineBytesBuckets...),
	)
	if err != nil {
		return nil, xerrors.Wrap(err, "clog metrics")
	}
	dividers, err := m.Counter(MetricDividersTotal, "输出的分隔线数量")
	if err != nil {
		return nil, xerrors.Wrap(err, "clog metrics")
	}
	return &instruments{lines: lines, bytes: bytes, dividers: dividers}, nil
}

func (i *instruments) emitted(ctx context.Context, level Level, size int) {
	lv := metrics.L(metrics.LabelLevel, level.String())
	i.lines.Inc(ctx, lv, metrics.L(metrics.LabelOutcome, metrics.OutcomeEmitted))
	i.bytes.Record(ctx, float64(size), lv)
}

func (i *instruments) suppressed(ctx context.Context, level Level) {
	i.lines.Inc(ctx,
		metrics.L(metrics.LabelLevel, level.String()),
		metrics.L(metrics.LabelOutcome, metrics.OutcomeSuppressed),
	)
}

func (i *instruments) divider(ctx context.Context) {
	i.dividers.Inc(ctx)
}
