package metrics

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceyewan/handylog/xerrors"
)

func shutdown(t *testing.T, m Meter) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, m.Shutdown(ctx))
}

// counterValue 从 registry 中汇总指定名称、匹配标签的计数器值
func counterValue(t *testing.T, reg *promclient.Registry, name string, labels ...Label) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	var sum float64
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	next:
		for _, m := range family.GetMetric() {
			for _, want := range labels {
				found := false
				for _, lp := range m.GetLabel() {
					if lp.GetName() == want.Key && lp.GetValue() == want.Value {
						found = true
						break
					}
				}
				if !found {
					continue next
				}
			}
			sum += m.GetCounter().GetValue()
		}
	}
	return sum
}

// TestNew 测试创建 Meter 实例
func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *Config
		wantErr  bool
		wantNoop bool
	}{
		{name: "nil config", cfg: nil, wantErr: true},
		{name: "disabled", cfg: &Config{ServiceName: "svc"}, wantNoop: true},
		{name: "dev default", cfg: NewDevDefaultConfig("svc")},
		{name: "bad path", cfg: &Config{Enabled: true, Port: 9191, Path: "metrics"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meter, err := New(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, xerrors.Is(err, xerrors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			require.NotNil(t, meter)
			_, isNoop := meter.(*noopMeter)
			assert.Equal(t, tt.wantNoop, isNoop)
			shutdown(t, meter)
		})
	}
}

// TestDiscard 所有操作都应正常但不产生任何效果
func TestDiscard(t *testing.T) {
	meter := Discard()
	ctx := context.Background()

	counter, err := meter.Counter("test", "test")
	require.NoError(t, err)
	counter.Inc(ctx)
	counter.Add(ctx, 3)

	histogram, err := meter.Histogram("test", "test")
	require.NoError(t, err)
	histogram.Record(ctx, 0.123)

	assert.NoError(t, meter.Shutdown(ctx))
}

func TestCounterRecordsIntoRegistry(t *testing.T) {
	meter, err := New(NewDevDefaultConfig("clog-test"))
	require.NoError(t, err)
	defer shutdown(t, meter)

	reg := meter.(*meterImpl).registry
	ctx := context.Background()

	counter, err := meter.Counter("jobs_total", "任务总数")
	require.NoError(t, err)

	counter.Inc(ctx, L(LabelLevel, "info"))
	counter.Inc(ctx, L(LabelLevel, "info"))
	counter.Add(ctx, 3, L(LabelLevel, "error"))
	counter.Add(ctx, -5, L(LabelLevel, "error")) // 负数被忽略

	assert.Equal(t, float64(2), counterValue(t, reg, "jobs_total", L(LabelLevel, "info")))
	assert.Equal(t, float64(3), counterValue(t, reg, "jobs_total", L(LabelLevel, "error")))
	assert.Equal(t, float64(5), counterValue(t, reg, "jobs_total"))
}

func TestHistogramOptions(t *testing.T) {
	meter, err := New(NewDevDefaultConfig("clog-test"))
	require.NoError(t, err)
	defer shutdown(t, meter)

	histogram, err := meter.Histogram("line_length", "日志行长度",
		WithUnit("By"),
		WithBuckets(16, 64, 256),
	)
	require.NoError(t, err)
	histogram.Record(context.Background(), 42, L(LabelLevel, "info"))

	families, err := meter.(*meterImpl).registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	o := applyOptions(WithLogger(logger))
	o.logger.Info("hello")
	assert.Contains(t, buf.String(), "namespace=metrics")

	// nil 被忽略，保留默认值
	o = applyOptions(WithLogger(nil))
	assert.Same(t, slog.Default(), o.logger)
}

func TestMetricOptions(t *testing.T) {
	o := &MetricOptions{}
	WithUnit("s")(o)
	WithBuckets(1, 2)(o)
	assert.Equal(t, "s", o.Unit)
	assert.Equal(t, []float64{1, 2}, o.Buckets)
	assert.Equal(t, Label{Key: "k", Value: "v"}, L("k", "v"))
}

func TestDefaultConfigs(t *testing.T) {
	dev := NewDevDefaultConfig("svc")
	assert.True(t, dev.Enabled)
	assert.Equal(t, "dev", dev.Version)
	assert.Zero(t, dev.Port)

	prod := NewProdDefaultConfig("svc", "v1.2.3")
	assert.Equal(t, "v1.2.3", prod.Version)
	assert.Equal(t, 9090, prod.Port)
	assert.Equal(t, "/metrics", prod.Path)
}

// freePort 申请一个当前空闲的端口
func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestServeMetrics(t *testing.T) {
	port := freePort(t)
	cfg := NewDevDefaultConfig("clog-test")
	cfg.Port = port

	meter, err := New(cfg)
	require.NoError(t, err)
	defer shutdown(t, meter)

	counter, err := meter.Counter("served_total", "暴露给 Prometheus 的计数器")
	require.NoError(t, err)
	counter.Inc(context.Background(), L(LabelOutcome, OutcomeEmitted))

	url := "http://127.0.0.1:" + strconv.Itoa(port) + cfg.Path
	var body string
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil || resp.StatusCode != http.StatusOK {
			return false
		}
		body = string(data)
		return true
	}, 5*time.Second, 50*time.Millisecond)

	assert.Contains(t, body, "served_total")
	assert.Contains(t, body, `outcome="emitted"`)
}
