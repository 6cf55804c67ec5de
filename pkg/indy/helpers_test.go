package indy_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/sbca/indy-go/pkg/indy"
	"github.com/sbca/indy-go/pkg/indy/indytest"
	"github.com/sbca/indy-go/pkg/indy/logging"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type harness struct {
	lib  *indy.Library
	fake *indytest.Library
	logs *lockedBuffer
	reg  *prometheus.Registry
}

func newHarness(t *testing.T, cfg indy.Config) *harness {
	t.Helper()
	h := &harness{fake: indytest.New(), logs: &lockedBuffer{}, reg: prometheus.NewRegistry()}

	handler := slog.NewTextHandler(h.logs, &slog.HandlerOptions{
		Level:       logging.LevelTrace,
		ReplaceAttr: logging.ReplaceLevel,
	})
	cfg.Logger = logging.New(slog.New(handler))

	m, err := indy.NewMetrics(h.reg)
	require.NoError(t, err)
	cfg.Metrics = m

	h.lib = indy.NewLibrary(h.fake, cfg)
	require.NoError(t, h.lib.Init(context.Background()))
	return h
}

func (h *harness) declare(t *testing.T, d indy.Descriptor) *indy.Command {
	t.Helper()
	cmd, err := h.lib.Declare(d)
	require.NoError(t, err)
	return cmd
}

// metric returns the value of the counter or gauge name whose labels include
// every pair in labels.
func (h *harness) metric(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := h.reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			if matchLabels(m, labels) {
				switch {
				case m.Counter != nil:
					return m.Counter.GetValue()
				case m.Gauge != nil:
					return m.Gauge.GetValue()
				case m.Histogram != nil:
					return float64(m.Histogram.GetSampleCount())
				}
			}
		}
	}
	return 0
}

func matchLabels(m *dto.Metric, want map[string]string) bool {
	have := make(map[string]string, len(m.GetLabel()))
	for _, l := range m.GetLabel() {
		have[l.GetName()] = l.GetValue()
	}
	for k, v := range want {
		if have[k] != v {
			return false
		}
	}
	return true
}

// echoString completes with the first parameter read as a string.
func echoString(c *indytest.Call) int32 {
	s, _ := c.String(0)
	c.Complete(s)
	return 0
}
