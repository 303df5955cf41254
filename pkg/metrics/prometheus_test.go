package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue sums a counter family across label sets matching want.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	total := 0.0
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			for k, v := range want {
				if labels[k] != v {
					continue metrics
				}
			}
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordToolCall("rsi", "ok")
	r.RecordToolCall("rsi", "ok")
	r.RecordToolCall("sma", "invalid")
	r.RecordCacheLookup("rsi", true)
	r.RecordError("audit_publish")
	r.RecordLatency("tool.rsi", 0.002)

	assert.Equal(t, 2.0, counterValue(t, reg, "tamcp_tool_calls_total", map[string]string{"tool": "rsi", "status": "ok"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "tamcp_tool_calls_total", map[string]string{"tool": "sma"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "tamcp_cache_lookups_total", map[string]string{"hit": "true"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "tamcp_errors_total", nil))
}

func TestNewRegistryGathers(t *testing.T) {
	reg := NewRegistry()
	New(reg)
	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
