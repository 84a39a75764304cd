package metric

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/flowcanvas/errors"
)

func gatheredNames(t *testing.T, registry *MetricsRegistry) map[string]bool {
	t.Helper()
	families, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	return names
}

func TestNewMetricsRegistry(t *testing.T) {
	registry := NewMetricsRegistry()

	assert.NotNil(t, registry.PrometheusRegistry())
	assert.Same(t, registry.Metrics, registry.CoreMetrics())

	// Vectors without observations are not gathered; touch them first
	m := registry.CoreMetrics()
	m.NodesCreated.WithLabelValues("blockA").Inc()
	m.EdgesCreated.Inc()
	m.SessionOpened()

	names := gatheredNames(t, registry)
	assert.True(t, names["flowcanvas_nodes_created_total"])
	assert.True(t, names["flowcanvas_edges_created_total"])
	assert.True(t, names["flowcanvas_sessions_active"])
	assert.True(t, names["go_goroutines"], "runtime collectors should be registered")
}

func TestMetricsRegistry_RegisterCounter(t *testing.T) {
	registry := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_counter",
		Help: "A test counter",
	})

	require.NoError(t, registry.RegisterCounter("session", "test_counter", counter))
	counter.Inc()

	assert.True(t, gatheredNames(t, registry)["test_counter"])
}

func TestMetricsRegistry_PreventDuplicateRegistration(t *testing.T) {
	registry := NewMetricsRegistry()

	counter1 := prometheus.NewCounter(prometheus.CounterOpts{Name: "duplicate_counter", Help: "First counter"})
	counter2 := prometheus.NewCounter(prometheus.CounterOpts{Name: "duplicate_counter", Help: "First counter"})

	require.NoError(t, registry.RegisterCounter("session", "duplicate_counter", counter1))

	err := registry.RegisterCounter("session", "duplicate_counter", counter1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate metric registration")
	assert.True(t, errors.IsInvalid(err))

	err = registry.RegisterCounter("eventfeed", "duplicate_counter", counter2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prometheus conflict")
}

func TestMetricsRegistry_Unregister(t *testing.T) {
	registry := NewMetricsRegistry()

	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "unregister_counter",
		Help: "A counter to unregister",
	}, []string{"status"})
	require.NoError(t, registry.RegisterCounterVec("session", "unregister_counter", vec))
	vec.WithLabelValues("ok").Inc()
	require.True(t, gatheredNames(t, registry)["unregister_counter"])

	assert.True(t, registry.Unregister("session", "unregister_counter"))
	assert.False(t, gatheredNames(t, registry)["unregister_counter"])
	assert.False(t, registry.Unregister("session", "unregister_counter"))
}

func TestMetricsRegistry_ThreadSafety(t *testing.T) {
	registry := NewMetricsRegistry()

	var wg sync.WaitGroup
	numGoroutines := 10

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			gauge := prometheus.NewGauge(prometheus.GaugeOpts{
				Name: fmt.Sprintf("concurrent_gauge_%d", id),
				Help: "A concurrent gauge",
			})
			assert.NoError(t, registry.RegisterGauge("session", fmt.Sprintf("concurrent_gauge_%d", id), gauge))
		}(i)
	}
	wg.Wait()

	count := 0
	for name := range gatheredNames(t, registry) {
		if strings.HasPrefix(name, "concurrent_gauge_") {
			count++
		}
	}
	assert.Equal(t, numGoroutines, count)
}
