package metrics_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caster/engine"
	"caster/examples/units"
	"caster/metrics"
	"caster/registry"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()

	reg := registry.New()
	celsius := reflect.TypeFor[units.Celsius]()
	require.NoError(t, reg.RegisterConverter(celsius, "ToFahrenheit"))
	require.NoError(t, reg.RegisterConverter(celsius, "ToKelvin"))

	return engine.New(engine.Config{Registry: reg})
}

func TestCollectorDescribe(t *testing.T) {
	col := metrics.NewCollector(newTestEngine(t), "test")

	ch := make(chan *prometheus.Desc, 8)
	col.Describe(ch)
	close(ch)

	var descs []*prometheus.Desc
	for d := range ch {
		descs = append(descs, d)
	}

	assert.Len(t, descs, 3)
}

func TestCollectorCollect(t *testing.T) {
	eng := newTestEngine(t)
	col := metrics.NewCollector(eng, "test")

	fahrenheit := reflect.TypeFor[units.Fahrenheit]()

	_, ok := eng.Cast(units.Celsius(0), fahrenheit)
	require.True(t, ok)
	_, ok = eng.Cast(units.Celsius(10), fahrenheit)
	require.True(t, ok)
	_, ok = eng.Cast(units.Celsius(20), fahrenheit)
	require.True(t, ok)

	res := eng.TryCast(units.Celsius(-300), reflect.TypeFor[units.Kelvin]())
	require.Equal(t, engine.ReasonFault, res.Reason)

	expected := `
# HELP test_caster_cache_entries Resolved conversion entries held by the cache.
# TYPE test_caster_cache_entries gauge
test_caster_cache_entries 2
# HELP test_caster_faults_total Conversion attempts that faulted in converter code.
# TYPE test_caster_faults_total counter
test_caster_faults_total 1
# HELP test_caster_lookups_total Cache lookups partitioned by result.
# TYPE test_caster_lookups_total counter
test_caster_lookups_total{result="hit"} 2
test_caster_lookups_total{result="miss"} 2
`

	require.NoError(t, testutil.CollectAndCompare(col, strings.NewReader(expected)))
}
