package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookswap-hub/bookswap/shared/shell"
	"github.com/bookswap-hub/bookswap/shared/shell/telemetry"
)

func Test_MetricsCollector_IncrementCounter(t *testing.T) {
	// arrange
	registry := prometheus.NewRegistry()
	collector := telemetry.NewMetricsCollector(registry)
	labels := shell.BuildCommandLabels("ProposeSwap", shell.StatusSuccess)

	// act
	collector.IncrementCounter(shell.CommandHandlerCallsMetric, labels)
	collector.IncrementCounterContext(context.Background(), shell.CommandHandlerCallsMetric, labels)

	// assert
	count, err := testutil.GatherAndCount(registry, "bookswap_"+shell.CommandHandlerCallsMetric)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	families, err := registry.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.InDelta(t, 2.0, families[0].GetMetric()[0].GetCounter().GetValue(), 0.0001)
}

func Test_MetricsCollector_RecordDuration(t *testing.T) {
	// arrange
	registry := prometheus.NewRegistry()
	collector := telemetry.NewMetricsCollector(registry)

	// act
	collector.RecordDurationContext(context.Background(), shell.QueryHandlerDurationMetric, 20*time.Millisecond,
		shell.BuildQueryLabels("Bookshelf", shell.StatusSuccess))

	// assert
	families, err := registry.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	histogram := families[0].GetMetric()[0].GetHistogram()
	assert.Equal(t, uint64(1), histogram.GetSampleCount())
	assert.InDelta(t, 0.02, histogram.GetSampleSum(), 0.0001)
}

func Test_MetricsCollector_RecordValue_CountersAndGauges(t *testing.T) {
	// arrange
	registry := prometheus.NewRegistry()
	collector := telemetry.NewMetricsCollector(registry)
	labels := map[string]string{"operation": "append"}

	// act
	collector.RecordValue("eventstore_events_appended_total", 3, labels)
	collector.RecordValue("eventstore_events_appended_total", 2, labels)
	collector.RecordValue("books_available", 7, nil)
	collector.RecordValue("books_available", 5, nil)

	// assert
	families, err := registry.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, family := range families {
		metric := family.GetMetric()[0]
		if metric.GetCounter() != nil {
			values[family.GetName()] = metric.GetCounter().GetValue()
		} else {
			values[family.GetName()] = metric.GetGauge().GetValue()
		}
	}
	assert.InDelta(t, 5.0, values["bookswap_eventstore_events_appended_total"], 0.0001)
	assert.InDelta(t, 5.0, values["bookswap_books_available"], 0.0001)
}
