package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flashkit/pkg/metrics"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(metrics.WithRegistry(reg), metrics.WithNamespace("test"))

	m.NotificationQueued("success")
	m.NotificationQueued("success")
	m.NotificationQueued("")
	m.NotificationRemoved()
	m.QueueLength(2)
	m.FlashEvent("navigation-succeeded", "processed")
	m.FlashEvent("navigation-succeeded", "deduplicated")
	m.ActionDispatched("named", "unresolved")

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"test_notifications_queued_total",
		"test_notifications_removed_total",
		"test_queue_length",
		"test_flash_events_total",
		"test_actions_dispatched_total",
	}, names)

	count, err := testutil.GatherAndCount(reg, "test_notifications_queued_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series for success and one for none")
}

func TestCollector_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(metrics.WithRegistry(reg))

	assert.Panics(t, func() {
		metrics.New(metrics.WithRegistry(reg))
	})
}
