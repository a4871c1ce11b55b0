package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCollectors_RegisterOnFreshRegistry(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	h := NewHTTP()
	for _, c := range h.Collectors() {
		require.NoError(t, reg.Register(c))
	}
	logins := NewLoginAttemptsTotal()
	deliveries := NewDeliveriesRegisteredTotal()
	events := NewAssignmentEventsTotal()
	retries := NewAssignmentRetriesTotal()
	require.NoError(t, reg.Register(retries))
	require.NoError(t, reg.Register(logins))
	require.NoError(t, reg.Register(deliveries))
	require.NoError(t, reg.Register(events))

	logins.WithLabelValues(LoginSuccess).Inc()
	logins.WithLabelValues(LoginRejected).Add(2)
	deliveries.Inc()
	events.WithLabelValues(EventApplied).Inc()
	retries.Inc()

	require.Equal(t, 1.0, testutil.ToFloat64(logins.WithLabelValues(LoginSuccess)))
	require.Equal(t, 2.0, testutil.ToFloat64(logins.WithLabelValues(LoginRejected)))
	require.Equal(t, 1.0, testutil.ToFloat64(deliveries))
	require.Equal(t, 1.0, testutil.ToFloat64(events.WithLabelValues(EventApplied)))
	require.Equal(t, 1.0, testutil.ToFloat64(retries))
}

func TestCollectors_DoubleRegistrationFails(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(NewDeliveriesRegisteredTotal()))
	require.Error(t, reg.Register(NewDeliveriesRegisteredTotal()))
}
