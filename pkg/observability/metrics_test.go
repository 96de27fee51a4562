package observability_test

import (
	"testing"

	"github.com/aretw0/tendril/pkg/observability"
	"github.com/aretw0/tendril/pkg/value"
	"github.com/aretw0/tendril/pkg/valuenode"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_TrackBus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	bus := valuenode.NewBus()
	stop := m.Track(bus)
	g := valuenode.NewGraph(valuenode.WithDispatcher(bus))

	list := valuenode.NewList(g)
	_, err := list.SureFind("speed")
	require.NoError(t, err)

	speed := g.NewConst(value.Real(1))
	speed.SetID("speed")
	require.True(t, list.Add(speed))

	count, err := testutil.GatherAndCount(reg, "tendril_placeholders_resolved_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// placeholder id, speed id
	assert.Equal(t, 2.0, testutil.ToFloat64(m.EventCounter(valuenode.EventIDChanged)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventCounter(valuenode.EventPlaceholderResolved)))

	stop()
	speed.SetID("velocity")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.EventCounter(valuenode.EventIDChanged)))
}

func TestMetrics_AsDispatcher(t *testing.T) {
	m := observability.NewMetrics(nil)
	g := valuenode.NewGraph(valuenode.WithDispatcher(m))

	g.NewConst(value.Real(1))
	assert.Equal(t, 1, g.Collect())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventCounter(valuenode.EventNodeCollected)))

	var tb value.Table
	tb.Add(0, value.Real(1))
	m.ObserveTable(&tb)
}
