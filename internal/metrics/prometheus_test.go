package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheus_RecordsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewPrometheus(reg)
	require.NoError(t, err)

	p.PublishAttempted()
	p.PublishAttempted()
	p.PublishSucceeded(150 * time.Millisecond)
	p.PublishFailed(StagePersist)
	p.PayloadStripped(2048)
	p.PayloadStripped(0)
	p.SEOSkipped()
	p.SnapshotDrift(StoreSnapshot)
	p.SnapshotRepaired()

	assert.Equal(t, float64(2), testutil.ToFloat64(p.attempts))
	assert.Equal(t, float64(1), testutil.ToFloat64(p.successes))
	assert.Equal(t, float64(1), testutil.ToFloat64(p.failures.WithLabelValues(StagePersist)))
	assert.Equal(t, float64(0), testutil.ToFloat64(p.failures.WithLabelValues(StageLoad)))
	assert.Equal(t, float64(2048), testutil.ToFloat64(p.strippedBytes))
	assert.Equal(t, float64(1), testutil.ToFloat64(p.seoSkipped))
	assert.Equal(t, float64(1), testutil.ToFloat64(p.drift.WithLabelValues(StoreSnapshot)))
	assert.Equal(t, float64(1), testutil.ToFloat64(p.repaired))
	assert.Equal(t, 1, testutil.CollectAndCount(p.duration))
}

func TestPrometheus_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheus(reg)
	require.NoError(t, err)

	_, err = NewPrometheus(reg)
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	var r Recorder = Nop{}
	assert.NotPanics(t, func() {
		r.PublishAttempted()
		r.PublishSucceeded(time.Second)
		r.PublishFailed(StageLoad)
		r.PayloadStripped(1)
		r.SEOSkipped()
		r.SnapshotDrift(StoreAggregate)
		r.SnapshotRepaired()
	})
}
