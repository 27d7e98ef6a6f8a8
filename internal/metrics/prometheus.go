package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "career"

// Prometheus implements Recorder with counters and histograms.
type Prometheus struct {
	attempts      prometheus.Counter
	successes     prometheus.Counter
	failures      *prometheus.CounterVec
	duration      prometheus.Histogram
	strippedBytes prometheus.Counter
	seoSkipped    prometheus.Counter
	drift         *prometheus.CounterVec
	repaired      prometheus.Counter
}

var _ Recorder = (*Prometheus)(nil)

// NewPrometheus creates the publish metrics and registers them on reg.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		attempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_attempts_total",
			Help:      "Total number of publish calls.",
		}),
		successes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_success_total",
			Help:      "Total number of publish calls that updated both stores.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_failures_total",
			Help:      "Total number of failed publish calls by stage.",
		}, []string{"stage"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "publish_duration_seconds",
			Help:      "Duration of successful publish calls.",
			Buckets:   prometheus.DefBuckets,
		}),
		strippedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sanitizer_stripped_bytes_total",
			Help:      "Serialized bytes removed from payloads by the sanitizer.",
		}),
		seoSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seo_generation_skipped_total",
			Help:      "Publishes without a title and description to derive meta tags from.",
		}),
		drift: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_drift_total",
			Help:      "Publishes or reconcile passes that left a store behind, by lagging store.",
		}, []string{"store"}),
		repaired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_repaired_total",
			Help:      "Snapshots rebuilt from live content by the reconciler.",
		}),
	}

	for _, c := range []prometheus.Collector{
		p.attempts, p.successes, p.failures, p.duration,
		p.strippedBytes, p.seoSkipped, p.drift, p.repaired,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Prometheus) PublishAttempted() { p.attempts.Inc() }

func (p *Prometheus) PublishSucceeded(d time.Duration) {
	p.successes.Inc()
	p.duration.Observe(d.Seconds())
}

func (p *Prometheus) PublishFailed(stage string) { p.failures.WithLabelValues(stage).Inc() }

func (p *Prometheus) PayloadStripped(bytes int) {
	if bytes > 0 {
		p.strippedBytes.Add(float64(bytes))
	}
}

func (p *Prometheus) SEOSkipped() { p.seoSkipped.Inc() }

func (p *Prometheus) SnapshotDrift(store string) { p.drift.WithLabelValues(store).Inc() }

func (p *Prometheus) SnapshotRepaired() { p.repaired.Inc() }
