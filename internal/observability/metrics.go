package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreMutations counts committed store mutations by store and operation.
	StoreMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatterverse_store_mutations_total",
		Help: "Total number of committed store mutations by store and operation",
	}, []string{"store", "operation"})

	// SnapshotWrites counts full-collection snapshot writes by key.
	SnapshotWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatterverse_snapshot_writes_total",
		Help: "Total number of snapshot writes to durable storage by key",
	}, []string{"key"})

	// SnapshotErrors counts failed snapshot writes by key.
	SnapshotErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatterverse_snapshot_errors_total",
		Help: "Total number of failed snapshot writes by key",
	}, []string{"key"})

	// SweepRuns counts story-expiry sweep executions.
	SweepRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatterverse_story_sweep_runs_total",
		Help: "Total number of story expiry sweep runs",
	})

	// StoriesExpired counts stories removed by the expiry sweep.
	StoriesExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatterverse_stories_expired_total",
		Help: "Total number of stories removed by the expiry sweep",
	})
)
