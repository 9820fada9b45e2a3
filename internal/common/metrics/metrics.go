// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	CacheHit      = "hit"
	CacheMiss     = "miss"
	CacheError    = "error"
	CacheDisabled = "disabled"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "display_worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "display_worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "display_worker_job_duration_seconds",
			Help:    "Duration of job processing in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "display_worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	SpecCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "display_spec_cache_lookups_total",
			Help: "Geometric spec cache lookups by result",
		},
		[]string{"result"},
	)

	SchemaRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "display_schema_rejections_total",
			Help: "Jobs rejected by input schema validation",
		},
		[]string{"task_type"},
	)
)

// JobTimer tracks one job from activation to completion or failure.
type JobTimer struct {
	taskType string
	start    time.Time
	done     bool
}

// StartJob marks a job active for taskType.
func StartJob(taskType string) *JobTimer {
	WorkerJobsActive.WithLabelValues(taskType).Inc()
	return &JobTimer{taskType: taskType, start: time.Now()}
}

func (t *JobTimer) Completed() {
	if t.finish() {
		WorkerJobsCompleted.WithLabelValues(t.taskType).Inc()
	}
}

func (t *JobTimer) Failed(errorCode string) {
	if t.finish() {
		WorkerJobsFailed.WithLabelValues(t.taskType, errorCode).Inc()
	}
}

// finish records the duration once; later calls are no-ops.
func (t *JobTimer) finish() bool {
	if t.done {
		return false
	}
	t.done = true
	WorkerJobsActive.WithLabelValues(t.taskType).Dec()
	WorkerJobDuration.WithLabelValues(t.taskType).Observe(time.Since(t.start).Seconds())
	return true
}
