package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestJobTimer_Completed(t *testing.T) {
	const taskType = "test-completed"

	timer := StartJob(taskType)
	assert.Equal(t, 1.0, testutil.ToFloat64(WorkerJobsActive.WithLabelValues(taskType)))

	timer.Completed()
	timer.Completed()

	assert.Equal(t, 0.0, testutil.ToFloat64(WorkerJobsActive.WithLabelValues(taskType)))
	assert.Equal(t, 1.0, testutil.ToFloat64(WorkerJobsCompleted.WithLabelValues(taskType)))
}

func TestJobTimer_FailedOnce(t *testing.T) {
	const taskType = "test-failed"

	timer := StartJob(taskType)
	timer.Failed("INVALID_PARAMETER")
	timer.Completed()

	assert.Equal(t, 1.0, testutil.ToFloat64(WorkerJobsFailed.WithLabelValues(taskType, "INVALID_PARAMETER")))
	assert.Equal(t, 0.0, testutil.ToFloat64(WorkerJobsCompleted.WithLabelValues(taskType)))
	assert.Equal(t, 0.0, testutil.ToFloat64(WorkerJobsActive.WithLabelValues(taskType)))
}
