// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"sync"
	"time"

	"window-display-workers/internal/common/config"
	"window-display-workers/internal/common/logger"
	"window-display-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobHandler is implemented by every worker Handler.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// WorkerManager opens one Zeebe job worker per task type and closes them
// together on shutdown.
type WorkerManager struct {
	client zbc.Client
	obs    *observability.Observability
	logger logger.Logger

	mu      sync.Mutex
	workers map[string]worker.JobWorker
}

func NewWorkerManager(client zbc.Client, obs *observability.Observability, log logger.Logger) *WorkerManager {
	return &WorkerManager{
		client:  client,
		obs:     obs,
		logger:  log,
		workers: make(map[string]worker.JobWorker),
	}
}

// Register opens a job worker for taskType unless it is disabled.
// It reports whether a worker was opened.
func (m *WorkerManager) Register(taskType string, wcfg config.WorkerConfig, handler JobHandler) bool {
	if !wcfg.Enabled {
		m.logger.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return false
	}

	jobWorker := m.client.NewJobWorker().
		JobType(taskType).
		Handler(m.instrument(taskType, handler)).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	m.mu.Lock()
	m.workers[taskType] = jobWorker
	m.mu.Unlock()

	m.logger.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return true
}

// instrument records every handled job in the otel meter.
func (m *WorkerManager) instrument(taskType string, handler JobHandler) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		handler.Handle(client, job)
		m.obs.RecordJob(context.Background(), taskType, time.Since(start))
	}
}

// TaskTypes lists the task types with an open worker.
func (m *WorkerManager) TaskTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.workers))
	for t := range m.workers {
		out = append(out, t)
	}
	return out
}

// Stop closes every worker and waits for in-flight jobs or ctx expiry.
func (m *WorkerManager) Stop(ctx context.Context) {
	m.mu.Lock()
	workers := m.workers
	m.workers = make(map[string]worker.JobWorker)
	m.mu.Unlock()

	var wg sync.WaitGroup
	for taskType, w := range workers {
		wg.Add(1)
		go func(taskType string, w worker.JobWorker) {
			defer wg.Done()
			m.logger.Info("stopping worker", map[string]interface{}{"taskType": taskType})
			w.Close()
			w.AwaitClose()
		}(taskType, w)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		m.logger.Warn("worker shutdown timed out", map[string]interface{}{"error": ctx.Err().Error()})
	}
}
