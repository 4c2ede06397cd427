package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-sync15/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers groups workers. They are started in order and stopped in
// reverse order.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}

// syncWorker runs a SyncJob with a fixed interval.
type syncWorker struct {
	job      service.SyncJob
	interval time.Duration
}

// NewSyncWorker wraps job so that it runs every interval once started.
func NewSyncWorker(job service.SyncJob, interval time.Duration) Worker {
	return &syncWorker{job: job, interval: interval}
}

func (s *syncWorker) Start(ctx context.Context) {
	s.job.Start(ctx, s.interval)
}

func (s *syncWorker) Stop() {
	s.job.Stop()
}
