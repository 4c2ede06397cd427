package service

import (
	"context"
	"sync"
	"time"
)

// DefaultSyncInterval is used when SyncJob.Start gets a non-positive
// interval.
const DefaultSyncInterval = 5 * time.Minute

// PassRunner runs one sync pass. *SyncManager binds it to its stores via
// [StoresPass].
type PassRunner interface {
	RunPass(ctx context.Context) (PassResult, error)
}

// PassRunnerFunc adapts a function to [PassRunner].
type PassRunnerFunc func(ctx context.Context) (PassResult, error)

func (f PassRunnerFunc) RunPass(ctx context.Context) (PassResult, error) {
	return f(ctx)
}

// StoresPass returns a PassRunner syncing stores with m.
func StoresPass(m *SyncManager, stores ...Store) PassRunner {
	return PassRunnerFunc(func(ctx context.Context) (PassResult, error) {
		return m.SyncAll(ctx, stores...)
	})
}

// SyncJob runs sync passes in the background.
type SyncJob interface {
	// Start runs a pass right away and then every interval until ctx is
	// done or Stop is called.
	Start(ctx context.Context, interval time.Duration)
	// Stop cancels the running job and waits for it to exit.
	Stop()
}

type syncJob struct {
	runner PassRunner
	onPass func(PassResult, error)

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a job that calls runner on a ticker. onPass, if not
// nil, receives the result of every pass. The job is idle until Start is
// called.
func NewSyncJob(runner PassRunner, onPass func(PassResult, error)) SyncJob {
	return &syncJob{runner: runner, onPass: onPass}
}

// Start implements SyncJob. It stops any previously running job first.
func (j *syncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		j.runPass(jobCtx)
		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.runPass(jobCtx)
			}
		}
	}()
}

func (j *syncJob) runPass(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	res, err := j.runner.RunPass(ctx)
	if j.onPass != nil {
		j.onPass(res, err)
	}
}

// Stop implements SyncJob. Safe to call when the job is not running.
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
