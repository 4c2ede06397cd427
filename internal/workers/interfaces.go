// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that starts and
// stops several workers as one unit.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Start must not block: implementations spawn their own goroutines and
// keep running until ctx is done or Stop is called. Stop waits for the
// worker to exit.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
