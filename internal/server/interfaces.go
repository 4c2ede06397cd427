package server

import "context"

// Server is the lifecycle of the storage server's listener.
type Server interface {
	// RunServer serves until ctx is done or the listener fails. A done ctx
	// triggers a graceful shutdown and a nil return.
	RunServer(ctx context.Context) error

	// Shutdown stops accepting connections and waits for in-flight
	// requests.
	Shutdown()
}
