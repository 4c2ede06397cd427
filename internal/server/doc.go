// Package server runs the storage server's HTTP listener with signal
// handling and graceful shutdown.
package server
