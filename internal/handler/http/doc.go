// Package http implements the storage protocol of the reference server on
// top of chi.
//
// Routes cover info/configuration, info/collections and the
// storage/{collection} family. Authentication, request tracing, access
// logging, metrics and compression are handled by middleware before
// requests reach the service layer.
package http
