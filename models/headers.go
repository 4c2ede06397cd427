package models

// HTTP headers of the storage protocol. Timestamps use the
// [ServerTimestamp.String] form.
const (
	HeaderLastModified      = "X-Last-Modified"
	HeaderWeaveTimestamp    = "X-Weave-Timestamp"
	HeaderIfUnmodifiedSince = "X-If-Unmodified-Since"
	HeaderWeaveRecords      = "X-Weave-Records"
)
