package models

// Default server limits used when info/configuration omits a value or the
// server does not implement the endpoint.
const (
	DefaultMaxRequestBytes       = 260 * 1024
	DefaultMaxPostRecords        = 100
	DefaultMaxPostBytes          = 1024 * 1024
	DefaultMaxTotalRecords       = 10000
	DefaultMaxTotalBytes         = 100 * 1024 * 1024
	DefaultMaxRecordPayloadBytes = 256 * 1024
)

// InfoConfiguration is the server's info/configuration document: the limits
// uploads must respect.
type InfoConfiguration struct {
	MaxRequestBytes       int `json:"max_request_bytes,omitempty"`
	MaxPostRecords        int `json:"max_post_records,omitempty"`
	MaxPostBytes          int `json:"max_post_bytes,omitempty"`
	MaxTotalRecords       int `json:"max_total_records,omitempty"`
	MaxTotalBytes         int `json:"max_total_bytes,omitempty"`
	MaxRecordPayloadBytes int `json:"max_record_payload_bytes,omitempty"`
}

// DefaultInfoConfiguration returns the limits assumed for servers that do
// not publish their own.
func DefaultInfoConfiguration() InfoConfiguration {
	return InfoConfiguration{
		MaxRequestBytes:       DefaultMaxRequestBytes,
		MaxPostRecords:        DefaultMaxPostRecords,
		MaxPostBytes:          DefaultMaxPostBytes,
		MaxTotalRecords:       DefaultMaxTotalRecords,
		MaxTotalBytes:         DefaultMaxTotalBytes,
		MaxRecordPayloadBytes: DefaultMaxRecordPayloadBytes,
	}
}

// WithDefaults fills every zero limit with its default.
func (c InfoConfiguration) WithDefaults() InfoConfiguration {
	d := DefaultInfoConfiguration()
	if c.MaxRequestBytes <= 0 {
		c.MaxRequestBytes = d.MaxRequestBytes
	}
	if c.MaxPostRecords <= 0 {
		c.MaxPostRecords = d.MaxPostRecords
	}
	if c.MaxPostBytes <= 0 {
		c.MaxPostBytes = d.MaxPostBytes
	}
	if c.MaxTotalRecords <= 0 {
		c.MaxTotalRecords = d.MaxTotalRecords
	}
	if c.MaxTotalBytes <= 0 {
		c.MaxTotalBytes = d.MaxTotalBytes
	}
	if c.MaxRecordPayloadBytes <= 0 {
		c.MaxRecordPayloadBytes = d.MaxRecordPayloadBytes
	}
	return c
}

// InfoCollections maps collection names to their last modification time.
type InfoCollections map[string]ServerTimestamp

// Timestamp returns the last-modified time of collection, zero if unknown.
func (i InfoCollections) Timestamp(collection string) ServerTimestamp {
	return i[collection]
}
