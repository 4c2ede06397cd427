package models

// StorageProtocolVersion is the storage protocol spoken by the server and
// expected by the client.
const StorageProtocolVersion = "1.5"

// VersionInfo is served at GET /version.
type VersionInfo struct {
	Version  string `json:"version"`
	Protocol string `json:"protocol"`
	// UptimeSeconds is the time since the server process started.
	UptimeSeconds int64 `json:"uptime_seconds"`
}
