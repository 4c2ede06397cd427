package models

// LoginData is the cleartext of a record in the "passwords" collection. The
// reference passwords store reads and writes it; the sync engine itself
// treats it as opaque.
type LoginData struct {
	// Origin is the site or application the credentials belong to.
	Origin string `json:"hostname"`

	// FormActionOrigin is the origin forms submit to, if different.
	FormActionOrigin string `json:"formSubmitURL,omitempty"`

	// Username is the login identifier used for authentication.
	Username string `json:"username"`

	// Password is the secret credential associated with the username.
	Password string `json:"password"`

	// URIs defines additional resources where the credentials apply.
	URIs []LoginURI `json:"uris,omitempty"`

	// TOTP contains an optional time-based one-time password seed.
	TOTP *string `json:"totp,omitempty"`

	// TimeCreated and TimePasswordChanged are milliseconds since the epoch.
	TimeCreated         int64 `json:"timeCreated,omitempty"`
	TimePasswordChanged int64 `json:"timePasswordChanged,omitempty"`
}

// LoginURI represents a single resource matching rule
// associated with a login entry.
type LoginURI struct {
	// URI is the target resource (domain, URL, or application identifier).
	URI string `json:"uri"`

	// Match defines the matching strategy used to associate
	// the login with the given URI.
	Match int `json:"match"`
}

// Login is a stored credential with its record id and the local time of
// its last change in milliseconds.
type Login struct {
	ID       Guid
	Data     LoginData
	Modified int64
}
