// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ServerTimestamp is the logical clock issued by the storage server. It is
// stored as milliseconds since the Unix epoch, while the wire format is
// seconds with two decimal places (e.g. "1700000000.12").
//
// The zero value means "beginning of time": a collection request built with a
// zero high-water mark asks for every record.
type ServerTimestamp int64

// ParseServerTimestamp parses the wire representation used by the
// X-Last-Modified and X-Weave-Timestamp headers.
func ParseServerTimestamp(s string) (ServerTimestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty server timestamp")
	}

	secs, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse server timestamp %q: %w", s, err)
	}
	if secs < 0 || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0, fmt.Errorf("invalid server timestamp %q", s)
	}

	return ServerTimestamp(math.Round(secs * 1000)), nil
}

// ServerTimestampFromTime converts t to a ServerTimestamp truncated to the
// 10ms resolution the wire format can express.
func ServerTimestampFromTime(t time.Time) ServerTimestamp {
	ms := t.UnixMilli()
	return ServerTimestamp(ms - ms%10)
}

// Millis returns the timestamp in milliseconds.
func (t ServerTimestamp) Millis() int64 {
	return int64(t)
}

// Time returns the timestamp as a UTC time.Time.
func (t ServerTimestamp) Time() time.Time {
	return time.UnixMilli(int64(t)).UTC()
}

// IsZero reports whether t is the "beginning of time" value.
func (t ServerTimestamp) IsZero() bool {
	return t == 0
}

// Max returns the later of t and other.
func (t ServerTimestamp) Max(other ServerTimestamp) ServerTimestamp {
	if other > t {
		return other
	}
	return t
}

// String returns the wire representation (seconds with two decimals).
func (t ServerTimestamp) String() string {
	return strconv.FormatFloat(float64(t)/1000, 'f', 2, 64)
}

// MarshalJSON encodes the timestamp as a JSON number of seconds.
func (t ServerTimestamp) MarshalJSON() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalJSON accepts a JSON number (seconds) or a quoted string.
func (t *ServerTimestamp) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		var s string
		if errStr := json.Unmarshal(b, &s); errStr != nil {
			return fmt.Errorf("decode server timestamp: %w", err)
		}
		n = json.Number(s)
	}

	parsed, err := ParseServerTimestamp(n.String())
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
