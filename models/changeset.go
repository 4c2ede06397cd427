// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// IncomingRecord is one decrypted remote change together with the server
// timestamp at which it was last modified.
type IncomingRecord struct {
	Payload  Payload
	Modified ServerTimestamp
}

// IncomingChangeset is the set of remote records changed since the previous
// high-water mark. Timestamp is the collection timestamp of the response that
// produced the changes.
type IncomingChangeset struct {
	Collection string
	Timestamp  ServerTimestamp
	Changes    []IncomingRecord
}

// NewIncomingChangeset returns an empty changeset for collection.
func NewIncomingChangeset(collection string, timestamp ServerTimestamp) IncomingChangeset {
	return IncomingChangeset{Collection: collection, Timestamp: timestamp}
}

// OutgoingChangeset holds the records a store wants to upload. Timestamp is
// set by the synchronizer to the timestamp of the preceding fetch; stores
// leave it alone.
type OutgoingChangeset struct {
	Collection string
	Timestamp  ServerTimestamp
	Changes    []Payload
}

// NewOutgoingChangeset returns an empty changeset for collection.
func NewOutgoingChangeset(collection string) OutgoingChangeset {
	return OutgoingChangeset{Collection: collection}
}

// UploadInfo is the outcome of an upload. Every submitted id ends up in
// exactly one of SuccessfulIDs and FailedIDs.
type UploadInfo struct {
	SuccessfulIDs     []Guid
	FailedIDs         []Guid
	ModifiedTimestamp ServerTimestamp
}
