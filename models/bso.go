// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EncryptedPayload is the envelope stored in the payload field of every
// encrypted record. Ciphertext and IV are standard base64; HMAC is the hex
// HMAC-SHA256 of the base64 ciphertext string.
type EncryptedPayload struct {
	IV         string `json:"IV"`
	HMAC       string `json:"hmac"`
	Ciphertext string `json:"ciphertext"`
}

// EncryptedBso is a record as stored on and exchanged with the server. The
// Payload is the JSON text of an [EncryptedPayload].
type EncryptedBso struct {
	ID        Guid            `json:"id"`
	Modified  ServerTimestamp `json:"modified,omitempty"`
	SortIndex *int64          `json:"sortindex,omitempty"`
	TTL       *int64          `json:"ttl,omitempty"`
	Payload   string          `json:"payload"`
}

// PostParams carries the per-request options of a record upload.
type PostParams struct {
	// Batch is empty for an unbatched POST, "true" to open a new server batch,
	// or the id of a batch previously opened by the server.
	Batch string
	// Commit asks the server to commit the batch with this POST.
	Commit bool
	// IfUnmodifiedSince makes the server reject the POST with 412 when the
	// collection changed after the given timestamp. Zero disables the check.
	IfUnmodifiedSince ServerTimestamp
}

// PostResponse is the server's answer to a record upload.
type PostResponse struct {
	// Batch is the id of the open batch, empty when the server committed the
	// records directly (or does not support batching).
	Batch string `json:"batch,omitempty"`
	// Modified is the collection timestamp after this POST. For uncommitted
	// batch POSTs it is the timestamp the server reported for the request.
	Modified ServerTimestamp `json:"modified"`
	// Success lists the ids the server accepted.
	Success []Guid `json:"success"`
	// Failed maps rejected ids to the server's reason.
	Failed map[Guid]string `json:"failed"`
}
