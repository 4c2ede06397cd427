package service

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-sync15/models"
)

// queuedRecord is an encrypted record with its encoded size.
type queuedRecord struct {
	bso  models.EncryptedBso
	size int
}

func newQueuedRecord(bso models.EncryptedBso) (queuedRecord, error) {
	raw, err := json.Marshal(bso)
	if err != nil {
		return queuedRecord{}, fmt.Errorf("encode record %s: %w", bso.ID, err)
	}
	// one byte for the separating comma
	return queuedRecord{bso: bso, size: len(raw) + 1}, nil
}

// postQueue splits records into POST bodies that respect the server limits.
type postQueue struct {
	cfg models.InfoConfiguration

	posts   [][]queuedRecord
	current []queuedRecord
	bytes   int
}

func newPostQueue(cfg models.InfoConfiguration) *postQueue {
	return &postQueue{cfg: cfg.WithDefaults()}
}

// fits reports whether r can join the current POST.
func (q *postQueue) fits(r queuedRecord) bool {
	if len(q.current) == 0 {
		return true
	}
	if len(q.current)+1 > q.cfg.MaxPostRecords {
		return false
	}
	body := q.bytes + r.size
	// two bytes for the enclosing brackets
	return body <= q.cfg.MaxPostBytes && body+2 <= q.cfg.MaxRequestBytes
}

func (q *postQueue) push(r queuedRecord) {
	if !q.fits(r) {
		q.flush()
	}
	q.current = append(q.current, r)
	q.bytes += r.size
}

func (q *postQueue) flush() {
	if len(q.current) == 0 {
		return
	}
	q.posts = append(q.posts, q.current)
	q.current = nil
	q.bytes = 0
}

// drain returns the planned POSTs in upload order.
func (q *postQueue) drain() [][]models.EncryptedBso {
	q.flush()
	out := make([][]models.EncryptedBso, 0, len(q.posts))
	for _, post := range q.posts {
		bsos := make([]models.EncryptedBso, len(post))
		for i, r := range post {
			bsos[i] = r.bso
		}
		out = append(out, bsos)
	}
	q.posts = nil
	return out
}
