package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sync15/internal/adapter"
	"github.com/MKhiriev/go-sync15/models"
)

// incomingFetcher fetches and decrypts the remote changes of a collection.
type incomingFetcher func(ctx context.Context, client adapter.StorageClient, state *CollectionState, request models.CollectionRequest) (models.IncomingChangeset, error)

// fetchIncoming runs request against the server, records the response
// timestamp as the new high-water mark of state and decrypts every record.
// A single undecryptable record fails the whole fetch.
func fetchIncoming(ctx context.Context, client adapter.StorageClient, state *CollectionState, request models.CollectionRequest) (models.IncomingChangeset, error) {
	if request.Collection == "" {
		request.Collection = state.Collection
	}

	records, timestamp, err := client.FetchCollection(ctx, request)
	if err != nil {
		return models.IncomingChangeset{}, fmt.Errorf("fetch %s: %w", state.Collection, err)
	}

	state.LastModified = timestamp
	changes := models.NewIncomingChangeset(state.Collection, timestamp)
	changes.Changes = make([]models.IncomingRecord, 0, len(records))

	for _, bso := range records {
		payload, err := state.Key.DecryptBso(bso)
		if err != nil {
			return models.IncomingChangeset{}, fmt.Errorf("decrypt %s record: %w", state.Collection, err)
		}
		changes.Changes = append(changes.Changes, models.IncomingRecord{
			Payload:  payload,
			Modified: bso.Modified,
		})
	}

	return changes, nil
}
