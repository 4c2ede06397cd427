package models

// RequestOrder is the sort order of a collection request.
type RequestOrder string

const (
	OrderNone   RequestOrder = ""
	OrderOldest RequestOrder = "oldest"
	OrderNewest RequestOrder = "newest"
	OrderIndex  RequestOrder = "index"
)

// CollectionRequest describes which records of a collection to fetch. Stores
// build it in GetCollectionRequest; the adapter renders it to query params.
type CollectionRequest struct {
	Collection string
	// Full asks for whole records instead of ids only.
	Full  bool
	IDs   []Guid
	Limit int
	Order RequestOrder
	// Newer and Older filter by record modification time; zero disables.
	Newer ServerTimestamp
	Older ServerTimestamp
}

// NewCollectionRequest returns a request for full records of collection.
func NewCollectionRequest(collection string) CollectionRequest {
	return CollectionRequest{Collection: collection, Full: true}
}

// NewerThan sets the "modified after" filter.
func (r CollectionRequest) NewerThan(ts ServerTimestamp) CollectionRequest {
	r.Newer = ts
	return r
}

// OlderThan sets the "modified before" filter.
func (r CollectionRequest) OlderThan(ts ServerTimestamp) CollectionRequest {
	r.Older = ts
	return r
}

// WithIDs limits the request to the given ids.
func (r CollectionRequest) WithIDs(ids ...Guid) CollectionRequest {
	r.IDs = append([]Guid(nil), ids...)
	return r
}

// WithLimit caps the number of returned records.
func (r CollectionRequest) WithLimit(limit int, order RequestOrder) CollectionRequest {
	r.Limit = limit
	r.Order = order
	return r
}
