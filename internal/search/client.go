package search

import "context"

// Client is the contract the reporting code needs from the search service.
type Client interface {
	// PutTemplate registers an index template; re-registering an existing name is allowed.
	PutTemplate(ctx context.Context, name string, body []byte) error
	// CreateIndex fails when the index already exists.
	CreateIndex(ctx context.Context, index string) error
	GetMapping(ctx context.Context, index string) (Mapping, error)
	// Search runs a single-page query, used for aggregation-only requests.
	Search(ctx context.Context, index string, q *Query) (*Response, error)
	// ScrollSearch calls fn with every page of hits until the result set is exhausted.
	ScrollSearch(ctx context.Context, index string, q *Query, fn func(hits []Hit) error) error
}
