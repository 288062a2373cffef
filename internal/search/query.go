package search

import "encoding/json"

// Query is the request body sent to the search service.
type Query struct {
	Size   *int                   `json:"size,omitempty"`
	Source *SourceFilter          `json:"_source,omitempty"`
	Query  *QueryClause           `json:"query,omitempty"`
	Aggs   map[string]Aggregation `json:"aggs,omitempty"`
}

// SourceFilter projects the fields returned for every hit.
type SourceFilter struct {
	Includes []string `json:"includes,omitempty"`
	Excludes []string `json:"excludes,omitempty"`
}

type QueryClause struct {
	Bool *BoolQuery `json:"bool,omitempty"`
}

type BoolQuery struct {
	Filter *Clause `json:"filter,omitempty"`
	Must   *Clause `json:"must,omitempty"`
}

// Clause holds a single leaf query. Exactly one field is expected to be set.
type Clause struct {
	Range map[string]RangeBounds `json:"range,omitempty"`
	Match map[string]string      `json:"match,omitempty"`
}

// RangeBounds is inclusive on both ends. Nil bounds are sent as JSON null,
// which the search service reads as unbounded.
type RangeBounds struct {
	Gte *string `json:"gte"`
	Lte *string `json:"lte"`
}

type Aggregation struct {
	Terms *TermsAggregation `json:"terms,omitempty"`
}

type TermsAggregation struct {
	Field string `json:"field"`
	Size  int    `json:"size,omitempty"`
}

// Response is the subset of a search response the reporting code reads.
type Response struct {
	ScrollID     string                     `json:"_scroll_id,omitempty"`
	Hits         HitsEnvelope               `json:"hits"`
	Aggregations map[string]json.RawMessage `json:"aggregations,omitempty"`
}

type HitsEnvelope struct {
	Hits []Hit `json:"hits"`
}

type Hit struct {
	ID     string         `json:"_id"`
	Source map[string]any `json:"_source"`
}

// TermsResult is the body of a terms aggregation.
type TermsResult struct {
	Buckets []Bucket `json:"buckets"`
}

type Bucket struct {
	Key      any   `json:"key"`
	DocCount int64 `json:"doc_count"`
}
