package testcase

import (
	"encoding/json"
	"fmt"

	"go-reporting/internal/search"
)

const (
	DateField      = "jobdate"
	TypeField      = "type"
	StatusField    = "status"
	JobAttrsField  = "job_attrs"
	CustAttrsField = "cust_attrs"
	JobAttrsKV     = "job_attrs_kv"
	CustAttrsKV    = "cust_attrs_kv"

	statusFacet       = "jobstatus"
	StageStatusColumn = "stage_status"
)

// FacetFields are the job attributes counted by the aggregation query.
var FacetFields = []string{"major", "minor", "production", "program_type", "testgroup"}

// typeAliases maps legacy record types onto their current name.
var typeAliases = map[string]string{
	"CPT": "L2ADD",
}

// BuildQuery builds the projection query for the report rows. A range on the job
// date is added only when both bounds are known.
func BuildQuery(from, to *string, visible []string) *search.Query {
	includes := make([]string, 0, len(visible)+2)
	includes = append(includes, visible...)
	includes = append(includes, JobAttrsField, CustAttrsField)

	q := &search.Query{
		Source: &search.SourceFilter{
			Includes: includes,
			Excludes: []string{
				JobAttrsField + "." + JobAttrsKV,
				CustAttrsField + "." + CustAttrsKV,
			},
		},
	}
	if from != nil && to != nil {
		q.Query = &search.QueryClause{Bool: &search.BoolQuery{Filter: dateRange(from, to)}}
	}
	return q
}

// BuildAggregationQuery builds the hit-less facet query. The date range is always
// present; nil bounds are sent as null and leave the range open.
func BuildAggregationQuery(from, to *string, recordType string, facetSize int) *search.Query {
	size := 0
	boolQuery := &search.BoolQuery{Filter: dateRange(from, to)}
	if recordType != "" {
		if alias, ok := typeAliases[recordType]; ok {
			recordType = alias
		}
		boolQuery.Must = &search.Clause{Match: map[string]string{TypeField: recordType}}
	}

	aggs := make(map[string]search.Aggregation, len(FacetFields)+1)
	for _, f := range FacetFields {
		aggs[f] = search.Aggregation{Terms: &search.TermsAggregation{
			Field: JobAttrsField + "." + f + ".raw",
			Size:  facetSize,
		}}
	}
	aggs[statusFacet] = search.Aggregation{Terms: &search.TermsAggregation{Field: StatusField, Size: facetSize}}

	return &search.Query{
		Size:  &size,
		Query: &search.QueryClause{Bool: boolQuery},
		Aggs:  aggs,
	}
}

func dateRange(from, to *string) *search.Clause {
	return &search.Clause{Range: map[string]search.RangeBounds{
		DateField: {Gte: from, Lte: to},
	}}
}

// ShapeAggregations flattens every terms facet into value → count and renames the
// job status facet to stage_status. Status values are capitalised to match the rows.
func ShapeAggregations(raw map[string]json.RawMessage) (FacetCounts, error) {
	out := make(FacetCounts, len(raw))
	for name, body := range raw {
		var terms search.TermsResult
		if err := json.Unmarshal(body, &terms); err != nil {
			return nil, fmt.Errorf("decode facet %s: %w", name, err)
		}

		counts := make(map[string]int64, len(terms.Buckets))
		for _, b := range terms.Buckets {
			key := fmt.Sprint(b.Key)
			if name == statusFacet {
				key = capitalize(key)
			}
			counts[key] += b.DocCount
		}

		if name == statusFacet {
			name = StageStatusColumn
		}
		out[name] = counts
	}
	return out, nil
}
