package testcase

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func strPtr(s string) *string { return &s }

func TestBuildQueryDateRange(t *testing.T) {
	tests := []struct {
		name      string
		from, to  *string
		wantRange bool
	}{
		{name: "both bounds", from: strPtr("2021-01-01"), to: strPtr("2021-01-31"), wantRange: true},
		{name: "no bounds"},
		{name: "only from", from: strPtr("2021-01-01")},
		{name: "only to", to: strPtr("2021-01-31")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := BuildQuery(tt.from, tt.to, []string{"job"})
			if !tt.wantRange {
				if q.Query != nil {
					t.Fatalf("expected no query clause, got %+v", q.Query)
				}
				return
			}
			if q.Query == nil || q.Query.Bool == nil || q.Query.Bool.Filter == nil {
				t.Fatalf("expected a range filter, got %+v", q.Query)
			}
			r, ok := q.Query.Bool.Filter.Range[DateField]
			if !ok || len(q.Query.Bool.Filter.Range) != 1 {
				t.Fatalf("expected exactly one range on %s, got %+v", DateField, q.Query.Bool.Filter.Range)
			}
			if *r.Gte != *tt.from || *r.Lte != *tt.to {
				t.Errorf("range = [%s, %s], want [%s, %s]", *r.Gte, *r.Lte, *tt.from, *tt.to)
			}
		})
	}
}

func TestBuildQueryProjection(t *testing.T) {
	q := BuildQuery(nil, nil, []string{"job", "status"})

	wantIncludes := []string{"job", "status", "job_attrs", "cust_attrs"}
	if diff := cmp.Diff(wantIncludes, q.Source.Includes); diff != "" {
		t.Errorf("includes mismatch (-want +got):\n%s", diff)
	}
	wantExcludes := []string{"job_attrs.job_attrs_kv", "cust_attrs.cust_attrs_kv"}
	if diff := cmp.Diff(wantExcludes, q.Source.Excludes); diff != "" {
		t.Errorf("excludes mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildAggregationQuery(t *testing.T) {
	q := BuildAggregationQuery(nil, nil, "CPT", 50)

	if q.Size == nil || *q.Size != 0 {
		t.Errorf("size = %v, want 0", q.Size)
	}
	r, ok := q.Query.Bool.Filter.Range[DateField]
	if !ok {
		t.Fatal("aggregation query must always carry the date range")
	}
	if r.Gte != nil || r.Lte != nil {
		t.Errorf("expected open bounds, got %+v", r)
	}
	if got := q.Query.Bool.Must.Match[TypeField]; got != "L2ADD" {
		t.Errorf("type match = %q, want L2ADD", got)
	}

	want := map[string]string{
		"major":        "job_attrs.major.raw",
		"minor":        "job_attrs.minor.raw",
		"production":   "job_attrs.production.raw",
		"program_type": "job_attrs.program_type.raw",
		"testgroup":    "job_attrs.testgroup.raw",
		"jobstatus":    "status",
	}
	got := map[string]string{}
	for name, agg := range q.Aggs {
		got[name] = agg.Terms.Field
		if agg.Terms.Size != 50 {
			t.Errorf("facet %s size = %d, want 50", name, agg.Terms.Size)
		}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("facets mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildAggregationQueryWithoutType(t *testing.T) {
	q := BuildAggregationQuery(strPtr("2021-01-01"), strPtr("2021-01-02"), "", 10)
	if q.Query.Bool.Must != nil {
		t.Errorf("expected no type match, got %+v", q.Query.Bool.Must)
	}

	body, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["size"] != float64(0) {
		t.Errorf("size must be serialised as 0, got %v", decoded["size"])
	}
}

func TestShapeAggregations(t *testing.T) {
	raw := map[string]json.RawMessage{
		"jobstatus": json.RawMessage(`{"buckets":[{"key":"passed","doc_count":3},{"key":"PASSED","doc_count":1},{"key":"failed","doc_count":2}]}`),
		"major":     json.RawMessage(`{"buckets":[{"key":"10","doc_count":4},{"key":7,"doc_count":1}]}`),
	}

	got, err := ShapeAggregations(raw)
	if err != nil {
		t.Fatalf("ShapeAggregations() error = %v", err)
	}
	want := FacetCounts{
		"stage_status": {"Passed": 4, "Failed": 2},
		"major":        {"10": 4, "7": 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ShapeAggregations mismatch (-want +got):\n%s", diff)
	}
	if _, ok := got["jobstatus"]; ok {
		t.Error("jobstatus must be renamed")
	}
}

func TestShapeAggregationsBadFacet(t *testing.T) {
	_, err := ShapeAggregations(map[string]json.RawMessage{"major": json.RawMessage(`[]`)})
	if err == nil {
		t.Fatal("expected a decode error")
	}
}
