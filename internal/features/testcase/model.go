package testcase

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	DefaultReportType = "Testcase results"
	NotAvailable      = "NA"

	FilterDate = "date"
	FilterDays = "days"
	FilterAll  = "all"

	defaultDays = 30
)

// ReportRequest is the body of a report call. Every field is optional:
//   - ReportType defaults to DefaultReportType
//   - Filter selects the date mode; unknown or empty means the last 30 days
//   - Days is read in "days" mode and accepts a number or a numeric string
//   - FromDate/ToDate are read in "date" mode; anything after "T" is dropped
//   - Type restricts the aggregations to one record type
//   - ViewName/Folders identify a saved view; with CreateMode the view name must be free
type ReportRequest struct {
	ReportType string      `json:"reporttype"`
	ViewName   string      `json:"view_name"`
	Folders    string      `json:"folders"`
	Type       string      `json:"type"`
	Filter     string      `json:"filter"`
	Days       Days        `json:"days"`
	FromDate   string      `json:"from_date"`
	ToDate     string      `json:"to_date"`
	CreateMode bool        `json:"create_mode"`

	// Raw is the decoded payload, echoed back as "retain".
	Raw map[string]any `json:"-"`
}

// ParseReportRequest decodes body into a typed request and keeps the raw payload.
// An empty body is an empty request.
func ParseReportRequest(body []byte) (*ReportRequest, error) {
	req := &ReportRequest{Raw: map[string]any{}}
	if len(strings.TrimSpace(string(body))) == 0 {
		return req, nil
	}
	if err := json.Unmarshal(body, &req.Raw); err != nil {
		return nil, fmt.Errorf("invalid report request: %w", err)
	}
	if err := json.Unmarshal(body, req); err != nil {
		return nil, fmt.Errorf("invalid report request: %w", err)
	}
	return req, nil
}

func (r *ReportRequest) HasView() bool {
	return strings.TrimSpace(r.ViewName) != ""
}

// ViewPath is the store path of the requested view.
func (r *ReportRequest) ViewPath() string {
	name := strings.TrimSpace(r.ViewName)
	folder := strings.Trim(strings.TrimSpace(r.Folders), "/")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

// Days is a day count sent either as a JSON number or as a string.
type Days string

func (d *Days) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*d = Days(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("days must be a number or a string")
	}
	*d = Days(strings.TrimSpace(s))
	return nil
}

// Row is one shaped record. Values are strings except for fields copied verbatim
// from the index.
type Row map[string]any

// FacetCounts maps a facet name to bucket value → document count.
type FacetCounts map[string]map[string]int64

// ReportPayload is the GUI report structure. Every list and map is non-nil so
// a degraded payload still renders as an empty table.
type ReportPayload struct {
	Retain     map[string]any `json:"retain"`
	ReportType string         `json:"reporttype"`
	Filter     string         `json:"filter,omitempty"`
	FromDate   *string        `json:"from_date"`
	ToDate     *string        `json:"to_date"`

	Count int   `json:"count"`
	Rows  []Row `json:"testinfo"`

	Fields          []string `json:"testattr"`
	SystemColumns   []string `json:"cirrus_attributes_col"`
	JobColumns      []string `json:"job_attributes_col"`
	CustomerColumns []string `json:"testcase_attributes_col"`

	RingData FacetCounts    `json:"ring_data"`
	ViewData map[string]any `json:"view_data"`
}

func newPayload(req *ReportRequest) *ReportPayload {
	reportType := req.ReportType
	if reportType == "" {
		reportType = DefaultReportType
	}
	retain := req.Raw
	if retain == nil {
		retain = map[string]any{}
	}
	return &ReportPayload{
		Retain:          retain,
		ReportType:      reportType,
		Rows:            []Row{},
		Fields:          []string{},
		SystemColumns:   []string{},
		JobColumns:      []string{},
		CustomerColumns: []string{},
		RingData:        FacetCounts{},
		ViewData:        map[string]any{},
	}
}
