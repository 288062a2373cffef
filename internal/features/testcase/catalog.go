package testcase

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"go-reporting/internal/search"
)

// FixedFields are the visible record fields, in column order.
var FixedFields = []string{
	"job", "job_id", "testcase_name", StatusField, TypeField, DateField, "executiontime",
	"log_uri", "stage", "sut", "sut_wwid", "log", "os", "model", "hardware", "team",
	"spp_detail", "spp_status",
}

// columnRenames are applied to the column lists once per report.
var columnRenames = map[string]string{
	"stage":     "stage_stdout",
	StatusField: StageStatusColumn,
	TypeField:   "test_type",
}

// Catalog is the set of fields a report can display.
type Catalog struct {
	JobFields      []string
	CustomerFields []string
}

// BuildCatalog discovers the job and customer attribute names from the index
// properties. A nil props yields the fixed fields only.
func BuildCatalog(props map[string]any) Catalog {
	job := search.ObjectFields(props, JobAttrsField, JobAttrsKV)
	cust := search.ObjectFields(props, CustAttrsField, CustAttrsKV)
	sort.Strings(job)
	sort.Strings(cust)
	return Catalog{JobFields: job, CustomerFields: cust}
}

// Visible is every catalog field under its source name.
func (c Catalog) Visible() []string {
	out := make([]string, 0, len(FixedFields)+len(c.JobFields)+len(c.CustomerFields))
	out = append(out, FixedFields...)
	out = append(out, c.JobFields...)
	return append(out, c.CustomerFields...)
}

// SystemColumns is the fixed column group under display names.
func (c Catalog) SystemColumns() []string {
	out := make([]string, 0, len(FixedFields))
	for _, f := range FixedFields {
		if renamed, ok := columnRenames[f]; ok {
			f = renamed
		}
		out = append(out, f)
	}
	return out
}

// Attributes is the list of filterable fields: everything visible except log_uri,
// with the status column renamed.
func (c Catalog) Attributes() []string {
	visible := c.Visible()
	out := make([]string, 0, len(visible))
	for _, f := range visible {
		switch f {
		case "log_uri":
			continue
		case StatusField:
			f = StageStatusColumn
		}
		out = append(out, f)
	}
	return out
}

// NewRow seeds a row with NotAvailable for every visible field.
func (c Catalog) NewRow() Row {
	visible := c.Visible()
	row := make(Row, len(visible))
	for _, f := range visible {
		row[f] = NotAvailable
	}
	return row
}

// ShapeRow builds the report row of one indexed record. Attribute maps are overlaid
// first, then recognised top-level fields are copied and finally the derived columns
// are computed in a fixed order.
func (c Catalog) ShapeRow(source map[string]any) Row {
	row := c.NewRow()
	for _, ns := range []string{JobAttrsField, CustAttrsField} {
		if attrs, ok := source[ns].(map[string]any); ok {
			for k, v := range attrs {
				row[k] = v
			}
		}
	}
	for k, v := range source {
		if _, known := row[k]; known && v != nil {
			row[k] = v
		}
	}

	if v, ok := source["stage"]; ok {
		delete(row, "stage")
		stage := text(v)
		if i := strings.Index(stage, "_ci"); i >= 0 {
			stage = stage[:i]
		}
		row["stage_stdout"] = stage
	}
	if v, ok := source["log_uri"]; ok {
		uri := text(v)
		row["log_name"] = uri[strings.LastIndex(uri, "/")+1:]
	}
	if v, ok := source[StatusField]; ok {
		status := NotAvailable
		if v != nil {
			status = capitalize(fmt.Sprint(v))
		}
		delete(row, StatusField)
		row["job"] = status
		row[StageStatusColumn] = status
	}
	if v, ok := source[TypeField]; ok {
		delete(row, TypeField)
		if v == nil {
			v = NotAvailable
		}
		row["test_type"] = v
	}
	return row
}

// text renders a source value, with null as NotAvailable.
func text(v any) string {
	if v == nil {
		return NotAvailable
	}
	return fmt.Sprint(v)
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
