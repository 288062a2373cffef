package testcase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go-reporting/internal/config"
	"go-reporting/internal/features/index"
	"go-reporting/internal/features/view"
	"go-reporting/internal/search"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type ReportService interface {
	// GetReport assembles the report payload. The only error returned is a
	// duplicate view in create mode; every other failure degrades to a partial payload.
	GetReport(ctx context.Context, req *ReportRequest) (*ReportPayload, error)
	// ExportReport renders the report rows as an xlsx workbook and returns it with its file name.
	ExportReport(ctx context.Context, req *ReportRequest) ([]byte, string, error)
}

type ReportServiceImpl struct {
	Client       search.Client
	ViewService  view.ViewService
	IndexService index.IndexService
	Logger       *zap.Logger

	index     string
	docType   string
	facetSize int
	now       func() time.Time
}

func NewReportService(cfg *config.Config, client search.Client, viewService view.ViewService, indexService index.IndexService, logger *zap.Logger) ReportService {
	return &ReportServiceImpl{
		Client:       client,
		ViewService:  viewService,
		IndexService: indexService,
		Logger:       logger,
		index:        cfg.Index,
		docType:      cfg.DocType,
		facetSize:    cfg.FacetSize,
		now:          time.Now,
	}
}

func (s *ReportServiceImpl) GetReport(ctx context.Context, req *ReportRequest) (*ReportPayload, error) {
	if req == nil {
		req = &ReportRequest{}
	}

	if req.HasView() && req.CreateMode {
		dup, err := s.ViewService.IsDuplicate(ctx, req.Folders, strings.TrimSpace(req.ViewName))
		if err != nil {
			return nil, err
		}
		if dup {
			return nil, fmt.Errorf("%w: a view with same name already exists: %s", view.ErrDuplicateView, req.ViewPath())
		}
	}

	payload := newPayload(req)
	if err := s.assemble(ctx, req, payload); err != nil {
		s.Logger.Error("Fetch testcase results failed", zap.Error(err), zap.String("filter", req.Filter))
	}
	return payload, nil
}

// assemble fills payload step by step; whatever was filled before a failure stays.
func (s *ReportServiceImpl) assemble(ctx context.Context, req *ReportRequest, payload *ReportPayload) error {
	dates, err := ResolveDateRange(req, s.now())
	if err != nil {
		return err
	}
	payload.Filter = dates.Description
	payload.FromDate = dates.From
	payload.ToDate = dates.To

	if req.HasView() && !req.CreateMode {
		filters, err := s.ViewService.ReadView(ctx, req.ViewPath(), false)
		if err != nil {
			// view_data stays {}; the report itself does not depend on it.
			s.Logger.Warn("Failed to load view data", zap.String("view", req.ViewPath()), zap.Error(err))
		} else {
			payload.ViewData = filters
		}
	}

	if s.IndexService != nil {
		s.IndexService.EnsureOnce(ctx)
	}

	mapping, err := s.Client.GetMapping(ctx, s.index)
	if err != nil {
		return err
	}
	catalog := BuildCatalog(mapping.Properties(s.index, s.docType))
	payload.Fields = catalog.Attributes()
	payload.SystemColumns = catalog.SystemColumns()
	payload.JobColumns = nonNil(catalog.JobFields)
	payload.CustomerColumns = nonNil(catalog.CustomerFields)

	if !dates.Bounded() {
		s.Logger.Warn("No date bounds, fetching all records", zap.String("index", s.index))
	}
	query := BuildQuery(dates.From, dates.To, catalog.Visible())
	err = s.Client.ScrollSearch(ctx, s.index, query, func(hits []search.Hit) error {
		for _, hit := range hits {
			payload.Rows = append(payload.Rows, catalog.ShapeRow(hit.Source))
		}
		payload.Count = len(payload.Rows)
		return nil
	})
	if err != nil {
		return err
	}

	res, err := s.Client.Search(ctx, s.index, BuildAggregationQuery(dates.From, dates.To, req.Type, s.facetSize))
	if err != nil {
		return err
	}
	ringData, err := ShapeAggregations(res.Aggregations)
	if err != nil {
		return err
	}
	payload.RingData = ringData

	s.Logger.Info("Report assembled", zap.String("filter", dates.Description), zap.Int("count", payload.Count))
	return nil
}

func (s *ReportServiceImpl) ExportReport(ctx context.Context, req *ReportRequest) ([]byte, string, error) {
	payload, err := s.GetReport(ctx, req)
	if err != nil {
		return nil, "", err
	}

	columns := make([]string, 0, len(payload.SystemColumns)+len(payload.JobColumns)+len(payload.CustomerColumns))
	columns = append(columns, payload.SystemColumns...)
	columns = append(columns, payload.JobColumns...)
	columns = append(columns, payload.CustomerColumns...)

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Report"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, "", err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	writeHeader(f, sheetName, columns, headerStyle)
	for rowIdx, row := range payload.Rows {
		for colIdx, col := range columns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			val, ok := row[col]
			if !ok || val == nil {
				val = NotAvailable
			}
			switch v := val.(type) {
			case string, int, int64, float64, bool:
				f.SetCellValue(sheetName, cell, v)
			default:
				f.SetCellValue(sheetName, cell, fmt.Sprint(v))
			}
		}
	}
	for i := range columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 15)
	}

	if err := writeFacets(f, payload.RingData, headerStyle); err != nil {
		return nil, "", err
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	return buffer.Bytes(), exportFilename(payload.ReportType, s.now()), nil
}

// writeFacets adds one facet/value/count line per bucket on a second sheet.
func writeFacets(f *excelize.File, ringData FacetCounts, headerStyle int) error {
	sheetName := "Facets"
	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}
	writeHeader(f, sheetName, []string{"facet", "value", "count"}, headerStyle)

	facets := make([]string, 0, len(ringData))
	for name := range ringData {
		facets = append(facets, name)
	}
	sort.Strings(facets)

	line := 2
	for _, name := range facets {
		values := make([]string, 0, len(ringData[name]))
		for v := range ringData[name] {
			values = append(values, v)
		}
		sort.Strings(values)
		for _, v := range values {
			f.SetSheetRow(sheetName, fmt.Sprintf("A%d", line), &[]any{name, v, ringData[name][v]})
			line++
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheetName string, columns []string, style int) {
	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, style)
	}
}

func exportFilename(reportType string, now time.Time) string {
	base := strings.ToLower(strings.Join(strings.Fields(reportType), "_"))
	if base == "" {
		base = "report"
	}
	return fmt.Sprintf("%s_%s.xlsx", base, now.Format("20060102"))
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
