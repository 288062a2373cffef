package testcase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"go-reporting/internal/features/view"

	"github.com/gofiber/fiber/v2"
)

type stubReportService struct {
	lastReq *ReportRequest
	err     error
}

func (s *stubReportService) GetReport(ctx context.Context, req *ReportRequest) (*ReportPayload, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	p := newPayload(req)
	p.Count = 2
	return p, nil
}

func (s *stubReportService) ExportReport(ctx context.Context, req *ReportRequest) ([]byte, string, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, "", s.err
	}
	return []byte("xlsx"), "testcase_results_20210315.xlsx", nil
}

func newTestApp(svc ReportService) *fiber.App {
	app := fiber.New()
	NewReportApi(NewReportController(svc)).Setup(app)
	return app
}

func TestReportEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "ok", body: `{"filter":"days","days":"7"}`, wantStatus: fiber.StatusOK},
		{name: "empty body", body: ``, wantStatus: fiber.StatusOK},
		{name: "malformed", body: `{"filter":`, wantStatus: fiber.StatusBadRequest},
		{name: "duplicate", body: `{"view_name":"v","create_mode":true}`, err: fmt.Errorf("%w: v", view.ErrDuplicateView), wantStatus: fiber.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubReportService{err: tt.err}
			req := httptest.NewRequest("POST", "/api/testcases/report", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := newTestApp(svc).Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantStatus != fiber.StatusOK {
				return
			}

			var body map[string]any
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["count"] != float64(2) || body["reporttype"] != DefaultReportType {
				t.Errorf("unexpected body %v", body)
			}
			if _, ok := body["ring_data"].(map[string]any); !ok {
				t.Errorf("ring_data missing from %v", body)
			}
		})
	}
}

func TestExportEndpoint(t *testing.T) {
	svc := &stubReportService{}
	req := httptest.NewRequest("POST", "/api/testcases/export", strings.NewReader(`{"filter":"all"}`))

	resp, err := newTestApp(svc).Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Disposition"); got != "attachment; filename=testcase_results_20210315.xlsx" {
		t.Errorf("Content-Disposition = %q", got)
	}
	data, _ := io.ReadAll(resp.Body)
	if string(data) != "xlsx" {
		t.Errorf("body = %q", data)
	}
	if svc.lastReq == nil || svc.lastReq.Filter != "all" {
		t.Errorf("request not forwarded: %+v", svc.lastReq)
	}
}
