package view

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		payload     map[string]any
		wantErr     bool
		wantInError []string
	}{
		{
			name:    "Exact Keys",
			payload: map[string]any{"folder": "f", "view": "v", "filters": map[string]any{}},
		},
		{
			name:        "Missing Filters",
			payload:     map[string]any{"folder": "f", "view": "v"},
			wantErr:     true,
			wantInError: []string{"missing", "filters"},
		},
		{
			name:        "Extra Key",
			payload:     map[string]any{"folder": "f", "view": "v", "filters": map[string]any{}, "extra": 1},
			wantErr:     true,
			wantInError: []string{"unneeded", "extra"},
		},
		{
			name:        "Missing And Extra",
			payload:     map[string]any{"view": "v", "filters": map[string]any{}, "owner": "bob"},
			wantErr:     true,
			wantInError: []string{"folder", "owner"},
		},
		{
			name:    "Blank View Name",
			payload: map[string]any{"folder": "f", "view": "  ", "filters": map[string]any{}},
			wantErr: true,
		},
		{
			name:    "Filters Not An Object",
			payload: map[string]any{"folder": "f", "view": "v", "filters": []any{1}},
			wantErr: true,
		},
		{
			name:    "Null Filters",
			payload: map[string]any{"folder": "", "view": "v", "filters": nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Validate(tt.payload)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrSchemaMismatch) {
					t.Errorf("error %v is not ErrSchemaMismatch", err)
				}
				for _, s := range tt.wantInError {
					if !strings.Contains(err.Error(), s) {
						t.Errorf("error %q does not mention %q", err, s)
					}
				}
				return
			}
			if req.Filters == nil {
				t.Errorf("Filters should never be nil")
			}
		})
	}
}

func TestSaveRequestPath(t *testing.T) {
	tests := []struct {
		req  SaveRequest
		want string
	}{
		{SaveRequest{Folder: "", View: " daily "}, "daily"},
		{SaveRequest{Folder: " team/nightly ", View: "l2add"}, "team/nightly/l2add"},
		{SaveRequest{Folder: "team/", View: "l2add"}, "team/l2add"},
	}
	for _, tt := range tests {
		if got := tt.req.Path(); got != tt.want {
			t.Errorf("Path() = %q, want %q", got, tt.want)
		}
	}
}
