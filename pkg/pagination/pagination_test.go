package pagination_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/inovapharm/consilium/pkg/pagination"
	"github.com/inovapharm/consilium/pkg/query"
)

func testConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"valid values unchanged", 2, 50, 2, 50},
		{"zero page clamps to one", 0, 20, 1, 20},
		{"negative page clamps to one", -5, 20, 1, 20},
		{"zero page size uses default", 1, 0, 1, 20},
		{"oversize clamps to max", 1, 500, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := pagination.PageRequest{Page: tt.page, PageSize: tt.pageSize}
			req.Normalize(testConfig())

			if req.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", req.Page, tt.wantPage)
			}
			if req.PageSize != tt.wantPageSize {
				t.Errorf("PageSize = %d, want %d", req.PageSize, tt.wantPageSize)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		want     int
	}{
		{"first page", 1, 20, 0},
		{"second page", 2, 20, 20},
		{"large page", 10, 25, 225},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := pagination.PageRequest{Page: tt.page, PageSize: tt.pageSize}
			if got := req.Offset(); got != tt.want {
				t.Errorf("Offset = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	values := url.Values{
		"page":      {"3"},
		"page_size": {"50"},
		"search":    {"dossier"},
		"sort":      {"name,-created_at"},
	}

	req := pagination.PageRequestFromQuery(values, testConfig())

	if req.Page != 3 {
		t.Errorf("Page = %d, want 3", req.Page)
	}
	if req.PageSize != 50 {
		t.Errorf("PageSize = %d, want 50", req.PageSize)
	}
	if req.Search == nil || *req.Search != "dossier" {
		t.Errorf("Search = %v, want dossier", req.Search)
	}
	if len(req.Sort) != 2 || req.Sort[0].Field != "name" || !req.Sort[1].Descending {
		t.Errorf("Sort = %v, want [name, -created_at]", req.Sort)
	}
}

func TestPageRequestFromQueryDefaults(t *testing.T) {
	req := pagination.PageRequestFromQuery(url.Values{}, testConfig())

	if req.Page != 1 {
		t.Errorf("Page = %d, want 1", req.Page)
	}
	if req.PageSize != 20 {
		t.Errorf("PageSize = %d, want 20", req.PageSize)
	}
	if req.Search != nil {
		t.Errorf("Search = %v, want nil", req.Search)
	}
	if req.Sort != nil {
		t.Errorf("Sort = %v, want nil", req.Sort)
	}
}

func TestSortFieldsUnmarshalJSON(t *testing.T) {
	t.Run("string format", func(t *testing.T) {
		var req pagination.PageRequest
		if err := json.Unmarshal([]byte(`{"page":1,"sort":"name,-created_at"}`), &req); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}

		want := pagination.SortFields{
			{Field: "name"},
			{Field: "created_at", Descending: true},
		}
		if len(req.Sort) != 2 || req.Sort[0] != want[0] || req.Sort[1] != want[1] {
			t.Errorf("Sort = %v, want %v", req.Sort, want)
		}
	})

	t.Run("array format", func(t *testing.T) {
		var req pagination.PageRequest
		payload := `{"page":1,"sort":[{"Field":"name","Descending":false},{"Field":"created_at","Descending":true}]}`
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}

		if len(req.Sort) != 2 || req.Sort[1] != (query.SortField{Field: "created_at", Descending: true}) {
			t.Errorf("Sort = %v", req.Sort)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		var req pagination.PageRequest
		if err := json.Unmarshal([]byte(`{"sort":42}`), &req); err == nil {
			t.Error("unmarshal succeeded for invalid sort payload")
		}
	})
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		pageSize  int
		wantPages int
	}{
		{"exact division", 100, 20, 5},
		{"remainder adds page", 101, 20, 6},
		{"empty result has one page", 0, 20, 1},
		{"single partial page", 7, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult([]string{}, tt.total, 1, tt.pageSize)
			if result.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantPages)
			}
		})
	}

	t.Run("nil data becomes empty slice", func(t *testing.T) {
		result := pagination.NewPageResult[string](nil, 0, 1, 20)
		if result.Data == nil {
			t.Error("Data is nil, want empty slice")
		}
	})
}
