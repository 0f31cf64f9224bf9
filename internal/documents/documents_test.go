package documents

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/inovapharm/consilium/pkg/query"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", ErrNotFound, http.StatusNotFound},
		{"duplicate", ErrDuplicate, http.StatusConflict},
		{"file too large", ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"invalid file", ErrInvalidFile, http.StatusBadRequest},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("find failed: %w", ErrNotFound), http.StatusNotFound},
		{"wrapped duplicate", fmt.Errorf("insert failed: %w", ErrDuplicate), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapHTTPStatus(tt.err)
			if got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	t.Run("all params present", func(t *testing.T) {
		values := url.Values{
			"status":       {"uploaded"},
			"filename":     {"dossier"},
			"client_ref":   {"acme-pharma"},
			"content_type": {"application/pdf"},
		}

		f := FiltersFromQuery(values)

		if f.Status == nil || *f.Status != "uploaded" {
			t.Errorf("Status = %v, want uploaded", f.Status)
		}
		if f.Filename == nil || *f.Filename != "dossier" {
			t.Errorf("Filename = %v, want dossier", f.Filename)
		}
		if f.ClientRef == nil || *f.ClientRef != "acme-pharma" {
			t.Errorf("ClientRef = %v, want acme-pharma", f.ClientRef)
		}
		if f.ContentType == nil || *f.ContentType != "application/pdf" {
			t.Errorf("ContentType = %v, want application/pdf", f.ContentType)
		}
	})

	t.Run("empty params yield nil fields", func(t *testing.T) {
		f := FiltersFromQuery(url.Values{})

		if f.Status != nil {
			t.Errorf("Status = %v, want nil", f.Status)
		}
		if f.Filename != nil {
			t.Errorf("Filename = %v, want nil", f.Filename)
		}
		if f.ClientRef != nil {
			t.Errorf("ClientRef = %v, want nil", f.ClientRef)
		}
		if f.ContentType != nil {
			t.Errorf("ContentType = %v, want nil", f.ContentType)
		}
	})

	t.Run("partial params", func(t *testing.T) {
		values := url.Values{"client_ref": {"inline"}}

		f := FiltersFromQuery(values)

		if f.ClientRef == nil || *f.ClientRef != "inline" {
			t.Errorf("ClientRef = %v, want inline", f.ClientRef)
		}
		if f.Status != nil || f.Filename != nil || f.ContentType != nil {
			t.Error("unset params produced non-nil filters")
		}
	})
}

func TestFiltersApply(t *testing.T) {
	status := "uploaded"
	filename := "report"
	f := Filters{Status: &status, Filename: &filename}

	b := f.Apply(query.NewBuilder(projection, defaultSort))
	sql, args := b.Build()

	if !strings.Contains(sql, "d.status = $1") {
		t.Errorf("missing status condition: %s", sql)
	}
	if !strings.Contains(sql, "d.filename ILIKE $2") {
		t.Errorf("missing filename condition: %s", sql)
	}
	if len(args) != 2 {
		t.Errorf("args length = %d, want 2", len(args))
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain name", "report.pdf", "report.pdf"},
		{"strips directories", "../../etc/passwd", "passwd"},
		{"escapes spaces", "stability study.pdf", "stability%20study.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeFilename(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
