package sheet

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/lvillar/certgen"
)

func TestParseCSV(t *testing.T) {
	in := "Name,Course\nAna,Math\nBen,Art\n"
	ds, err := ParseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", ds.Len())
	}
	if v, _ := ds.Record(1).Value("Name"); v != "Ben" {
		t.Fatalf("row 2 Name = %q", v)
	}
}

func TestParseCSVRejectsRaggedInput(t *testing.T) {
	in := "Name,Course\nAna\n"
	if _, err := ParseCSV(strings.NewReader(in)); err == nil {
		t.Fatal("expected error for ragged csv")
	}
}

func TestParseCSVRejectsEmptyInput(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty csv")
	}
}

func TestParseCSVRejectsDuplicateHeaders(t *testing.T) {
	in := "Name,Name\nAna,Ana\n"
	_, err := ParseCSV(strings.NewReader(in))
	if !errors.Is(err, certgen.ErrDuplicateHeader) {
		t.Fatalf("expected ErrDuplicateHeader, got %v", err)
	}
}

func TestExportURLRewritesGoogleSheets(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{
			"https://docs.google.com/spreadsheets/d/abc123/edit#gid=77",
			"https://docs.google.com/spreadsheets/d/abc123/export?format=csv&gid=77",
		},
		{
			"https://docs.google.com/spreadsheets/d/abc123/edit?gid=5#gid=5",
			"https://docs.google.com/spreadsheets/d/abc123/export?format=csv&gid=5",
		},
		{
			"https://docs.google.com/spreadsheets/d/abc123",
			"https://docs.google.com/spreadsheets/d/abc123/export?format=csv",
		},
		{"https://example.com/data.csv", "https://example.com/data.csv"},
	}
	for _, tc := range cases {
		got, err := ExportURL(tc.in)
		if err != nil {
			t.Fatalf("ExportURL(%q) failed: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ExportURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExportURLRejectsMalformedSheetLinks(t *testing.T) {
	if _, err := ExportURL("https://docs.google.com/spreadsheets/"); err == nil {
		t.Fatal("expected error for link without a sheet id")
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("Name,Course\nAna,Math\n"))
	}))
	defer srv.Close()

	ds, err := Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if ds.Len() != 1 {
		t.Fatalf("expected 1 row, got %d", ds.Len())
	}
}

func TestFetchReportsHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Name", "Course", "Note"},
		{"Ana", "Math", "top of class"},
		{"Ben", "Art"}, // trailing empty cell trimmed by Excel
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}

	ds, err := ReadXLSX(buf)
	if err != nil {
		t.Fatalf("ReadXLSX failed: %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", ds.Len())
	}
	// short row padded to header width with empty strings
	if v, ok := ds.Record(1).Value("Note"); !ok || v != "" {
		t.Fatalf("padded cell = %q, %v", v, ok)
	}
	if v, _ := ds.Record(0).Value("Note"); v != "top of class" {
		t.Fatalf("Note = %q", v)
	}
}
