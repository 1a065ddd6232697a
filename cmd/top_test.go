package cmd

import (
	"path/filepath"
	"strings"
	"testing"
)

// analyzedDb runs a full analysis over the test dataset and returns the
// cache path it populated.
func analyzedDb(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	config := AnalyzeConfig{
		DatasetPath: writeTestCSV(t),
		DbPath:      dbPath,
		TopN:        5,
		MinSongs:    1,
	}
	var out strings.Builder
	if err := runAnalyze(&out, config); err != nil {
		t.Fatalf("runAnalyze: %v", err)
	}
	return dbPath
}

func TestPrintTopWithoutAnalysis(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")

	var out strings.Builder
	err := printTop(&out, dbPath, "revenue", 10, 1)
	if err == nil {
		t.Fatal("printTop should fail before any analysis has run")
	}
	if !strings.Contains(err.Error(), "run analyze first") {
		t.Errorf("err = %v, want the run-analyze hint", err)
	}
}

func TestPrintTop(t *testing.T) {
	dbPath := analyzedDb(t)

	var out strings.Builder
	if err := printTop(&out, dbPath, "revenue", 10, 1); err != nil {
		t.Fatalf("printTop: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Top 10 Artists by revenue") {
		t.Errorf("missing heading:\n%s", got)
	}
	// Alpha's hit out-earns Beta's catalog.
	if !strings.Contains(got, "Alpha") || !strings.Contains(got, "Beta") {
		t.Errorf("missing artists:\n%s", got)
	}
	if strings.Index(got, "Alpha") > strings.Index(got, "Beta") {
		t.Errorf("Alpha should rank above Beta by revenue:\n%s", got)
	}
}

func TestPrintTopUnknownMetric(t *testing.T) {
	dbPath := analyzedDb(t)

	var out strings.Builder
	err := printTop(&out, dbPath, "fame", 10, 1)
	if err == nil {
		t.Fatal("printTop should reject an unknown metric")
	}
	if !strings.Contains(err.Error(), "fame") {
		t.Errorf("err = %v, want it to name the metric", err)
	}
}
