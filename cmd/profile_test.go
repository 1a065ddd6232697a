package cmd

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestPrintProfile(t *testing.T) {
	dbPath := analyzedDb(t)

	var out strings.Builder
	if err := printProfile(&out, dbPath, "Alpha", 5); err != nil {
		t.Fatalf("printProfile: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Artist Profile: Alpha",
		"Overview",
		"Song Breakdown",
		"Audio Profile",
		"Top Songs by Estimated Revenue",
		"Banger",
		"pop",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestPrintProfileUnknownArtist(t *testing.T) {
	dbPath := analyzedDb(t)

	var out strings.Builder
	err := printProfile(&out, dbPath, "Nobody", 5)
	if err == nil {
		t.Fatal("printProfile should fail for an uncached artist")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("err = %v, want a not-found message", err)
	}
}

func TestPrintProfileWithoutAnalysis(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")

	var out strings.Builder
	if err := printProfile(&out, dbPath, "Alpha", 5); err == nil {
		t.Fatal("printProfile should fail before any analysis has run")
	}
}
