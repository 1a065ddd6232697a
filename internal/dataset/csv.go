package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/aleclerc/artist-tools/internal/song"
)

// Column names recognized in the dataset header, lowercased. The audio
// feature columns are matched by the feature name itself.
const (
	colTitle       = "song"
	colArtists     = "artist(s)"
	colPopularity  = "popularity"
	colGenre       = "genre"
	colExplicit    = "explicit"
	colReleaseDate = "release date"
)

// Load reads the song dataset CSV at path. An unreadable file is fatal;
// malformed field values within a row are tolerated and become missing
// values on the record.
func Load(path string) ([]song.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return records, nil
}

// Read parses song records from CSV data. The first row is the header;
// columns are discovered by name, case-insensitively, so column order does
// not matter and unrecognized columns are ignored.
func Read(r io.Reader) ([]song.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	cols := columnIndex(header)
	if _, ok := cols[colArtists]; !ok {
		return nil, fmt.Errorf("no %q column in header", colArtists)
	}

	var records []song.Record
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", line+1, err)
		}
		line++
		records = append(records, parseRow(row, cols))
	}
	return records, nil
}

// columnIndex maps lowercased, trimmed header names to their positions.
func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

func parseRow(row []string, cols map[string]int) song.Record {
	rawArtists := field(row, cols, colArtists)
	rawDate := field(row, cols, colReleaseDate)

	rec := song.Record{
		Title:          field(row, cols, colTitle),
		RawArtists:     rawArtists,
		Artists:        song.ParseArtists(rawArtists),
		Popularity:     parsePopularity(field(row, cols, colPopularity)),
		Genre:          parseGenre(field(row, cols, colGenre)),
		Explicit:       parseExplicit(field(row, cols, colExplicit)),
		ReleaseDate:    song.ParseDate(rawDate),
		RawReleaseDate: strings.TrimSpace(rawDate),
		AudioFeatures:  make(map[string]*float64, len(song.FeatureNames)),
	}
	for _, name := range song.FeatureNames {
		rec.AudioFeatures[name] = parseFeature(field(row, cols, name))
	}

	if len(rec.Artists) == 0 {
		slog.Warn("row has no parseable artist, it will not be attributed", "title", rec.Title)
	}
	return rec
}

func field(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// parsePopularity accepts integer or float text. Values outside [0,100] are
// treated as missing, matching the popularity score's defined range.
func parsePopularity(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	p := int(f)
	if p < 0 || p > 100 {
		return nil
	}
	return &p
}

func parseGenre(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func parseExplicit(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true
	}
	return false
}

func parseFeature(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
