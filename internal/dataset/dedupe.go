package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aleclerc/artist-tools/internal/song"
)

// Dedupe drops records whose (artist credit, title) pair has already been
// seen, comparing case-insensitively and ignoring surrounding whitespace.
// The first occurrence wins; input order is otherwise preserved.
func Dedupe(records []song.Record) []song.Record {
	seen := make(map[string]bool, len(records))
	kept := records[:0:0]
	for _, rec := range records {
		key := dedupeKey(rec.RawArtists, rec.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, rec)
	}
	return kept
}

func dedupeKey(artists, title string) string {
	return strings.ToLower(strings.TrimSpace(artists)) + "\x00" + strings.ToLower(strings.TrimSpace(title))
}

// DedupeCSV copies the CSV at inPath to outPath, dropping duplicate
// (artist credit, title) rows. All columns pass through untouched. Returns
// the number of rows kept and dropped, excluding the header.
func DedupeCSV(inPath, outPath string) (kept, dropped int, err error) {
	in, err := os.Open(inPath)
	if err != nil {
		return 0, 0, fmt.Errorf("opening %s: %w", inPath, err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return 0, 0, fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer out.Close()

	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	writer := csv.NewWriter(out)

	header, err := reader.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("reading header: %w", err)
	}
	cols := columnIndex(header)
	if _, ok := cols[colArtists]; !ok {
		return 0, 0, fmt.Errorf("no %q column in header", colArtists)
	}
	if err := writer.Write(header); err != nil {
		return 0, 0, fmt.Errorf("writing header: %w", err)
	}

	seen := make(map[string]bool)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return kept, dropped, fmt.Errorf("reading row: %w", err)
		}

		key := dedupeKey(field(row, cols, colArtists), field(row, cols, colTitle))
		if seen[key] {
			dropped++
			continue
		}
		seen[key] = true
		if err := writer.Write(row); err != nil {
			return kept, dropped, fmt.Errorf("writing row: %w", err)
		}
		kept++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return kept, dropped, fmt.Errorf("flushing output: %w", err)
	}
	return kept, dropped, nil
}
