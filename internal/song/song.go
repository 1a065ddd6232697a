package song

import (
	"strings"
	"time"
)

// Tier is the discrete success bucket derived from a song's popularity score.
type Tier string

const (
	TierHit     Tier = "hit"
	TierGood    Tier = "good"
	TierMid     Tier = "mid"
	TierBust    Tier = "bust"
	TierUnknown Tier = "unknown"
)

// FeatureNames lists the audio feature columns carried by the dataset, in a
// fixed order so that iteration over features is deterministic.
var FeatureNames = []string{
	"energy",
	"danceability",
	"positiveness",
	"speechiness",
	"liveness",
	"acousticness",
	"instrumentalness",
}

// Record is a single parsed row of the song dataset. Optional fields are
// pointers: nil means the source value was absent or unparseable.
type Record struct {
	Title      string
	RawArtists string
	Artists    []string
	Popularity *int
	Genre      *string
	Explicit   bool
	// ReleaseDate is the parsed date, RawReleaseDate the verbatim field.
	// Parsing failures leave ReleaseDate nil, never an error.
	ReleaseDate    *time.Time
	RawReleaseDate string
	AudioFeatures  map[string]*float64
}

// ParseArtists splits a comma-delimited artist credit into trimmed,
// non-empty names. A nil or all-whitespace field yields no names.
func ParseArtists(field string) []string {
	var artists []string
	for _, name := range strings.Split(field, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			artists = append(artists, name)
		}
	}
	return artists
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"2006",
}

// ParseDate parses a release date string, trying the formats seen in the
// dataset. Returns nil when the string is empty or matches no layout.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
