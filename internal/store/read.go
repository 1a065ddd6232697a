package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/aleclerc/artist-tools/internal/analysis"
)

// Metrics artists can be ranked by, mapped to their column. Keys double as
// the accepted values of the top command's --metric flag.
var rankColumns = map[string]string{
	"revenue":  "estimated_total_revenue",
	"hit-rate": "hit_rate",
	"hits":     "hit_songs",
	"songs":    "total_songs",
	"career":   "career_span_years",
}

// RankMetrics returns the accepted ranking metric names.
func RankMetrics() []string {
	return []string{"revenue", "hit-rate", "hits", "songs", "career"}
}

// RankedArtist is one row of a top-artists ranking.
type RankedArtist struct {
	Name                  string
	TotalSongs            int
	HitSongs              int
	HitRate               float64
	EstimatedTotalRevenue float64
	AvgRevenuePerSong     float64
	CareerSpanYears       float64
}

// TopArtists ranks cached artists by the given metric, descending, keeping
// only artists with at least minSongs songs.
func (s *Store) TopArtists(metric string, n, minSongs int) ([]RankedArtist, error) {
	column, ok := rankColumns[metric]
	if !ok {
		return nil, fmt.Errorf("unknown metric %q", metric)
	}

	query := fmt.Sprintf(`
		SELECT name, total_songs, hit_songs, hit_rate,
			estimated_total_revenue, avg_revenue_per_song, career_span_years
		FROM Artist
		WHERE total_songs >= ?
		ORDER BY %s DESC, name ASC
		LIMIT ?`, column)
	rows, err := s.db.Query(query, minSongs, n)
	if err != nil {
		return nil, fmt.Errorf("querying top artists: %w", err)
	}
	defer rows.Close()

	var ranked []RankedArtist
	for rows.Next() {
		var r RankedArtist
		err := rows.Scan(&r.Name, &r.TotalSongs, &r.HitSongs, &r.HitRate,
			&r.EstimatedTotalRevenue, &r.AvgRevenuePerSong, &r.CareerSpanYears)
		if err != nil {
			return nil, fmt.Errorf("scanning artist: %w", err)
		}
		ranked = append(ranked, r)
	}
	return ranked, rows.Err()
}

const profileColumns = `
	total_songs, hit_songs, good_songs, mid_songs, bust_songs,
	hit_rate, good_rate, mid_rate, bust_rate,
	estimated_total_revenue, avg_revenue_per_song,
	primary_genre, explicit_ratio,
	first_release, last_release, career_span_years,
	avg_energy, avg_danceability, avg_positiveness, avg_speechiness,
	avg_liveness, avg_acousticness, avg_instrumentalness`

func scanProfile(row interface{ Scan(...any) error }) (*analysis.Profile, error) {
	p := &analysis.Profile{}
	err := row.Scan(
		&p.TotalSongs, &p.HitSongs, &p.GoodSongs, &p.MidSongs, &p.BustSongs,
		&p.HitRate, &p.GoodRate, &p.MidRate, &p.BustRate,
		&p.EstimatedTotalRevenue, &p.AvgRevenuePerSong,
		&p.PrimaryGenre, &p.ExplicitRatio,
		&p.FirstRelease, &p.LastRelease, &p.CareerSpanYears,
		&p.AvgEnergy, &p.AvgDanceability, &p.AvgPositiveness, &p.AvgSpeechiness,
		&p.AvgLiveness, &p.AvgAcousticness, &p.AvgInstrumentalness,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetProfile loads one artist's full cached profile, including its song
// list and genre distribution. An artist absent from the cache is an error,
// not an empty profile.
func (s *Store) GetProfile(name string) (*analysis.Profile, error) {
	row := s.db.QueryRow("SELECT"+profileColumns+" FROM Artist WHERE name = ?", name)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("artist %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("reading profile for %q: %w", name, err)
	}

	if p.Songs, err = s.artistSongs(name); err != nil {
		return nil, err
	}
	if p.GenreDistribution, err = s.artistGenres(name); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) artistSongs(name string) ([]analysis.SongDetail, error) {
	rows, err := s.db.Query(
		"SELECT title, popularity, tier, revenue, release_date FROM Song WHERE artist = ? ORDER BY id", name)
	if err != nil {
		return nil, fmt.Errorf("querying songs for %q: %w", name, err)
	}
	defer rows.Close()

	var songs []analysis.SongDetail
	for rows.Next() {
		var d analysis.SongDetail
		if err := rows.Scan(&d.Title, &d.Popularity, &d.Tier, &d.Revenue, &d.ReleaseDate); err != nil {
			return nil, fmt.Errorf("scanning song: %w", err)
		}
		songs = append(songs, d)
	}
	return songs, rows.Err()
}

func (s *Store) artistGenres(name string) (map[string]int, error) {
	rows, err := s.db.Query("SELECT genre, count FROM ArtistGenre WHERE artist = ?", name)
	if err != nil {
		return nil, fmt.Errorf("querying genres for %q: %w", name, err)
	}
	defer rows.Close()

	genres := make(map[string]int)
	for rows.Next() {
		var genre string
		var count int
		if err := rows.Scan(&genre, &count); err != nil {
			return nil, fmt.Errorf("scanning genre: %w", err)
		}
		genres[genre] = count
	}
	return genres, rows.Err()
}

// Profiles loads every cached profile with its song list, keyed by artist
// name.
func (s *Store) Profiles() (map[string]*analysis.Profile, error) {
	rows, err := s.db.Query("SELECT name FROM Artist")
	if err != nil {
		return nil, fmt.Errorf("querying artists: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning artist name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	profiles := make(map[string]*analysis.Profile, len(names))
	for _, name := range names {
		p, err := s.GetProfile(name)
		if err != nil {
			return nil, err
		}
		profiles[name] = p
	}
	return profiles, nil
}

// LastAnalyzed returns when and from which dataset the cache was built.
// A zero time means no analysis has been stored yet.
func (s *Store) LastAnalyzed() (dataset string, analyzedAt time.Time, err error) {
	row := s.db.QueryRow("SELECT dataset, analyzed_at FROM Meta WHERE id = 1")
	err = row.Scan(&dataset, &analyzedAt)
	if err == sql.ErrNoRows {
		return "", time.Time{}, nil
	}
	if err != nil {
		return "", time.Time{}, fmt.Errorf("reading meta: %w", err)
	}
	return dataset, analyzedAt, nil
}
