package store

import (
	"fmt"
	"time"

	"github.com/aleclerc/artist-tools/internal/analysis"
)

// SaveAnalysis replaces the cached analysis with a fresh run. Profiles are
// always rebuilt from scratch, so the previous contents are dropped inside
// the same transaction.
func (s *Store) SaveAnalysis(dataset string, songRows int, profiles map[string]*analysis.Profile, analyzedAt time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"Song", "ArtistGenre", "Artist", "Meta"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	insertArtist, err := tx.Prepare(`
		INSERT INTO Artist (
			name, total_songs, hit_songs, good_songs, mid_songs, bust_songs,
			hit_rate, good_rate, mid_rate, bust_rate,
			estimated_total_revenue, avg_revenue_per_song,
			primary_genre, explicit_ratio,
			first_release, last_release, career_span_years,
			avg_energy, avg_danceability, avg_positiveness, avg_speechiness,
			avg_liveness, avg_acousticness, avg_instrumentalness
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing artist insert: %w", err)
	}
	defer insertArtist.Close()

	insertSong, err := tx.Prepare(
		"INSERT INTO Song (artist, title, popularity, tier, revenue, release_date) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing song insert: %w", err)
	}
	defer insertSong.Close()

	insertGenre, err := tx.Prepare(
		"INSERT INTO ArtistGenre (artist, genre, count) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing genre insert: %w", err)
	}
	defer insertGenre.Close()

	for name, p := range profiles {
		_, err := insertArtist.Exec(
			name, p.TotalSongs, p.HitSongs, p.GoodSongs, p.MidSongs, p.BustSongs,
			p.HitRate, p.GoodRate, p.MidRate, p.BustRate,
			p.EstimatedTotalRevenue, p.AvgRevenuePerSong,
			p.PrimaryGenre, p.ExplicitRatio,
			p.FirstRelease, p.LastRelease, p.CareerSpanYears,
			p.AvgEnergy, p.AvgDanceability, p.AvgPositiveness, p.AvgSpeechiness,
			p.AvgLiveness, p.AvgAcousticness, p.AvgInstrumentalness,
		)
		if err != nil {
			return fmt.Errorf("inserting artist %q: %w", name, err)
		}

		for _, detail := range p.Songs {
			_, err := insertSong.Exec(name, detail.Title, detail.Popularity, string(detail.Tier), detail.Revenue, detail.ReleaseDate)
			if err != nil {
				return fmt.Errorf("inserting song %q for %q: %w", detail.Title, name, err)
			}
		}

		for genre, count := range p.GenreDistribution {
			if _, err := insertGenre.Exec(name, genre, count); err != nil {
				return fmt.Errorf("inserting genre %q for %q: %w", genre, name, err)
			}
		}
	}

	_, err = tx.Exec("INSERT INTO Meta (id, dataset, song_rows, analyzed_at) VALUES (1, ?, ?, ?)",
		dataset, songRows, analyzedAt)
	if err != nil {
		return fmt.Errorf("inserting meta: %w", err)
	}

	return tx.Commit()
}
