package analysis

import "github.com/aleclerc/artist-tools/internal/song"

// Result is the top-level structure serialized to the analysis JSON file.
// Field names are a compatibility contract: downstream consumers read keys
// like hit_rate and estimated_total_revenue by exact name.
type Result struct {
	Summary Summary             `json:"summary"`
	Artists map[string]*Profile `json:"artists"`
}

// Profile is the rolled-up view of one artist. It is rebuilt fully on each
// aggregation pass, never updated incrementally.
type Profile struct {
	TotalSongs int `json:"total_songs"`
	HitSongs   int `json:"hit_songs"`
	GoodSongs  int `json:"good_songs"`
	MidSongs   int `json:"mid_songs"`
	BustSongs  int `json:"bust_songs"`

	// Rates are percentages of TotalSongs, rounded to 2 decimals.
	HitRate  float64 `json:"hit_rate"`
	GoodRate float64 `json:"good_rate"`
	MidRate  float64 `json:"mid_rate"`
	BustRate float64 `json:"bust_rate"`

	EstimatedTotalRevenue float64 `json:"estimated_total_revenue"`
	AvgRevenuePerSong     float64 `json:"avg_revenue_per_song"`

	PrimaryGenre      *string        `json:"primary_genre"`
	GenreDistribution map[string]int `json:"genre_distribution"`
	ExplicitRatio     float64        `json:"explicit_ratio"`

	FirstRelease    *string `json:"first_release"`
	LastRelease     *string `json:"last_release"`
	CareerSpanYears float64 `json:"career_span_years"`

	AvgEnergy           float64 `json:"avg_energy"`
	AvgDanceability     float64 `json:"avg_danceability"`
	AvgPositiveness     float64 `json:"avg_positiveness"`
	AvgSpeechiness      float64 `json:"avg_speechiness"`
	AvgLiveness         float64 `json:"avg_liveness"`
	AvgAcousticness     float64 `json:"avg_acousticness"`
	AvgInstrumentalness float64 `json:"avg_instrumentalness"`

	Songs []SongDetail `json:"songs"`
}

// SongDetail is the per-song entry retained in a profile's song list.
// ReleaseDate carries the verbatim dataset field.
type SongDetail struct {
	Title       string    `json:"title"`
	Popularity  *int      `json:"popularity"`
	Tier        song.Tier `json:"tier"`
	Revenue     float64   `json:"revenue"`
	ReleaseDate *string   `json:"release_date"`
}

// Summary aggregates totals across all artist profiles.
type Summary struct {
	TotalArtists          int     `json:"total_artists"`
	TotalSongs            int     `json:"total_songs"`
	TotalEstimatedRevenue float64 `json:"total_estimated_revenue"`
	AvgSongsPerArtist     float64 `json:"avg_songs_per_artist"`
	AvgRevenuePerArtist   float64 `json:"avg_revenue_per_artist"`
	AvgHitRate            float64 `json:"avg_hit_rate"`
	MedianHitRate         float64 `json:"median_hit_rate"`
}

// AvgFeature returns the averaged audio feature by name.
func (p *Profile) AvgFeature(name string) float64 {
	switch name {
	case "energy":
		return p.AvgEnergy
	case "danceability":
		return p.AvgDanceability
	case "positiveness":
		return p.AvgPositiveness
	case "speechiness":
		return p.AvgSpeechiness
	case "liveness":
		return p.AvgLiveness
	case "acousticness":
		return p.AvgAcousticness
	case "instrumentalness":
		return p.AvgInstrumentalness
	}
	return 0
}
