package analysis

import "testing"

func TestSummarize(t *testing.T) {
	profiles := map[string]*Profile{
		"A": {TotalSongs: 4, HitRate: 25.0, EstimatedTotalRevenue: 1000000},
		"B": {TotalSongs: 2, HitRate: 50.0, EstimatedTotalRevenue: 200000},
		"C": {TotalSongs: 6, HitRate: 0.0, EstimatedTotalRevenue: 300000},
	}

	s := Summarize(profiles)
	if s.TotalArtists != 3 {
		t.Errorf("total_artists = %d, want 3", s.TotalArtists)
	}
	if s.TotalSongs != 12 {
		t.Errorf("total_songs = %d, want 12", s.TotalSongs)
	}
	if s.TotalEstimatedRevenue != 1500000 {
		t.Errorf("total_estimated_revenue = %v, want 1500000", s.TotalEstimatedRevenue)
	}
	if s.AvgSongsPerArtist != 4.0 {
		t.Errorf("avg_songs_per_artist = %v, want 4.0", s.AvgSongsPerArtist)
	}
	if s.AvgRevenuePerArtist != 500000 {
		t.Errorf("avg_revenue_per_artist = %v, want 500000", s.AvgRevenuePerArtist)
	}
	if s.AvgHitRate != 25.0 {
		t.Errorf("avg_hit_rate = %v, want 25.0", s.AvgHitRate)
	}
	if s.MedianHitRate != 25.0 {
		t.Errorf("median_hit_rate = %v, want 25.0", s.MedianHitRate)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(map[string]*Profile{})
	if s != (Summary{}) {
		t.Errorf("Summarize of no profiles = %+v, want zero summary", s)
	}
}

func TestMedianEvenCount(t *testing.T) {
	if got := median([]float64{10, 40, 20, 30}); got != 25 {
		t.Errorf("median = %v, want 25", got)
	}
}

func TestTopBy(t *testing.T) {
	profiles := map[string]*Profile{
		"A": {TotalSongs: 10, EstimatedTotalRevenue: 500},
		"B": {TotalSongs: 10, EstimatedTotalRevenue: 900},
		"C": {TotalSongs: 2, EstimatedTotalRevenue: 9999},
		"D": {TotalSongs: 10, EstimatedTotalRevenue: 900},
	}
	revenueOf := func(p *Profile) float64 { return p.EstimatedTotalRevenue }

	got := TopBy(profiles, revenueOf, 3, 5)
	want := []string{"B", "D", "A"}
	if len(got) != len(want) {
		t.Fatalf("TopBy = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TopBy[%d] = %q, want %q (ties break alphabetically)", i, got[i], want[i])
		}
	}
}

func TestTopByLimits(t *testing.T) {
	profiles := map[string]*Profile{
		"A": {TotalSongs: 1},
		"B": {TotalSongs: 1},
	}
	count := func(p *Profile) float64 { return float64(p.TotalSongs) }
	if got := TopBy(profiles, count, 1, 0); len(got) != 1 {
		t.Errorf("TopBy with n=1 returned %d names", len(got))
	}
	if got := TopBy(profiles, count, 10, 0); len(got) != 2 {
		t.Errorf("TopBy with n=10 returned %d names, want all 2", len(got))
	}
}
