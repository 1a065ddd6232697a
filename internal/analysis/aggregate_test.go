package analysis

import (
	"math"
	"reflect"
	"sort"
	"testing"

	"github.com/aleclerc/artist-tools/internal/revenue"
	"github.com/aleclerc/artist-tools/internal/song"
)

func intPtr(v int) *int {
	return &v
}

func strPtr(s string) *string {
	return &s
}

func floatPtr(v float64) *float64 {
	return &v
}

func makeRecord(title, artists string, popularity *int, genre *string, date string) song.Record {
	return song.Record{
		Title:          title,
		RawArtists:     artists,
		Artists:        song.ParseArtists(artists),
		Popularity:     popularity,
		Genre:          genre,
		ReleaseDate:    song.ParseDate(date),
		RawReleaseDate: date,
		AudioFeatures:  map[string]*float64{},
	}
}

func TestAggregateSingleSong(t *testing.T) {
	ag := NewAggregator(revenue.NewDefault())
	profiles := ag.Aggregate([]song.Record{
		makeRecord("X", "A, B", intPtr(82), strPtr("pop"), "2020-01-01"),
	})

	if len(profiles) != 2 {
		t.Fatalf("got %d profiles, want 2", len(profiles))
	}
	for _, artist := range []string{"A", "B"} {
		p := profiles[artist]
		if p == nil {
			t.Fatalf("no profile for %q", artist)
		}
		if p.TotalSongs != 1 || p.HitSongs != 1 {
			t.Errorf("%s: total_songs=%d hit_songs=%d, want 1/1", artist, p.TotalSongs, p.HitSongs)
		}
		if p.HitRate != 100.0 {
			t.Errorf("%s: hit_rate = %v, want 100.0", artist, p.HitRate)
		}
		if p.EstimatedTotalRevenue != 4600000 {
			t.Errorf("%s: estimated_total_revenue = %v, want 4600000", artist, p.EstimatedTotalRevenue)
		}
		if p.PrimaryGenre == nil || *p.PrimaryGenre != "pop" {
			t.Errorf("%s: primary_genre = %v, want pop", artist, p.PrimaryGenre)
		}
		if p.FirstRelease == nil || *p.FirstRelease != "2020-01-01" {
			t.Errorf("%s: first_release = %v, want 2020-01-01", artist, p.FirstRelease)
		}
	}
}

func TestAggregateFanOutCreditsFullValue(t *testing.T) {
	ag := NewAggregator(revenue.NewDefault())
	profiles := ag.Aggregate([]song.Record{
		makeRecord("Together", "A, B, C", intPtr(50), nil, ""),
	})

	// Collaborations credit the full song to every artist, not a split.
	for artist, p := range profiles {
		if p.EstimatedTotalRevenue != 150000 {
			t.Errorf("%s: revenue = %v, want 150000", artist, p.EstimatedTotalRevenue)
		}
	}
}

func TestAggregateUnknownPopularity(t *testing.T) {
	ag := NewAggregator(revenue.NewDefault())
	profiles := ag.Aggregate([]song.Record{
		makeRecord("Mystery", "A", nil, nil, ""),
	})

	p := profiles["A"]
	if p.TotalSongs != 1 {
		t.Errorf("total_songs = %d, want 1", p.TotalSongs)
	}
	if p.HitSongs+p.GoodSongs+p.MidSongs+p.BustSongs != 0 {
		t.Error("song with unknown popularity must not land in any tier bucket")
	}
	if p.EstimatedTotalRevenue != 0 {
		t.Errorf("revenue = %v, want 0", p.EstimatedTotalRevenue)
	}
	if len(p.Songs) != 1 || p.Songs[0].Tier != song.TierUnknown {
		t.Errorf("songs = %+v, want one entry with tier unknown", p.Songs)
	}
}

func TestAggregateSkipsArtistlessRows(t *testing.T) {
	ag := NewAggregator(revenue.NewDefault())
	profiles := ag.Aggregate([]song.Record{
		makeRecord("Orphan", "  ,  ", intPtr(90), nil, ""),
		makeRecord("Kept", "A", intPtr(90), nil, ""),
	})

	if len(profiles) != 1 {
		t.Fatalf("got %d profiles, want 1", len(profiles))
	}
	if profiles["A"].TotalSongs != 1 {
		t.Errorf("A total_songs = %d, want 1", profiles["A"].TotalSongs)
	}
}

func TestAggregateGenreTieBreaksAlphabetically(t *testing.T) {
	ag := NewAggregator(revenue.NewDefault())
	profiles := ag.Aggregate([]song.Record{
		makeRecord("One", "A", intPtr(40), strPtr("rock"), ""),
		makeRecord("Two", "A", intPtr(40), strPtr("pop"), ""),
	})

	p := profiles["A"]
	if p.PrimaryGenre == nil || *p.PrimaryGenre != "pop" {
		t.Errorf("primary_genre = %v, want pop", p.PrimaryGenre)
	}
	want := map[string]int{"pop": 1, "rock": 1}
	if !reflect.DeepEqual(p.GenreDistribution, want) {
		t.Errorf("genre_distribution = %v, want %v", p.GenreDistribution, want)
	}
}

func TestAggregateCareerSpan(t *testing.T) {
	ag := NewAggregator(revenue.NewDefault())
	profiles := ag.Aggregate([]song.Record{
		makeRecord("First", "A", intPtr(40), nil, "2020-01-01"),
		makeRecord("Undated", "A", intPtr(40), nil, "not a date"),
		makeRecord("Last", "A", intPtr(40), nil, "2022-01-01"),
	})

	p := profiles["A"]
	if p.FirstRelease == nil || *p.FirstRelease != "2020-01-01" {
		t.Errorf("first_release = %v, want 2020-01-01", p.FirstRelease)
	}
	if p.LastRelease == nil || *p.LastRelease != "2022-01-01" {
		t.Errorf("last_release = %v, want 2022-01-01", p.LastRelease)
	}
	if p.CareerSpanYears != 2.0 {
		t.Errorf("career_span_years = %v, want 2.0", p.CareerSpanYears)
	}
}

func TestAggregateNoDatedSongs(t *testing.T) {
	ag := NewAggregator(revenue.NewDefault())
	profiles := ag.Aggregate([]song.Record{
		makeRecord("Only", "A", intPtr(40), nil, ""),
	})

	p := profiles["A"]
	if p.FirstRelease != nil || p.LastRelease != nil {
		t.Errorf("release bounds = %v/%v, want nil/nil", p.FirstRelease, p.LastRelease)
	}
	if p.CareerSpanYears != 0 {
		t.Errorf("career_span_years = %v, want 0", p.CareerSpanYears)
	}
}

func TestAggregateExplicitRatio(t *testing.T) {
	ag := NewAggregator(revenue.NewDefault())
	explicit := makeRecord("Dirty", "A", intPtr(40), nil, "")
	explicit.Explicit = true
	profiles := ag.Aggregate([]song.Record{
		explicit,
		makeRecord("Clean", "A", intPtr(40), nil, ""),
	})

	if got := profiles["A"].ExplicitRatio; got != 50.0 {
		t.Errorf("explicit_ratio = %v, want 50.0", got)
	}
}

func TestAggregateAudioFeatureMeansSkipMissing(t *testing.T) {
	ag := NewAggregator(revenue.NewDefault())
	with := makeRecord("With", "A", intPtr(40), nil, "")
	with.AudioFeatures["energy"] = floatPtr(80)
	without := makeRecord("Without", "A", intPtr(40), nil, "")
	profiles := ag.Aggregate([]song.Record{with, without})

	p := profiles["A"]
	if p.AvgEnergy != 80.0 {
		t.Errorf("avg_energy = %v, want 80.0 (missing values excluded)", p.AvgEnergy)
	}
	if p.AvgDanceability != 0 {
		t.Errorf("avg_danceability = %v, want 0 for a feature with no values", p.AvgDanceability)
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	records := []song.Record{
		makeRecord("One", "A", intPtr(85), strPtr("pop"), "2019-03-01"),
		makeRecord("Two", "A, B", intPtr(40), strPtr("rock"), "2021-07-15"),
		makeRecord("Three", "B", nil, nil, ""),
	}
	reversed := []song.Record{records[2], records[1], records[0]}

	ag := NewAggregator(revenue.NewDefault())
	forward := ag.Aggregate(records)
	backward := ag.Aggregate(reversed)

	for artist, p := range forward {
		q := backward[artist]
		if q == nil {
			t.Fatalf("reversed run missing artist %q", artist)
		}
		sortSongs(p.Songs)
		sortSongs(q.Songs)
		if !reflect.DeepEqual(p, q) {
			t.Errorf("%s: profiles differ across input orders:\n%+v\n%+v", artist, p, q)
		}
	}
}

func TestAggregateIdempotent(t *testing.T) {
	records := []song.Record{
		makeRecord("One", "A", intPtr(85), strPtr("pop"), "2019-03-01"),
		makeRecord("Two", "A, B", intPtr(40), strPtr("rock"), "2021-07-15"),
	}
	ag := NewAggregator(revenue.NewDefault())
	first := ag.Aggregate(records)
	second := ag.Aggregate(records)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated aggregation of the same input produced different profiles")
	}
}

func TestMergeAccumulatorsMatchesSinglePass(t *testing.T) {
	records := []song.Record{
		makeRecord("One", "A", intPtr(85), strPtr("pop"), "2019-03-01"),
		makeRecord("Two", "A, B", intPtr(40), strPtr("rock"), "2021-07-15"),
		makeRecord("Three", "B", intPtr(70), strPtr("rock"), "2020-01-01"),
		makeRecord("Four", "C", nil, nil, ""),
	}

	ag := NewAggregator(revenue.NewDefault())
	whole := ag.Aggregate(records)

	chunkA := ag.Accumulate(records[:2])
	chunkB := ag.Accumulate(records[2:])
	merged := Finalize(MergeAccumulators(make(map[string]*Accumulator), chunkA, chunkB))

	if !reflect.DeepEqual(whole, merged) {
		t.Errorf("merged chunk aggregation differs from single pass:\n%+v\n%+v", whole, merged)
	}
}

func TestRoundingOnlyAtFinalize(t *testing.T) {
	// Many thirds summed before rounding: 100/3 * 3 = 100 exactly only if
	// the division happens once, at the end.
	ag := NewAggregator(revenue.NewDefault())
	records := make([]song.Record, 3)
	for i := range records {
		r := makeRecord("S", "A", intPtr(40), nil, "")
		r.AudioFeatures["energy"] = floatPtr(100.0 / 3)
		records[i] = r
	}
	p := ag.Aggregate(records)["A"]
	if math.Abs(p.AvgEnergy-33.33) > 1e-9 {
		t.Errorf("avg_energy = %v, want 33.33", p.AvgEnergy)
	}
}

func TestRound2NonFinite(t *testing.T) {
	if got := round2(math.NaN()); got != 0 {
		t.Errorf("round2(NaN) = %v, want 0", got)
	}
	if got := round2(math.Inf(1)); got != 0 {
		t.Errorf("round2(+Inf) = %v, want 0", got)
	}
}

func sortSongs(songs []SongDetail) {
	sort.Slice(songs, func(i, j int) bool { return songs[i].Title < songs[j].Title })
}
