package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/aleclerc/artist-tools/internal/revenue"
	"github.com/aleclerc/artist-tools/internal/song"
)

// Aggregator rolls song records up into per-artist profiles using the
// given revenue estimator.
type Aggregator struct {
	estimator *revenue.Estimator
}

func NewAggregator(estimator *revenue.Estimator) *Aggregator {
	return &Aggregator{estimator: estimator}
}

// Accumulator holds the running per-artist totals built during a pass over
// the input. No rounding happens here; derived fields are only computed in
// Finalize, after every contributing song has been counted.
type Accumulator struct {
	totalSongs    int
	tierCounts    map[song.Tier]int
	totalRevenue  float64
	songs         []SongDetail
	genres        map[string]int
	explicitCount int
	firstRelease  *time.Time
	lastRelease   *time.Time
	featureSums   map[string]float64
	featureCounts map[string]int
}

func newAccumulator() *Accumulator {
	return &Accumulator{
		tierCounts:    make(map[song.Tier]int),
		genres:        make(map[string]int),
		featureSums:   make(map[string]float64),
		featureCounts: make(map[string]int),
	}
}

// add applies one song's stats to the accumulator. tier and rev are computed
// once per song by the caller so every credited artist receives identical
// values.
func (a *Accumulator) add(rec song.Record, tier song.Tier, rev float64) {
	a.totalSongs++
	a.tierCounts[tier]++
	a.totalRevenue += rev

	var rawDate *string
	if rec.RawReleaseDate != "" {
		d := rec.RawReleaseDate
		rawDate = &d
	}
	a.songs = append(a.songs, SongDetail{
		Title:       rec.Title,
		Popularity:  rec.Popularity,
		Tier:        tier,
		Revenue:     rev,
		ReleaseDate: rawDate,
	})

	if rec.Genre != nil {
		a.genres[*rec.Genre]++
	}
	if rec.Explicit {
		a.explicitCount++
	}
	if rec.ReleaseDate != nil {
		a.observeRelease(*rec.ReleaseDate)
	}
	for _, name := range song.FeatureNames {
		if v := rec.AudioFeatures[name]; v != nil {
			a.featureSums[name] += *v
			a.featureCounts[name]++
		}
	}
}

func (a *Accumulator) observeRelease(t time.Time) {
	if a.firstRelease == nil || t.Before(*a.firstRelease) {
		first := t
		a.firstRelease = &first
	}
	if a.lastRelease == nil || t.After(*a.lastRelease) {
		last := t
		a.lastRelease = &last
	}
}

// Merge folds other into a. Used to combine accumulators built over disjoint
// chunks of the input; must run before Finalize, since rates and averages
// are only valid once all contributing songs are counted.
func (a *Accumulator) Merge(other *Accumulator) {
	a.totalSongs += other.totalSongs
	for tier, n := range other.tierCounts {
		a.tierCounts[tier] += n
	}
	a.totalRevenue += other.totalRevenue
	a.songs = append(a.songs, other.songs...)
	for genre, n := range other.genres {
		a.genres[genre] += n
	}
	a.explicitCount += other.explicitCount
	if other.firstRelease != nil {
		a.observeRelease(*other.firstRelease)
	}
	if other.lastRelease != nil {
		a.observeRelease(*other.lastRelease)
	}
	for name, sum := range other.featureSums {
		a.featureSums[name] += sum
	}
	for name, n := range other.featureCounts {
		a.featureCounts[name] += n
	}
}

// MergeAccumulators combines per-chunk accumulator maps into dst.
func MergeAccumulators(dst map[string]*Accumulator, chunks ...map[string]*Accumulator) map[string]*Accumulator {
	for _, chunk := range chunks {
		for artist, acc := range chunk {
			if existing, ok := dst[artist]; ok {
				existing.Merge(acc)
			} else {
				dst[artist] = acc
			}
		}
	}
	return dst
}

// Accumulate runs a single pass over the input, fanning each song out to
// every credited artist. Accumulators are created lazily on first
// reference, so an artist with zero songs cannot occur. Songs with no
// parseable artist name contribute to nothing.
func (ag *Aggregator) Accumulate(songs []song.Record) map[string]*Accumulator {
	accs := make(map[string]*Accumulator)
	for _, rec := range songs {
		if len(rec.Artists) == 0 {
			continue
		}
		// Computed once per song, reused for every credited artist.
		tier := revenue.ClassifyTier(rec.Popularity)
		rev := ag.estimator.Estimate(rec.Popularity)

		for _, artist := range rec.Artists {
			acc, ok := accs[artist]
			if !ok {
				acc = newAccumulator()
				accs[artist] = acc
			}
			acc.add(rec, tier, rev)
		}
	}
	return accs
}

// Aggregate builds the full artist profile mapping from the input.
func (ag *Aggregator) Aggregate(songs []song.Record) map[string]*Profile {
	return Finalize(ag.Accumulate(songs))
}

// Finalize computes the derived fields for every accumulator and produces
// the output profiles. Monetary totals and rates are rounded to 2 decimals
// here, and only here, to avoid compounding rounding error.
func Finalize(accs map[string]*Accumulator) map[string]*Profile {
	profiles := make(map[string]*Profile, len(accs))
	for artist, acc := range accs {
		profiles[artist] = acc.finalize()
	}
	return profiles
}

func (a *Accumulator) finalize() *Profile {
	p := &Profile{
		TotalSongs: a.totalSongs,
		HitSongs:   a.tierCounts[song.TierHit],
		GoodSongs:  a.tierCounts[song.TierGood],
		MidSongs:   a.tierCounts[song.TierMid],
		BustSongs:  a.tierCounts[song.TierBust],

		EstimatedTotalRevenue: round2(a.totalRevenue),

		GenreDistribution: a.genres,
		Songs:             a.songs,
	}

	p.HitRate = rate(p.HitSongs, a.totalSongs)
	p.GoodRate = rate(p.GoodSongs, a.totalSongs)
	p.MidRate = rate(p.MidSongs, a.totalSongs)
	p.BustRate = rate(p.BustSongs, a.totalSongs)
	p.ExplicitRatio = rate(a.explicitCount, a.totalSongs)
	if a.totalSongs > 0 {
		p.AvgRevenuePerSong = round2(a.totalRevenue / float64(a.totalSongs))
	}

	p.PrimaryGenre = primaryGenre(a.genres)

	if a.firstRelease != nil && a.lastRelease != nil {
		first := a.firstRelease.Format("2006-01-02")
		last := a.lastRelease.Format("2006-01-02")
		p.FirstRelease = &first
		p.LastRelease = &last
		days := a.lastRelease.Sub(*a.firstRelease).Hours() / 24
		p.CareerSpanYears = round2(days / 365.25)
	}

	p.AvgEnergy = a.avgFeature("energy")
	p.AvgDanceability = a.avgFeature("danceability")
	p.AvgPositiveness = a.avgFeature("positiveness")
	p.AvgSpeechiness = a.avgFeature("speechiness")
	p.AvgLiveness = a.avgFeature("liveness")
	p.AvgAcousticness = a.avgFeature("acousticness")
	p.AvgInstrumentalness = a.avgFeature("instrumentalness")

	return p
}

func (a *Accumulator) avgFeature(name string) float64 {
	n := a.featureCounts[name]
	if n == 0 {
		return 0
	}
	return round2(a.featureSums[name] / float64(n))
}

// primaryGenre is the mode of the genre counts. Ties break to the
// lexicographically smallest genre so the result does not depend on input
// order.
func primaryGenre(genres map[string]int) *string {
	var best string
	bestCount := 0
	for genre, count := range genres {
		if count > bestCount || (count == bestCount && bestCount > 0 && genre < best) {
			best = genre
			bestCount = count
		}
	}
	if bestCount == 0 {
		return nil
	}
	return &best
}

// rate is count as a percentage of total, rounded to 2 decimals. Returns 0
// for an empty total rather than dividing by zero.
func rate(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round2(float64(count) / float64(total) * 100)
}

// round2 rounds to 2 decimals. Non-finite inputs round to 0 so the JSON
// encoder can never be handed a NaN or Infinity.
func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
