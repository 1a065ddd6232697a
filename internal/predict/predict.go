package predict

import (
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/aleclerc/artist-tools/internal/analysis"
	"github.com/aleclerc/artist-tools/internal/song"
)

// ErrInsufficientHistory is returned for artists with fewer than two dated
// songs: there is no trajectory to extrapolate from.
var ErrInsufficientHistory = errors.New("insufficient release history")

// Prediction is the heuristic next-release outlook for one artist.
type Prediction struct {
	Artist              string     `yaml:"artist" json:"artist"`
	HitProbability      float64    `yaml:"hit_probability" json:"hit_probability"`
	PredictedPopularity float64    `yaml:"predicted_popularity" json:"predicted_popularity"`
	PredictedTier       song.Tier  `yaml:"predicted_tier" json:"predicted_tier"`
	ConfidenceInterval  [2]float64 `yaml:"confidence_interval,flow" json:"confidence_interval"`
	HotnessScore        float64    `yaml:"hotness_score" json:"hotness_score"`
	CareerStage         string     `yaml:"career_stage" json:"career_stage"`
	Recommendation      string     `yaml:"recommendation" json:"recommendation"`
}

// Predictor scores artists' next-release prospects from their profiles.
// The reference time is injected so recency scoring is reproducible.
type Predictor struct {
	now time.Time
}

func New(now time.Time) *Predictor {
	return &Predictor{now: now}
}

// features are the intermediate values extracted from a profile's song
// history, mirroring the inputs of the success model.
type features struct {
	totalSongs        int
	careerYears       float64
	historicalHitRate float64
	recentHitRate     float64
	recentAvgPop      float64
	popularityTrend   float64
	releaseFrequency  float64
	daysSinceLast     float64
	hotness           float64
}

// Predict builds the outlook for one artist. The profile must contain at
// least two songs with parseable release dates.
func (p *Predictor) Predict(artist string, profile *analysis.Profile) (*Prediction, error) {
	f, err := p.extract(profile)
	if err != nil {
		return nil, err
	}

	factor := GenreFactor(profile.PrimaryGenre)
	predicted := clamp((f.recentAvgPop+f.popularityTrend/2)*factor, 0, 100)

	hitProb := clamp(0.5*f.recentHitRate+0.3*f.historicalHitRate+0.2*f.hotness/100, 0, 1)

	return &Prediction{
		Artist:              artist,
		HitProbability:      round2(hitProb * 100),
		PredictedPopularity: round1(predicted),
		PredictedTier:       tierFor(predicted),
		ConfidenceInterval: [2]float64{
			round1(clamp(predicted-1.96*popStdDev, 0, 100)),
			round1(clamp(predicted+1.96*popStdDev, 0, 100)),
		},
		HotnessScore:   round1(f.hotness),
		CareerStage:    CareerStage(f.careerYears),
		Recommendation: recommendation(hitProb, predicted, f),
	}, nil
}

// popStdDev approximates the spread of popularity outcomes, used for the
// 95% confidence interval.
const popStdDev = 10.0

type datedSong struct {
	detail analysis.SongDetail
	date   time.Time
}

func (p *Predictor) extract(profile *analysis.Profile) (*features, error) {
	var dated []datedSong
	for _, s := range profile.Songs {
		if s.ReleaseDate == nil {
			continue
		}
		if t := song.ParseDate(*s.ReleaseDate); t != nil {
			dated = append(dated, datedSong{detail: s, date: *t})
		}
	}
	if len(dated) < 2 {
		return nil, ErrInsufficientHistory
	}
	sort.SliceStable(dated, func(i, j int) bool { return dated[i].date.Before(dated[j].date) })

	f := &features{totalSongs: len(dated)}

	hits := 0
	for _, s := range dated {
		if s.detail.Tier == song.TierHit {
			hits++
		}
	}
	f.historicalHitRate = float64(hits) / float64(len(dated))

	recentStart := len(dated) - 5
	if recentStart < 0 {
		recentStart = 0
	}
	recent := dated[recentStart:]

	recentHits := 0
	for _, s := range recent {
		if s.detail.Tier == song.TierHit {
			recentHits++
		}
	}
	f.recentHitRate = float64(recentHits) / float64(len(recent))
	f.recentAvgPop = meanPopularity(recent)

	if len(dated) > 5 {
		f.popularityTrend = f.recentAvgPop - meanPopularity(dated[:recentStart])
	}

	first := dated[0].date
	last := dated[len(dated)-1].date
	f.careerYears = last.Sub(first).Hours() / 24 / 365.25
	f.releaseFrequency = float64(len(dated)) / math.Max(f.careerYears, 0.5)
	f.daysSinceLast = p.now.Sub(last).Hours() / 24

	f.hotness = hotness(f.recentAvgPop, f.daysSinceLast, f.recentHitRate)
	return f, nil
}

// meanPopularity averages the present popularity values; songs with a
// missing score are left out of the mean.
func meanPopularity(items []datedSong) float64 {
	sum, n := 0, 0
	for _, item := range items {
		if p := item.detail.Popularity; p != nil {
			sum += *p
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// hotness scores 0-100 from recent performance (40 points), release recency
// (30 points, decaying over a year), and recent hit rate (30 points).
func hotness(recentAvgPop, daysSinceLast, recentHitRate float64) float64 {
	performance := recentAvgPop / 100 * 40

	var recency float64
	switch {
	case daysSinceLast <= 30:
		recency = 30
	case daysSinceLast <= 90:
		recency = 25
	case daysSinceLast <= 180:
		recency = 15
	case daysSinceLast <= 365:
		recency = 5
	}

	success := recentHitRate * 30

	return math.Min(performance+recency+success, 100)
}

// genreFactors weight predicted popularity by how well a genre streams.
// Ordered so substring matching is deterministic.
var genreFactors = []struct {
	name   string
	factor float64
}{
	{"hip hop", 1.2},
	{"pop", 1.15},
	{"r&b", 1.1},
	{"latin", 1.1},
	{"rock", 1.0},
	{"country", 0.95},
	{"electronic", 0.95},
	{"indie", 0.9},
	{"jazz", 0.8},
	{"classical", 0.7},
}

// GenreFactor returns the popularity multiplier for a genre, matched by
// substring on the lowercased name. Unknown genres are neutral.
func GenreFactor(genre *string) float64 {
	if genre == nil {
		return 1.0
	}
	lower := strings.ToLower(*genre)
	for _, g := range genreFactors {
		if strings.Contains(lower, g.name) {
			return g.factor
		}
	}
	return 1.0
}

// CareerStage buckets an artist by years active.
func CareerStage(careerYears float64) string {
	switch {
	case careerYears <= 2:
		return "new"
	case careerYears <= 5:
		return "emerging"
	case careerYears <= 10:
		return "established"
	default:
		return "veteran"
	}
}

func tierFor(popularity float64) song.Tier {
	switch {
	case popularity >= 80:
		return song.TierHit
	case popularity >= 65:
		return song.TierGood
	case popularity >= 35:
		return song.TierMid
	default:
		return song.TierBust
	}
}

func recommendation(hitProb, predictedPop float64, f *features) string {
	switch {
	case hitProb > 0.5:
		return "Strong probability of hit! Consider major marketing push."
	case hitProb > 0.3:
		return "Good potential. Strategic promotion recommended."
	case predictedPop > 50:
		return "Moderate success expected. Test with smaller release."
	case f.popularityTrend > 5:
		return "Upward trend detected. Build momentum with consistent releases."
	case f.daysSinceLast > 180:
		return "Long gap since last release. Consider re-engagement strategy."
	default:
		return "Lower probability. Focus on artist development and fan engagement."
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
