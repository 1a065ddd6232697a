package revenue

import (
	"fmt"
	"sort"

	"github.com/aleclerc/artist-tools/internal/song"
)

// Benchmarks maps a popularity decile (0, 10, ..., 100) to an estimated
// total dollar revenue for a song at that score. The values are calibration
// anchors for interpolation, not derived from the dataset.
type Benchmarks map[int]float64

// DefaultBenchmarks returns the calibration table, based on reference songs
// at each decile (streaming + sales + other revenue).
func DefaultBenchmarks() Benchmarks {
	return Benchmarks{
		0:   500,
		10:  5000,
		20:  12000,
		30:  30000,
		40:  75000,
		50:  150000,
		60:  350000,
		70:  800000,
		80:  2000000,
		90:  15000000,
		100: 30000000,
	}
}

// Estimator converts popularity scores into revenue estimates by
// piecewise-linear interpolation over its benchmark table.
type Estimator struct {
	benchmarks Benchmarks
}

// New creates an Estimator from the given benchmark table. The table must
// have an anchor at every multiple of 10 from 0 to 100, monotonically
// non-decreasing.
func New(benchmarks Benchmarks) (*Estimator, error) {
	anchors := make([]int, 0, len(benchmarks))
	for p := range benchmarks {
		anchors = append(anchors, p)
	}
	sort.Ints(anchors)

	if len(anchors) != 11 {
		return nil, fmt.Errorf("benchmarks: want 11 anchors, got %d", len(anchors))
	}
	prev := -1.0
	for i, p := range anchors {
		if p != i*10 {
			return nil, fmt.Errorf("benchmarks: missing anchor at popularity %d", i*10)
		}
		if benchmarks[p] < prev {
			return nil, fmt.Errorf("benchmarks: value at %d decreases", p)
		}
		prev = benchmarks[p]
	}

	// Copy so later mutation of the caller's map can't change estimates.
	table := make(Benchmarks, len(benchmarks))
	for p, v := range benchmarks {
		table[p] = v
	}
	return &Estimator{benchmarks: table}, nil
}

// NewDefault creates an Estimator over DefaultBenchmarks.
func NewDefault() *Estimator {
	e, err := New(DefaultBenchmarks())
	if err != nil {
		panic(err)
	}
	return e
}

// Estimate returns the estimated revenue for a song with the given
// popularity. A missing popularity estimates to 0. Results are exact at
// benchmark anchors and linearly interpolated between them.
func (e *Estimator) Estimate(popularity *int) float64 {
	if popularity == nil {
		return 0
	}

	p := *popularity
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}

	lower := (p / 10) * 10
	upper := lower + 10
	if upper > 100 {
		upper = 100
	}

	if lower == upper {
		return e.benchmarks[lower]
	}

	fraction := float64(p-lower) / 10
	return e.benchmarks[lower] + (e.benchmarks[upper]-e.benchmarks[lower])*fraction
}

// tierRange is an inclusive popularity range. Ranges are checked in order
// and together partition 0-100 exactly.
type tierRange struct {
	tier     song.Tier
	min, max int
}

var tierRanges = []tierRange{
	{song.TierHit, 80, 100},
	{song.TierGood, 65, 79},
	{song.TierMid, 35, 64},
	{song.TierBust, 0, 34},
}

// ClassifyTier buckets a popularity score into a Tier. A missing popularity
// classifies as unknown.
func ClassifyTier(popularity *int) song.Tier {
	if popularity == nil {
		return song.TierUnknown
	}
	for _, r := range tierRanges {
		if *popularity >= r.min && *popularity <= r.max {
			return r.tier
		}
	}
	return song.TierUnknown
}
