package analysis

// Summarize folds the profile mapping into dataset-wide totals. It reads
// the profiles' already-rounded output fields and never mutates them.
func Summarize(profiles map[string]*Profile) Summary {
	s := Summary{TotalArtists: len(profiles)}

	hitRates := make([]float64, 0, len(profiles))
	var totalHitRate float64
	for _, p := range profiles {
		s.TotalSongs += p.TotalSongs
		s.TotalEstimatedRevenue += p.EstimatedTotalRevenue
		hitRates = append(hitRates, p.HitRate)
		totalHitRate += p.HitRate
	}

	s.TotalEstimatedRevenue = round2(s.TotalEstimatedRevenue)
	if s.TotalArtists > 0 {
		s.AvgSongsPerArtist = round2(float64(s.TotalSongs) / float64(s.TotalArtists))
		s.AvgRevenuePerArtist = round2(s.TotalEstimatedRevenue / float64(s.TotalArtists))
		s.AvgHitRate = round2(totalHitRate / float64(len(hitRates)))
		s.MedianHitRate = round2(median(hitRates))
	}
	return s
}
