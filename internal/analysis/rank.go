package analysis

import "sort"

// TopBy returns up to n artist names ordered descending by the given
// metric, considering only artists with at least minSongs songs. Equal
// metric values order alphabetically so rankings are deterministic.
func TopBy(profiles map[string]*Profile, metric func(*Profile) float64, n, minSongs int) []string {
	names := make([]string, 0, len(profiles))
	for name, p := range profiles {
		if p.TotalSongs >= minSongs {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		mi, mj := metric(profiles[names[i]]), metric(profiles[names[j]])
		if mi != mj {
			return mi > mj
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}
