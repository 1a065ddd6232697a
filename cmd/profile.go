/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aleclerc/artist-tools/internal/analysis"
	"github.com/aleclerc/artist-tools/internal/song"
	"github.com/aleclerc/artist-tools/internal/store"
)

var profileCmd = &cobra.Command{
	Use:   "profile <artist>",
	Short: "Shows the full cached profile for one artist",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := printProfile(os.Stdout, viper.GetString("database"), args[0], viper.GetInt("profile-songs"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)

	profileCmd.Flags().Int("songs", 5, "Number of top songs to show")
	viper.BindPFlag("profile-songs", profileCmd.Flags().Lookup("songs"))
}

func printProfile(out io.Writer, dbPath, artist string, numSongs int) error {
	db, err := store.New(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := requireAnalysis(db); err != nil {
		return err
	}

	p, err := db.GetProfile(artist)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Artist Profile: %s\n\n", artist)

	overview := Listing{results: [][]string{
		{"Metric", "Value"},
		{"Total songs", fmt.Sprintf("%d", p.TotalSongs)},
		{"Career span", fmt.Sprintf("%.2f years (%s to %s)", p.CareerSpanYears, orNone(p.FirstRelease), orNone(p.LastRelease))},
		{"Primary genre", orNone(p.PrimaryGenre)},
		{"Explicit content", fmt.Sprintf("%.1f%%", p.ExplicitRatio)},
		{"Total estimated revenue", money(p.EstimatedTotalRevenue)},
		{"Avg revenue per song", money(p.AvgRevenuePerSong)},
	}}
	fmt.Fprintf(out, "Overview\n%s\n", overview)

	tiers := Listing{results: [][]string{
		{"Tier", "Songs", "Rate"},
		{"Hit (80-100)", fmt.Sprintf("%d", p.HitSongs), fmt.Sprintf("%.1f%%", p.HitRate)},
		{"Good (65-79)", fmt.Sprintf("%d", p.GoodSongs), fmt.Sprintf("%.1f%%", p.GoodRate)},
		{"Mid (35-64)", fmt.Sprintf("%d", p.MidSongs), fmt.Sprintf("%.1f%%", p.MidRate)},
		{"Bust (0-34)", fmt.Sprintf("%d", p.BustSongs), fmt.Sprintf("%.1f%%", p.BustRate)},
	}}
	fmt.Fprintf(out, "Song Breakdown\n%s\n", tiers)

	audio := Listing{results: [][]string{{"Feature", "Average"}}}
	for _, name := range song.FeatureNames {
		audio.results = append(audio.results, []string{name, fmt.Sprintf("%.1f", p.AvgFeature(name))})
	}
	fmt.Fprintf(out, "Audio Profile\n%s\n", audio)

	if len(p.GenreDistribution) > 1 {
		printGenres(out, p.GenreDistribution)
	}

	printTopSongs(out, p.Songs, numSongs)
	return nil
}

func printGenres(out io.Writer, distribution map[string]int) {
	type genreCount struct {
		genre string
		count int
	}
	counts := make([]genreCount, 0, len(distribution))
	for genre, count := range distribution {
		counts = append(counts, genreCount{genre, count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].genre < counts[j].genre
	})

	listing := Listing{results: [][]string{{"Genre", "Songs"}}}
	for _, gc := range counts {
		listing.results = append(listing.results, []string{gc.genre, fmt.Sprintf("%d", gc.count)})
	}
	fmt.Fprintf(out, "Genre Distribution\n%s\n", listing)
}

func printTopSongs(out io.Writer, songs []analysis.SongDetail, n int) {
	sorted := make([]analysis.SongDetail, len(songs))
	copy(sorted, songs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Revenue > sorted[j].Revenue })
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	listing := Listing{results: [][]string{{"Title", "Popularity", "Tier", "Est. Revenue", "Released"}}}
	for _, s := range sorted {
		popularity := "-"
		if s.Popularity != nil {
			popularity = fmt.Sprintf("%d", *s.Popularity)
		}
		listing.results = append(listing.results, []string{
			s.Title, popularity, string(s.Tier), money(s.Revenue), orNone(s.ReleaseDate),
		})
	}
	fmt.Fprintf(out, "Top Songs by Estimated Revenue\n%s", listing)
}

func orNone(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
