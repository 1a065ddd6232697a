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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aleclerc/artist-tools/internal/analysis"
	"github.com/aleclerc/artist-tools/internal/dataset"
	"github.com/aleclerc/artist-tools/internal/revenue"
	"github.com/aleclerc/artist-tools/internal/song"
	"github.com/aleclerc/artist-tools/internal/store"
)

type AnalyzeConfig struct {
	DatasetPath string
	OutputPath  string
	DbPath      string
	Dedupe      bool
	TopN        int
	MinSongs    int
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <dataset.csv>",
	Short: "Analyzes a song dataset into per-artist statistics",
	Long: `Rolls the songs in a CSV dataset up into one profile per artist, with
revenue estimates, tier counts, and averaged audio features. Writes the full
results to a JSON file and refreshes the local profile cache.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := AnalyzeConfig{
			DatasetPath: args[0],
			OutputPath:  viper.GetString("output"),
			DbPath:      viper.GetString("database"),
			Dedupe:      viper.GetBool("dedupe"),
			TopN:        viper.GetInt("top"),
			MinSongs:    viper.GetInt("min-songs"),
		}
		if err := runAnalyze(os.Stdout, config); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("output", "o", "artist_analysis.json", "Path for the JSON results")
	viper.BindPFlag("output", analyzeCmd.Flags().Lookup("output"))

	analyzeCmd.Flags().Bool("dedupe", false, "Drop duplicate (artist, title) rows before analyzing")
	viper.BindPFlag("dedupe", analyzeCmd.Flags().Lookup("dedupe"))

	analyzeCmd.Flags().Int("top", 10, "Number of artists to show in each printed ranking")
	viper.BindPFlag("top", analyzeCmd.Flags().Lookup("top"))

	analyzeCmd.Flags().Int("min-songs", 5, "Minimum song count for the hit rate ranking")
	viper.BindPFlag("min-songs", analyzeCmd.Flags().Lookup("min-songs"))
}

func runAnalyze(out io.Writer, config AnalyzeConfig) error {
	records, err := dataset.Load(config.DatasetPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Loaded %d songs\n", len(records))

	if config.Dedupe {
		before := len(records)
		records = dataset.Dedupe(records)
		if dropped := before - len(records); dropped > 0 {
			fmt.Fprintf(out, "Dropped %d duplicate songs\n", dropped)
		}
	}

	aggregator := analysis.NewAggregator(revenue.NewDefault())
	profiles := aggregator.Aggregate(records)
	fmt.Fprintf(out, "Analyzed %d unique artists\n\n", len(profiles))

	summary := analysis.Summarize(profiles)

	printTopArtists(out, profiles, config.TopN, config.MinSongs)
	printSummary(out, summary)

	if config.OutputPath != "" {
		if err := writeResults(config.OutputPath, profiles, summary); err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved %d artists to %s\n", len(profiles), config.OutputPath)
	}

	if config.DbPath != "" {
		if err := saveToCache(config, records, profiles); err != nil {
			return err
		}
	}

	return nil
}

func printTopArtists(out io.Writer, profiles map[string]*analysis.Profile, n, minSongs int) {
	byRevenue := Listing{results: [][]string{{"Artist", "Est. Revenue", "Songs", "Hit Rate"}}}
	for _, name := range analysis.TopBy(profiles, func(p *analysis.Profile) float64 { return p.EstimatedTotalRevenue }, n, 1) {
		p := profiles[name]
		byRevenue.results = append(byRevenue.results, []string{
			name, money(p.EstimatedTotalRevenue),
			fmt.Sprintf("%d", p.TotalSongs), fmt.Sprintf("%.1f%%", p.HitRate),
		})
	}
	fmt.Fprintf(out, "Top %d Artists by Total Revenue\n%s\n", n, byRevenue)

	byHitRate := Listing{results: [][]string{{"Artist", "Hit Rate", "Hits", "Songs"}}}
	for _, name := range analysis.TopBy(profiles, func(p *analysis.Profile) float64 { return p.HitRate }, n, minSongs) {
		p := profiles[name]
		byHitRate.results = append(byHitRate.results, []string{
			name, fmt.Sprintf("%.1f%%", p.HitRate),
			fmt.Sprintf("%d", p.HitSongs), fmt.Sprintf("%d", p.TotalSongs),
		})
	}
	fmt.Fprintf(out, "Top %d Artists by Hit Rate (minimum %d songs)\n%s\n", n, minSongs, byHitRate)

	prolific := Listing{results: [][]string{{"Artist", "Songs", "Hits", "Avg Revenue/Song"}}}
	for _, name := range analysis.TopBy(profiles, func(p *analysis.Profile) float64 { return float64(p.TotalSongs) }, n, 1) {
		p := profiles[name]
		prolific.results = append(prolific.results, []string{
			name, fmt.Sprintf("%d", p.TotalSongs),
			fmt.Sprintf("%d", p.HitSongs), money(p.AvgRevenuePerSong),
		})
	}
	fmt.Fprintf(out, "Top %d Most Prolific Artists\n%s\n", n, prolific)
}

func printSummary(out io.Writer, summary analysis.Summary) {
	listing := Listing{results: [][]string{
		{"Metric", "Value"},
		{"Total artists", fmt.Sprintf("%d", summary.TotalArtists)},
		{"Total songs", fmt.Sprintf("%d", summary.TotalSongs)},
		{"Total estimated revenue", money(summary.TotalEstimatedRevenue)},
		{"Avg songs per artist", fmt.Sprintf("%.2f", summary.AvgSongsPerArtist)},
		{"Avg revenue per artist", money(summary.AvgRevenuePerArtist)},
		{"Avg hit rate", fmt.Sprintf("%.2f%%", summary.AvgHitRate)},
		{"Median hit rate", fmt.Sprintf("%.2f%%", summary.MedianHitRate)},
	}}
	fmt.Fprintf(out, "Dataset Summary\n%s\n", listing)
}

func writeResults(path string, profiles map[string]*analysis.Profile, summary analysis.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	result := analysis.Result{Summary: summary, Artists: profiles}
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return nil
}

func saveToCache(config AnalyzeConfig, records []song.Record, profiles map[string]*analysis.Profile) error {
	db, err := store.New(config.DbPath)
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer db.Close()

	if err := db.SaveAnalysis(config.DatasetPath, len(records), profiles, time.Now()); err != nil {
		return fmt.Errorf("saving to cache: %w", err)
	}
	return nil
}
