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
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aleclerc/artist-tools/internal/store"
)

var topCmd = &cobra.Command{
	Use:   "top [n]",
	Short: "Shows the top artists from the last analysis",
	Long:  `Ranks cached artists by a metric (revenue, hit-rate, hits, songs, or career).`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		n := 10
		if len(args) == 1 {
			parsed, err := strconv.Atoi(args[0])
			if err != nil || parsed < 1 {
				fmt.Printf("Invalid count %q\n", args[0])
				os.Exit(1)
			}
			n = parsed
		}

		err := printTop(os.Stdout, viper.GetString("database"), viper.GetString("metric"), n, viper.GetInt("top-min-songs"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topCmd)

	topCmd.Flags().StringP("metric", "m", "revenue",
		"Metric to rank by: "+strings.Join(store.RankMetrics(), ", "))
	viper.BindPFlag("metric", topCmd.Flags().Lookup("metric"))

	topCmd.Flags().Int("min-songs", 1, "Minimum song count to be ranked")
	viper.BindPFlag("top-min-songs", topCmd.Flags().Lookup("min-songs"))
}

func printTop(out io.Writer, dbPath, metric string, n, minSongs int) error {
	db, err := store.New(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := requireAnalysis(db); err != nil {
		return err
	}

	ranked, err := db.TopArtists(metric, n, minSongs)
	if err != nil {
		return err
	}

	listing := Listing{results: [][]string{{"#", "Artist", "Songs", "Hits", "Hit Rate", "Est. Revenue"}}}
	for i, r := range ranked {
		listing.results = append(listing.results, []string{
			fmt.Sprintf("%d", i+1), r.Name,
			fmt.Sprintf("%d", r.TotalSongs), fmt.Sprintf("%d", r.HitSongs),
			fmt.Sprintf("%.1f%%", r.HitRate), money(r.EstimatedTotalRevenue),
		})
	}

	dataset, analyzedAt, err := db.LastAnalyzed()
	if err != nil {
		return err
	}
	listing.summary = fmt.Sprintf("From %s, analyzed %s", dataset, analyzedAt.Format("2006-01-02 15:04"))

	fmt.Fprintf(out, "Top %d Artists by %s\n%s", n, metric, listing)
	return nil
}

// requireAnalysis errors when the cache has no stored run yet.
func requireAnalysis(db *store.Store) error {
	hasData, err := db.HasData()
	if err != nil {
		return err
	}
	if !hasData {
		return fmt.Errorf("No analysis found - run analyze first.")
	}
	return nil
}
