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
	"os"

	"github.com/spf13/cobra"

	"github.com/aleclerc/artist-tools/internal/dataset"
)

var dedupeCmd = &cobra.Command{
	Use:   "dedupe <in.csv> <out.csv>",
	Short: "Removes duplicate songs from a dataset",
	Long: `Copies a dataset CSV, dropping rows whose (artist, title) pair has
already been seen. Comparison ignores case and surrounding whitespace; the
first occurrence wins.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		kept, dropped, err := dataset.DedupeCSV(args[0], args[1])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("Kept %d songs, dropped %d duplicates\n", kept, dropped)
	},
}

func init() {
	rootCmd.AddCommand(dedupeCmd)
}
