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
	"regexp"

	"github.com/spf13/cobra"
)

var fixJsonCmd = &cobra.Command{
	Use:   "fixjson <file.json...>",
	Short: "Replaces literal NaN tokens with null in JSON files",
	Long: `Rewrites JSON files in place, replacing bare NaN values with null.
Useful for files produced by tools whose serializers emit NaN, which is not
valid JSON. Files written by analyze never need this.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, path := range args {
			count, err := fixNaNFile(path)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			fmt.Printf("%s: fixed %d NaN values\n", path, count)
		}
	},
}

func init() {
	rootCmd.AddCommand(fixJsonCmd)
}

var nanPattern = regexp.MustCompile(`:\s*NaN\s*([,\n}\]])`)

// fixNaN replaces NaN value tokens with null, returning the rewritten
// content and the number of replacements.
func fixNaN(content []byte) ([]byte, int) {
	count := len(nanPattern.FindAll(content, -1))
	return nanPattern.ReplaceAll(content, []byte(": null$1")), count
}

func fixNaNFile(path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	fixed, count := fixNaN(content)
	if count == 0 {
		return 0, nil
	}

	if err := os.WriteFile(path, fixed, 0644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	return count, nil
}
