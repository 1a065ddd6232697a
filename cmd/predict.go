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
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/aleclerc/artist-tools/internal/predict"
	"github.com/aleclerc/artist-tools/internal/store"
)

var predictCmd = &cobra.Command{
	Use:   "predict [artist...]",
	Short: "Predicts next-release prospects for artists",
	Long: `Scores each artist's next-release outlook from their cached profile:
hotness, predicted popularity and tier, hit probability, and a
recommendation. With no arguments, covers every artist with enough release
history, hottest first.`,
	Run: func(cmd *cobra.Command, args []string) {
		err := printPredictions(os.Stdout, viper.GetString("database"), args, time.Now())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating predictions: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(predictCmd)
}

func printPredictions(out io.Writer, dbPath string, artists []string, now time.Time) error {
	db, err := store.New(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := requireAnalysis(db); err != nil {
		return err
	}

	predictor := predict.New(now)
	var predictions []*predict.Prediction

	if len(artists) > 0 {
		for _, artist := range artists {
			p, err := db.GetProfile(artist)
			if err != nil {
				return err
			}
			prediction, err := predictor.Predict(artist, p)
			if errors.Is(err, predict.ErrInsufficientHistory) {
				fmt.Fprintf(os.Stderr, "Skipping %s: needs at least 2 dated songs\n", artist)
				continue
			}
			if err != nil {
				return fmt.Errorf("predicting for %q: %w", artist, err)
			}
			predictions = append(predictions, prediction)
		}
	} else {
		profiles, err := db.Profiles()
		if err != nil {
			return err
		}
		for artist, p := range profiles {
			prediction, err := predictor.Predict(artist, p)
			if errors.Is(err, predict.ErrInsufficientHistory) {
				continue
			}
			if err != nil {
				return fmt.Errorf("predicting for %q: %w", artist, err)
			}
			predictions = append(predictions, prediction)
		}
		sort.Slice(predictions, func(i, j int) bool {
			if predictions[i].HotnessScore != predictions[j].HotnessScore {
				return predictions[i].HotnessScore > predictions[j].HotnessScore
			}
			return predictions[i].Artist < predictions[j].Artist
		})
	}

	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(predictions); err != nil {
		return fmt.Errorf("encoding predictions: %w", err)
	}
	return encoder.Close()
}
