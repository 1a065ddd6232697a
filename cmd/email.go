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
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/aleclerc/artist-tools/internal/analysis"
	"github.com/aleclerc/artist-tools/internal/store"
)

type SendEmailConfig struct {
	DbPath         string
	From           string
	To             []string
	TopN           int
	DryRun         bool
	SendgridApiKey string
}

var emailCmd = &cobra.Command{
	Use:   "email <address...>",
	Short: "Emails a summary of the last analysis",
	Long: `Emails the dataset summary and top-artist rankings from the cached
analysis to one or more recipients.`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("from") == "" {
			return fmt.Errorf("required flag(s) \"from\" not set")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		config := SendEmailConfig{
			DbPath:         viper.GetString("database"),
			From:           viper.GetString("from"),
			To:             args,
			TopN:           viper.GetInt("email-top"),
			DryRun:         viper.GetBool("dryRun"),
			SendgridApiKey: viper.GetString("sendgrid_api_key"),
		}
		if err := sendEmail(config); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(emailCmd)

	var dryRun bool
	emailCmd.Flags().BoolVarP(&dryRun, "dry_run", "n", false, "When true, just print instead of emailing")
	viper.BindPFlag("dryRun", emailCmd.Flags().Lookup("dry_run"))

	emailCmd.Flags().Int("top", 10, "Number of artists in each ranking")
	viper.BindPFlag("email-top", emailCmd.Flags().Lookup("top"))
}

func sendEmail(config SendEmailConfig) error {
	subject, body, err := generateEmailContent(config)
	if err != nil {
		return err
	}

	if config.DryRun {
		fmt.Printf("Would have sent email: \nsubject: %s\n%s\n", subject, body)
		return nil
	}

	if config.SendgridApiKey == "" {
		return fmt.Errorf("sendgrid_api_key must be set in order to send emails")
	}
	client := sendgrid.NewSendClient(config.SendgridApiKey)
	from := mail.NewEmail("artist-tools", config.From)

	// SendGrid throttles bursts, so space out the sends.
	limiter := rate.NewLimiter(rate.Every(1*time.Second), 1)
	for _, address := range config.To {
		if err := limiter.Wait(context.Background()); err != nil {
			return err
		}

		to := mail.NewEmail(address, address)
		message := mail.NewSingleEmail(from, subject, to, body, "<pre>"+body+"</pre>")
		err := retry.Do(
			func() error {
				response, err := client.Send(message)
				if err != nil {
					return err
				}
				if response.StatusCode >= 400 {
					return fmt.Errorf("sendgrid returned %d: %s", response.StatusCode, response.Body)
				}
				return nil
			},
			retry.Attempts(3),
			retry.Delay(5*time.Second),
		)
		if err != nil {
			return fmt.Errorf("sending to %s: %w", address, err)
		}
		fmt.Printf("Sent report to %s\n", address)
	}
	return nil
}

func generateEmailContent(config SendEmailConfig) (subject string, body string, err error) {
	db, err := store.New(config.DbPath)
	if err != nil {
		return "", "", err
	}
	defer db.Close()

	if err := requireAnalysis(db); err != nil {
		return "", "", err
	}

	dataset, analyzedAt, err := db.LastAnalyzed()
	if err != nil {
		return "", "", err
	}

	profiles, err := db.Profiles()
	if err != nil {
		return "", "", err
	}
	summary := analysis.Summarize(profiles)

	out := new(strings.Builder)
	fmt.Fprintf(out, "Artist analysis of %s (run %s)\n\n", dataset, analyzedAt.Format("2006-01-02"))
	printSummary(out, summary)
	printTopArtists(out, profiles, config.TopN, 5)

	subject = fmt.Sprintf("Artist report for %s", analyzedAt.Format("2006-01-02"))
	return subject, out.String(), nil
}
