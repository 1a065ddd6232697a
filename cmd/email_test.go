package cmd

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateEmailContent(t *testing.T) {
	config := SendEmailConfig{
		DbPath: analyzedDb(t),
		TopN:   5,
	}

	subject, body, err := generateEmailContent(config)
	if err != nil {
		t.Fatalf("generateEmailContent: %v", err)
	}
	if !strings.Contains(subject, "Artist report") {
		t.Errorf("subject = %q", subject)
	}
	for _, want := range []string{"Dataset Summary", "Total artists", "Alpha"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

func TestGenerateEmailContentWithoutAnalysis(t *testing.T) {
	config := SendEmailConfig{DbPath: filepath.Join(t.TempDir(), "empty.db")}
	if _, _, err := generateEmailContent(config); err == nil {
		t.Fatal("generateEmailContent should fail before any analysis has run")
	}
}

func TestSendEmailDryRun(t *testing.T) {
	config := SendEmailConfig{
		DbPath: analyzedDb(t),
		From:   "sender@example.com",
		To:     []string{"someone@example.com"},
		TopN:   5,
		DryRun: true,
	}
	// Dry run must not need an API key.
	if err := sendEmail(config); err != nil {
		t.Fatalf("sendEmail dry run: %v", err)
	}
}

func TestSendEmailRequiresApiKey(t *testing.T) {
	config := SendEmailConfig{
		DbPath: analyzedDb(t),
		From:   "sender@example.com",
		To:     []string{"someone@example.com"},
		TopN:   5,
	}
	err := sendEmail(config)
	if err == nil {
		t.Fatal("sendEmail should fail without an API key")
	}
	if !strings.Contains(err.Error(), "sendgrid_api_key") {
		t.Errorf("err = %v, want it to name the missing key", err)
	}
}
