package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codecouleurs/internal/canvas"
	"codecouleurs/internal/layout"

	"github.com/google/go-cmp/cmp"
)

func boolPtr(b bool) *bool {
	return &b
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRepeatHeadEnabled(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		expected bool
	}{
		{"nil defaults to true", Config{}, true},
		{"explicit true", Config{PDF: PDFConfig{RepeatHead: boolPtr(true)}}, true},
		{"explicit false", Config{PDF: PDFConfig{RepeatHead: boolPtr(false)}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.config.RepeatHeadEnabled()
			if got != tt.expected {
				t.Errorf("RepeatHeadEnabled() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseFileMode(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected os.FileMode
		wantErr  bool
	}{
		{"empty", "", 0, false},
		{"with leading zero", "0664", 0o664, false},
		{"without leading zero", "640", 0o640, false},
		{"not octal", "0985", 0, true},
		{"too large", "7777", 0, true},
		{"garbage", "rw-r--r--", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFileMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFileMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("parseFileMode(%q) = %o, want %o", tt.in, got, tt.expected)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		dir := t.TempDir()
		configFile := writeFile(t, dir, "config.yaml", `output:
  invoice_dir: /srv/factures
  proposal_dir: /srv/propales
  umask: "0664"
page:
  format: Letter
  margins: {left: 12, top: 8, right: 12, bottom: 9}
pdf:
  font_size: 9
  freetext_height: 0
  repeat_head: false
  show_details: true
  invoice_free_text: "Facture __REF__"
payment:
  cheque:
    enabled: true
  bank:
    iban: FR76 1234
language: en
currency: USD
smtp:
  host: smtp.example.com
  port: 587
email:
  from: compta@example.com
  to: client@example.com
`)

		cfg, err := loadConfig(configFile)
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Output.InvoiceDir != "/srv/factures" {
			t.Errorf("invoice dir = %q, want /srv/factures", cfg.Output.InvoiceDir)
		}
		if cfg.fileMode != 0o664 {
			t.Errorf("file mode = %o, want 664", cfg.fileMode)
		}
		if cfg.Language != "en" || cfg.Currency != "USD" {
			t.Errorf("locale = %s/%s, want en/USD", cfg.Language, cfg.Currency)
		}
		if cfg.RepeatHeadEnabled() {
			t.Error("expected RepeatHeadEnabled() to be false")
		}
		if cfg.SMTP.Port != 587 {
			t.Errorf("smtp port = %d, want 587", cfg.SMTP.Port)
		}

		wantPage := canvas.Options{Format: "Letter", Margins: canvas.Margins{Left: 12, Top: 8, Right: 12, Bottom: 9}}
		if diff := cmp.Diff(wantPage, cfg.pageOptions()); diff != "" {
			t.Errorf("pageOptions() mismatch (-want +got):\n%s", diff)
		}

		wantOpts := layout.DefaultOptions()
		wantOpts.FontSize = 9
		wantOpts.FreeTextHeight = 0
		wantOpts.RepeatHead = false
		wantOpts.ShowDetails = true
		wantOpts.InvoiceFreeText = "Facture __REF__"
		wantOpts.Cheque = layout.Cheque{Enabled: true}
		wantOpts.Bank = layout.BankAccount{IBAN: "FR76 1234"}
		if diff := cmp.Diff(wantOpts, cfg.layoutOptions()); diff != "" {
			t.Errorf("layoutOptions() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		dir := t.TempDir()
		configFile := writeFile(t, dir, "config.yaml", "output:\n  invoice_dir: out\n")

		cfg, err := loadConfig(configFile)
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Language != "fr" || cfg.Currency != "EUR" {
			t.Errorf("locale = %s/%s, want fr/EUR", cfg.Language, cfg.Currency)
		}
		if cfg.Page.Format != "A4" {
			t.Errorf("format = %q, want A4", cfg.Page.Format)
		}
		if diff := cmp.Diff(&canvas.Margins{Left: 10, Top: 10, Right: 10, Bottom: 10}, cfg.Page.Margins); diff != "" {
			t.Errorf("margins mismatch (-want +got):\n%s", diff)
		}
		if !cfg.RepeatHeadEnabled() {
			t.Error("expected RepeatHeadEnabled() to be true by default")
		}
		if cfg.fileMode != 0 {
			t.Errorf("file mode = %o, want 0", cfg.fileMode)
		}
		if diff := cmp.Diff(layout.DefaultOptions(), cfg.layoutOptions()); diff != "" {
			t.Errorf("layoutOptions() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadConfig("/nonexistent/config.yaml")
		if err == nil {
			t.Error("loadConfig() expected error for missing file")
		}
	})

	t.Run("invalid YAML", func(t *testing.T) {
		dir := t.TempDir()
		configFile := writeFile(t, dir, "config.yaml", "{{invalid yaml")

		_, err := loadConfig(configFile)
		if err == nil {
			t.Error("loadConfig() expected error for invalid YAML")
		}
	})

	t.Run("no output directory", func(t *testing.T) {
		dir := t.TempDir()
		configFile := writeFile(t, dir, "config.yaml", "language: de\n")

		_, err := loadConfig(configFile)
		if !errors.Is(err, layout.ErrOutputDirNotConfigured) {
			t.Errorf("loadConfig() error = %v, want ErrOutputDirNotConfigured", err)
		}
	})

	t.Run("invalid umask", func(t *testing.T) {
		dir := t.TempDir()
		configFile := writeFile(t, dir, "config.yaml", "output:\n  invoice_dir: out\n  umask: \"0999\"\n")

		_, err := loadConfig(configFile)
		if err == nil {
			t.Error("loadConfig() expected error for invalid umask")
		}
	})
}

const testDocument = `kind: invoice
ref: FA2602-0042
date: 2026-02-13
issuer:
  name: Code Couleurs
  country_code: FR
customer:
  name: Acme Corp
lines:
  - description: "Web design\nMockups and two revisions"
    qty: 2
    unit_price: "450.00"
    vat_rate: 20
    total_ht: 900
    total_vat: 180
    total_ttc: 1080
total_ht: "900.00"
total_vat: "180.00"
total_ttc: "1080.00"
`

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCLI(t *testing.T) {
	t.Run("version", func(t *testing.T) {
		out, _, err := runCLI(t, "--version")
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if out != "codecouleurs v"+version+"\n" {
			t.Errorf("version output = %q", out)
		}
	})

	t.Run("invoice", func(t *testing.T) {
		dir := t.TempDir()
		outDir := filepath.Join(dir, "factures")
		configFile := writeFile(t, dir, "config.yaml", "output:\n  invoice_dir: "+outDir+"\n  umask: \"0640\"\nlog:\n  level: warn\n")
		docFile := writeFile(t, dir, "invoice.yaml", testDocument)

		out, _, err := runCLI(t, "invoice", docFile, "--config", configFile, "--lang", "en")
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}

		want := filepath.Join(outDir, "FA2602-0042", "FA2602-0042.pdf")
		if strings.TrimSpace(out) != want {
			t.Errorf("printed path = %q, want %q", out, want)
		}
		data, err := os.ReadFile(want)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		if len(data) < 4 || string(data[:4]) != "%PDF" {
			t.Error("output does not start with PDF magic bytes")
		}
		info, err := os.Stat(want)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0o640 {
			t.Errorf("file mode = %v, want 0640", info.Mode().Perm())
		}
	})

	t.Run("kind mismatch", func(t *testing.T) {
		dir := t.TempDir()
		configFile := writeFile(t, dir, "config.yaml", "output:\n  proposal_dir: "+dir+"\n")
		docFile := writeFile(t, dir, "invoice.yaml", testDocument)

		if _, _, err := runCLI(t, "proposal", docFile, "--config", configFile); err == nil {
			t.Error("Execute() expected error for an invoice rendered as proposal")
		}
	})

	t.Run("output directory of the kind not configured", func(t *testing.T) {
		dir := t.TempDir()
		configFile := writeFile(t, dir, "config.yaml", "output:\n  proposal_dir: "+dir+"\n")
		docFile := writeFile(t, dir, "invoice.yaml", testDocument)

		_, _, err := runCLI(t, "invoice", docFile, "--config", configFile)
		if !errors.Is(err, layout.ErrOutputDirNotConfigured) {
			t.Errorf("Execute() error = %v, want ErrOutputDirNotConfigured", err)
		}
	})

	t.Run("no output directory at all", func(t *testing.T) {
		dir := t.TempDir()
		configFile := writeFile(t, dir, "config.yaml", "language: fr\n")
		docFile := writeFile(t, dir, "invoice.yaml", testDocument)

		_, _, err := runCLI(t, "invoice", docFile, "--config", configFile)
		if !errors.Is(err, layout.ErrOutputDirNotConfigured) {
			t.Errorf("Execute() error = %v, want ErrOutputDirNotConfigured", err)
		}
	})

	t.Run("mail without smtp", func(t *testing.T) {
		dir := t.TempDir()
		configFile := writeFile(t, dir, "config.yaml", "output:\n  invoice_dir: "+dir+"\n")
		docFile := writeFile(t, dir, "invoice.yaml", testDocument)

		out, _, err := runCLI(t, "invoice", docFile, "--config", configFile, "--mail")
		if err == nil {
			t.Fatal("Execute() expected error without smtp configuration")
		}
		if strings.TrimSpace(out) == "" {
			t.Error("written path should still be printed")
		}
	})

	t.Run("missing argument", func(t *testing.T) {
		if _, _, err := runCLI(t, "invoice"); err == nil {
			t.Error("Execute() expected error without document argument")
		}
	})
}
