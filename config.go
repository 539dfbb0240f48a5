package main

import (
	"fmt"
	"os"
	"strconv"

	"codecouleurs/internal/canvas"
	"codecouleurs/internal/layout"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration
// ---------------------------------------------------------------------------

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type EmailConfig struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	Cc   string `yaml:"cc"`
	Body string `yaml:"body"`
}

// OutputConfig locates the written documents.
type OutputConfig struct {
	InvoiceDir  string `yaml:"invoice_dir"`
	ProposalDir string `yaml:"proposal_dir"`
	// Umask is the octal permission applied to written files, e.g. "0664".
	Umask string `yaml:"umask"`
}

// PageConfig selects the paper.
type PageConfig struct {
	Format  string          `yaml:"format"`
	Width   float64         `yaml:"width"`
	Height  float64         `yaml:"height"`
	Margins *canvas.Margins `yaml:"margins"`
}

// PDFConfig tunes the templates.
type PDFConfig struct {
	FontDir        string   `yaml:"font_dir"`
	LogoDir        string   `yaml:"logo_dir"`
	FontSize       float64  `yaml:"font_size"`
	NoCompression  bool     `yaml:"no_compression"`
	FreeTextHeight *float64 `yaml:"freetext_height"`
	AutoWrap       bool     `yaml:"autowrap"`
	RepeatHead     *bool    `yaml:"repeat_head"`

	DashBetweenLines      bool   `yaml:"dash_between_lines"`
	InvertSenderRecipient bool   `yaml:"invert_sender_recipient"`
	ShowDetails           bool   `yaml:"show_details"`
	DraftWatermark        string `yaml:"draft_watermark"`

	WithoutVAT         bool `yaml:"without_vat"`
	WithoutVATIfNull   bool `yaml:"without_vat_if_null"`
	LocalTax1          bool `yaml:"localtax1"`
	LocalTax2          bool `yaml:"localtax2"`
	PositiveCreditNote bool `yaml:"positive_credit_note"`

	HideChequeAddress       bool `yaml:"hide_cheque_address"`
	HidePaymentTerms        bool `yaml:"hide_payment_terms"`
	UseCompanyNameOfContact bool `yaml:"use_company_name_of_contact"`

	InvoiceFreeText  string `yaml:"invoice_free_text"`
	ProposalFreeText string `yaml:"proposal_free_text"`
}

// PaymentConfig holds the payment means printed on invoices.
type PaymentConfig struct {
	Cheque layout.Cheque      `yaml:"cheque"`
	Bank   layout.BankAccount `yaml:"bank"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
	// File enables a rotated JSON log file next to the console output.
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"` // megabytes
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"` // days
	Compress   bool   `yaml:"compress"`
}

type Config struct {
	Output   OutputConfig  `yaml:"output"`
	Page     PageConfig    `yaml:"page"`
	PDF      PDFConfig     `yaml:"pdf"`
	Payment  PaymentConfig `yaml:"payment"`
	Language string        `yaml:"language"`
	Currency string        `yaml:"currency"`
	SMTP     SMTPConfig    `yaml:"smtp"`
	Email    EmailConfig   `yaml:"email"`
	Log      LogConfig     `yaml:"log"`

	fileMode os.FileMode
}

// RepeatHeadEnabled returns whether the page header is repeated on every
// page (default: true).
func (c *Config) RepeatHeadEnabled() bool {
	if c.PDF.RepeatHead == nil {
		return true
	}
	return *c.PDF.RepeatHead
}

// loadConfig reads and parses the YAML configuration file.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Output.InvoiceDir == "" && cfg.Output.ProposalDir == "" {
		return nil, fmt.Errorf("%w: set output.invoice_dir or output.proposal_dir", layout.ErrOutputDirNotConfigured)
	}

	cfg.fileMode, err = parseFileMode(cfg.Output.Umask)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Language == "" {
		c.Language = "fr"
	}
	if c.Currency == "" {
		c.Currency = "EUR"
	}
	if c.Page.Format == "" {
		c.Page.Format = "A4"
	}
	if c.Page.Margins == nil {
		c.Page.Margins = &canvas.Margins{Left: 10, Top: 10, Right: 10, Bottom: 10}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Email.Body == "" {
		c.Email.Body = "Document ci-joint.<br>"
	}
}

// parseFileMode reads an octal permission. An empty string leaves the mode
// of written files untouched.
func parseFileMode(s string) (os.FileMode, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil || v > 0o777 {
		return 0, fmt.Errorf("invalid umask %q: want an octal permission such as 0664", s)
	}
	return os.FileMode(v), nil
}

// pageOptions returns the canvas options of the configured paper.
func (c *Config) pageOptions() canvas.Options {
	opts := canvas.Options{
		Format:        c.Page.Format,
		Width:         c.Page.Width,
		Height:        c.Page.Height,
		FontDir:       c.PDF.FontDir,
		NoCompression: c.PDF.NoCompression,
	}
	if c.Page.Margins != nil {
		opts.Margins = *c.Page.Margins
	}
	return opts
}

// layoutOptions maps the pdf and payment sections onto the renderer options.
func (c *Config) layoutOptions() layout.Options {
	opts := layout.DefaultOptions()
	if c.PDF.FontSize > 0 {
		opts.FontSize = c.PDF.FontSize
	}
	if c.PDF.FreeTextHeight != nil {
		opts.FreeTextHeight = *c.PDF.FreeTextHeight
	}
	opts.AutoWrapFreeText = c.PDF.AutoWrap
	opts.InvoiceFreeText = c.PDF.InvoiceFreeText
	opts.ProposalFreeText = c.PDF.ProposalFreeText
	opts.RepeatHead = c.RepeatHeadEnabled()
	opts.DashBetweenLines = c.PDF.DashBetweenLines
	opts.InvertSenderRecipient = c.PDF.InvertSenderRecipient
	opts.ShowDetails = c.PDF.ShowDetails
	opts.DraftWatermark = c.PDF.DraftWatermark
	opts.LogoDir = c.PDF.LogoDir
	opts.WithoutVAT = c.PDF.WithoutVAT
	opts.WithoutVATIfNull = c.PDF.WithoutVATIfNull
	opts.LocalTax1 = c.PDF.LocalTax1
	opts.LocalTax2 = c.PDF.LocalTax2
	opts.PositiveCreditNote = c.PDF.PositiveCreditNote
	opts.HideChequeAddress = c.PDF.HideChequeAddress
	opts.HidePaymentTerms = c.PDF.HidePaymentTerms
	opts.UseCompanyNameOfContact = c.PDF.UseCompanyNameOfContact
	opts.Cheque = c.Payment.Cheque
	opts.Bank = c.Payment.Bank
	return opts
}

// generator builds the PDF generator described by the configuration.
func (c *Config) generator(log *zap.Logger) *layout.Generator {
	return &layout.Generator{
		InvoiceDir:  c.Output.InvoiceDir,
		ProposalDir: c.Output.ProposalDir,
		FileMode:    c.fileMode,
		Page:        c.pageOptions(),
		Options:     c.layoutOptions(),
		Logger:      log,
	}
}
