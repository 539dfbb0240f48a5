// Package main renders invoices and commercial proposals as PDF files.
//
// A document is read from a YAML file (issuer, customer, lines, totals,
// payments) and laid out on paginated pages: header, lines table split
// across pages, totals and payment summary, footer. The written file can
// be mailed right away.
//
// Usage: codecouleurs invoice|proposal <document.yaml> [--config config.yaml] [--lang fr] [--mail]
package main

import (
	"fmt"
	"os"

	"codecouleurs/internal/document"
	"codecouleurs/internal/i18n"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ---------------------------------------------------------------------------
// Constants
// ---------------------------------------------------------------------------

const version = "1.0.0"

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

type flags struct {
	config string
	lang   string
	mail   bool
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:           "codecouleurs",
		Short:         "Render invoices and commercial proposals as PDF",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("codecouleurs v{{.Version}}\n")

	root.PersistentFlags().StringVarP(&f.config, "config", "c", "config.yaml", "configuration file")
	root.PersistentFlags().StringVarP(&f.lang, "lang", "l", "", "output language (fr, en, de); defaults to the configured one")
	root.PersistentFlags().BoolVarP(&f.mail, "mail", "m", false, "mail the written document")

	root.AddCommand(
		newRenderCmd(document.Invoice, "Render an invoice", f),
		newRenderCmd(document.Proposal, "Render a commercial proposal", f),
	)
	return root
}

func newRenderCmd(kind document.Kind, short string, f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   string(kind) + " <document.yaml>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f.config)
			if err != nil {
				return err
			}
			log := newLogger(cfg.Log, zapcore.Lock(zapcore.AddSync(cmd.ErrOrStderr())))
			defer func() { _ = log.Sync() }()

			path, err := render(cfg, kind, args[0], f, log)
			if path != "" {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return err
		},
	}
}

// render writes the document file at src and returns the PDF path. The
// path is also returned when only the after creation hooks failed.
func render(cfg *Config, kind document.Kind, src string, f *flags, log *zap.Logger) (string, error) {
	doc, err := document.Load(src)
	if err != nil {
		return "", err
	}
	if doc.Kind != "" && doc.Kind != kind {
		return "", fmt.Errorf("%s holds a %s, not a %s", src, doc.Kind, kind)
	}
	doc.Kind = kind

	lang := f.lang
	if lang == "" {
		lang = cfg.Language
	}
	tr, err := i18n.New(lang, cfg.Currency)
	if err != nil {
		return "", err
	}

	gen := cfg.generator(log)
	if f.mail {
		gen.AfterCreate = append(gen.AfterCreate, mailHook(cfg, tr, log))
	}

	res, err := gen.WriteFile(doc, tr)
	if res == nil {
		return "", err
	}
	return res.Path, err
}

// ---------------------------------------------------------------------------
// Main
// ---------------------------------------------------------------------------

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
