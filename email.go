package main

import (
	"fmt"
	"path/filepath"

	"codecouleurs/internal/document"
	"codecouleurs/internal/i18n"
	"codecouleurs/internal/layout"

	"github.com/go-gomail/gomail"
	"go.uber.org/zap"
)

// ---------------------------------------------------------------------------
// Email
// ---------------------------------------------------------------------------

// newMessage builds the mail carrying the given files.
func newMessage(cfg *Config, subject string, filenames ...string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", cfg.Email.From)
	msg.SetHeader("To", cfg.Email.To)
	if cfg.Email.Cc != "" {
		msg.SetHeader("Cc", cfg.Email.Cc)
	}
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", cfg.Email.Body)

	for _, f := range filenames {
		msg.Attach(f, gomail.Rename(filepath.Base(f)))
	}
	return msg
}

// sendEmail sends the generated PDFs via SMTP.
func sendEmail(cfg *Config, subject string, filenames ...string) error {
	dialer := gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
	return dialer.DialAndSend(newMessage(cfg, subject, filenames...))
}

// mailSubject is e.g. "Facture FA2610-0042".
func mailSubject(doc *document.Document, tr i18n.Translator) string {
	return layout.Title(doc, tr) + " " + doc.Ref
}

// mailHook mails every written document.
func mailHook(cfg *Config, tr i18n.Translator, log *zap.Logger) layout.AfterCreateFunc {
	return func(path string, doc *document.Document) error {
		if cfg.SMTP.Host == "" || cfg.Email.To == "" {
			return fmt.Errorf("failed to send email: smtp host or recipient not configured")
		}
		if err := sendEmail(cfg, mailSubject(doc, tr), path); err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
		log.Info("document mailed", zap.String("to", cfg.Email.To), zap.String("path", path))
		return nil
	}
}
