package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"codecouleurs/internal/canvas"
	"codecouleurs/internal/document"
	"codecouleurs/internal/i18n"

	"go.uber.org/zap"
)

var (
	// ErrOutputDirNotConfigured is returned when no output directory is set
	// for the kind of document written.
	ErrOutputDirNotConfigured = errors.New("output directory not configured")
	// ErrCannotCreateDir is returned when the output directory of a document
	// cannot be created.
	ErrCannotCreateDir = errors.New("cannot create output directory")
)

// AfterCreateFunc is called with the path of every PDF written.
type AfterCreateFunc func(path string, doc *document.Document) error

// Generator writes documents as PDF files.
type Generator struct {
	InvoiceDir  string
	ProposalDir string
	// FileMode is applied to written files when not zero.
	FileMode os.FileMode

	Page    canvas.Options
	Options Options

	Logger      *zap.Logger
	AfterCreate []AfterCreateFunc

	// Now defaults to time.Now.
	Now func() time.Time
}

func (g *Generator) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

func (g *Generator) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}

// Path returns the file a document is written to.
func (g *Generator) Path(doc *document.Document) (string, error) {
	dir := g.InvoiceDir
	if doc.Kind == document.Proposal {
		dir = g.ProposalDir
	}
	if dir == "" {
		return "", fmt.Errorf("%w for %s", ErrOutputDirNotConfigured, doc.Kind)
	}
	if doc.Specimen {
		return filepath.Join(dir, "SPECIMEN.pdf"), nil
	}
	ref := document.SanitizeFileName(doc.Ref)
	return filepath.Join(dir, ref, ref+".pdf"), nil
}

// WriteFile renders doc in the language of tr and writes it to its output
// path.
func (g *Generator) WriteFile(doc *document.Document, tr i18n.Translator) (*Result, error) {
	log := g.logger()

	if err := doc.Validate(g.now()); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	path, err := g.Path(doc)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrCannotCreateDir, dir, err)
	}

	page := g.Page
	page.Title = doc.Ref
	page.Subject = Title(doc, tr)
	page.Author = doc.Issuer.Name
	page.Keywords = doc.Ref + " " + page.Subject + " " + doc.Customer.Name
	if page.Creator == "" {
		page.Creator = "codecouleurs"
	}
	c, err := canvas.New(page)
	if err != nil {
		return nil, err
	}

	log.Info("rendering document",
		zap.String("kind", string(doc.Kind)),
		zap.String("ref", doc.Ref),
		zap.Int("lines", len(doc.Lines)),
		zap.String("lang", tr.Language().String()))

	res := Render(c, doc, tr, g.Options, log)
	res.Path = path

	if err := c.OutputFile(path); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if g.FileMode != 0 {
		if err := os.Chmod(path, g.FileMode); err != nil {
			log.Warn("failed to change file mode", zap.String("path", path), zap.Error(err))
		}
	}

	log.Info("document written",
		zap.String("path", path),
		zap.Int("pages", res.Pages),
		zap.Int("rollbacks", res.Rollbacks))

	for _, fn := range g.AfterCreate {
		if err := fn(path, doc); err != nil {
			return res, fmt.Errorf("after create %s: %w", path, err)
		}
	}
	return res, nil
}

// Title returns the translated title of doc, e.g. "Facture d'acompte".
func Title(doc *document.Document, tr i18n.Translator) string {
	r := &renderer{doc: doc, tr: tr}
	return r.title()
}
