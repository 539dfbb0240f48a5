// Package canvas is a page-oriented drawing surface on top of fpdf.
//
// Drawing operations are recorded per page and replayed onto the PDF when
// the document is written. Recording makes it possible to write content
// speculatively inside a transaction and roll it back, page breaks
// included, when it does not fit.
package canvas

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Margins are expressed in millimeters.
type Margins struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
}

// Options configures a new Document.
type Options struct {
	// Format is one of A3, A4, A5, Letter, Legal, Executive or Custom.
	Format string
	// Width and Height are used with the Custom format, in millimeters.
	Width, Height float64

	Margins Margins

	// FontDir holds the Ubuntu TrueType faces (Ubuntu-L.ttf, Ubuntu-R.ttf,
	// Ubuntu-M.ttf, Ubuntu-B.ttf). When empty the core Helvetica font is
	// used with the cp1252 encoding.
	FontDir string

	Title    string
	Subject  string
	Author   string
	Keywords string
	Creator  string

	NoCompression bool
}

var (
	// ErrUnknownFormat is returned for an unsupported page format.
	ErrUnknownFormat = errors.New("unknown page format")
	// ErrAlreadyWritten is returned when a document is output twice.
	ErrAlreadyWritten = errors.New("document already written")
)

// executive is not part of the fpdf built-in sizes.
var executive = fpdf.SizeType{Wd: 184.15, Ht: 266.7}

// Document is a recording PDF canvas. Pages are numbered from 1.
type Document struct {
	pdf   *fpdf.Fpdf
	fonts fontSet
	enc   func(string) string

	width, height float64
	margins       Margins

	pages [][]op
	page  int
	y     float64

	topMargin   float64
	autoBreak   bool
	breakMargin float64

	tx      []snapshot
	written bool
}

type snapshot struct {
	opLens      []int
	page        int
	y           float64
	topMargin   float64
	autoBreak   bool
	breakMargin float64
}

// New creates an empty document. It fails when the page format is unknown
// or the configured fonts cannot be loaded.
func New(opts Options) (*Document, error) {
	cfg := &fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		FontDirStr:     opts.FontDir,
	}
	switch strings.ToLower(opts.Format) {
	case "", "a4":
		cfg.SizeStr = "A4"
	case "a3", "a5", "letter", "legal":
		cfg.SizeStr = opts.Format
	case "executive":
		cfg.Size = executive
	case "custom":
		if opts.Width <= 0 || opts.Height <= 0 {
			return nil, fmt.Errorf("%w: custom format needs a width and a height", ErrUnknownFormat)
		}
		cfg.Size = fpdf.SizeType{Wd: opts.Width, Ht: opts.Height}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}

	pdf := fpdf.NewCustom(cfg)
	if pdf.Err() {
		return nil, fmt.Errorf("failed to initialize pdf: %w", pdf.Error())
	}

	fonts, err := loadFonts(pdf, opts.FontDir)
	if err != nil {
		return nil, err
	}

	pdf.SetMargins(opts.Margins.Left, opts.Margins.Top, opts.Margins.Right)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(!opts.NoCompression)
	pdf.SetTitle(opts.Title, true)
	pdf.SetSubject(opts.Subject, true)
	pdf.SetAuthor(opts.Author, true)
	pdf.SetKeywords(opts.Keywords, true)
	pdf.SetCreator(opts.Creator, true)

	w, h := pdf.GetPageSize()
	d := &Document{
		pdf:         pdf,
		fonts:       fonts,
		enc:         func(s string) string { return s },
		width:       w,
		height:      h,
		margins:     opts.Margins,
		topMargin:   opts.Margins.Top,
		breakMargin: opts.Margins.Bottom,
	}
	if !fonts.utf8 {
		d.enc = pdf.UnicodeTranslatorFromDescriptor("")
	}
	return d, nil
}

// PageSize returns the page width and height in millimeters.
func (d *Document) PageSize() (width, height float64) {
	return d.width, d.height
}

func (d *Document) Margins() Margins {
	return d.margins
}

// AddPage appends a page after the last one and makes it current. The
// cursor moves to the top margin.
func (d *Document) AddPage() {
	d.pages = append(d.pages, nil)
	d.page = len(d.pages)
	d.y = d.topMargin
}

// SetPage makes an existing page current. The cursor is left untouched.
func (d *Document) SetPage(n int) {
	if n < 1 || n > len(d.pages) {
		return
	}
	d.page = n
}

// Page returns the current page number, 0 before the first AddPage.
func (d *Document) Page() int { return d.page }

func (d *Document) PageCount() int { return len(d.pages) }

// Y returns the vertical cursor.
func (d *Document) Y() float64 { return d.y }

func (d *Document) SetY(y float64) { d.y = y }

// SetTopMargin sets where the cursor lands on a page reached through an
// automatic page break.
func (d *Document) SetTopMargin(top float64) { d.topMargin = top }

// SetAutoPageBreak enables automatic page advance for text written below
// the page height minus margin.
func (d *Document) SetAutoPageBreak(auto bool, margin float64) {
	d.autoBreak = auto
	d.breakMargin = margin
}

// OpCount returns the number of operations recorded on page n.
func (d *Document) OpCount(n int) int {
	if n < 1 || n > len(d.pages) {
		return 0
	}
	return len(d.pages[n-1])
}

// Begin opens a transaction. Transactions nest.
func (d *Document) Begin() {
	s := snapshot{
		opLens:      make([]int, len(d.pages)),
		page:        d.page,
		y:           d.y,
		topMargin:   d.topMargin,
		autoBreak:   d.autoBreak,
		breakMargin: d.breakMargin,
	}
	for i, ops := range d.pages {
		s.opLens[i] = len(ops)
	}
	d.tx = append(d.tx, s)
}

// Commit keeps everything drawn since the matching Begin.
func (d *Document) Commit() {
	if len(d.tx) == 0 {
		return
	}
	d.tx = d.tx[:len(d.tx)-1]
}

// Rollback discards everything drawn since the matching Begin, including
// the pages added meanwhile, and restores the cursor.
func (d *Document) Rollback() {
	if len(d.tx) == 0 {
		return
	}
	s := d.tx[len(d.tx)-1]
	d.tx = d.tx[:len(d.tx)-1]

	d.pages = d.pages[:len(s.opLens)]
	for i, n := range s.opLens {
		d.pages[i] = d.pages[i][:n]
	}
	d.page = s.page
	d.y = s.y
	d.topMargin = s.topMargin
	d.autoBreak = s.autoBreak
	d.breakMargin = s.breakMargin
}

// record appends an operation to the current page.
func (d *Document) record(o op) {
	if d.page == 0 {
		d.AddPage()
	}
	d.pages[d.page-1] = append(d.pages[d.page-1], o)
}

// advance moves to the page after the current one, appending it if needed.
func (d *Document) advance() {
	if d.page < len(d.pages) {
		d.page++
	} else {
		d.pages = append(d.pages, nil)
		d.page = len(d.pages)
	}
	d.y = d.topMargin
}

// Output replays the recorded pages and writes the PDF to w.
func (d *Document) Output(w io.Writer) error {
	if d.written {
		return ErrAlreadyWritten
	}
	d.written = true

	if len(d.pages) == 0 {
		d.pages = append(d.pages, nil)
	}
	for _, ops := range d.pages {
		d.pdf.AddPage()
		for _, o := range ops {
			o.replay(d)
		}
	}
	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

// OutputFile writes the PDF to path.
func (d *Document) OutputFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := d.Output(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
