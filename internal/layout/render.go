// Package layout lays invoices and commercial proposals out on paginated
// PDF pages: header and address boxes, the lines table split across pages,
// the totals and payment summary, and the footer of every page.
package layout

import (
	"codecouleurs/internal/canvas"
	"codecouleurs/internal/document"
	"codecouleurs/internal/i18n"
	"codecouleurs/internal/richtext"

	"go.uber.org/zap"
)

// RowPlacement tells where a line item was drawn.
type RowPlacement struct {
	Line int
	// Page and Y locate the top of the row, where its amounts are written.
	Page int
	Y    float64
	// EndPage and EndY locate the position after the row, spacing included.
	EndPage int
	EndY    float64
	// Moved is set when the row did not fit and was redrawn on a new page.
	Moved bool
}

// TablePlacement tells where the chrome and border of a lines table were
// drawn.
type TablePlacement struct {
	Page   int
	Top    float64
	Height float64
}

// Result describes a laid out document.
type Result struct {
	Path        string
	Pages       int
	Rows        []RowPlacement
	Tables      []TablePlacement
	SummaryPage int
	SummaryTop  float64
	Rollbacks   int
	// Taxes holds the tax amounts accumulated per rate.
	Taxes *document.LineTaxes
}

type renderer struct {
	c    *canvas.Document
	doc  *document.Document
	tr   i18n.Translator
	opts Options
	log  *zap.Logger

	g        geometry
	taxes    *document.LineTaxes
	tabTop   float64
	// tablePage is the page the lines table starts on.
	tablePage int
	freeText  string

	rollbacks int
	tables    []TablePlacement
}

// Render lays doc out on c, which must be empty.
func Render(c *canvas.Document, doc *document.Document, tr i18n.Translator, opts Options, log *zap.Logger) *Result {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultOptions().FontSize
	}

	r := &renderer{
		c:     c,
		doc:   doc,
		tr:    tr,
		opts:  opts,
		log:   log,
		g:     newGeometry(c, doc.Kind, opts.RepeatHead),
		taxes: document.NewLineTaxes(),
	}
	r.freeText = r.substitute(r.freeTextTemplate())
	r.g.footerHeight = max(r.g.footerHeight, r.footerMargin(""))

	res := &Result{}

	c.AddPage()
	r.pageHead(true)
	r.tabTop = r.g.tabTop
	r.writeIntro()
	r.tablePage = c.Page()

	pagenb, nexY := r.writeLines(res)

	// Table of the last page, down to the last row.
	drawTop := r.tableTop(pagenb)
	endTabY := nexY - 1
	r.drawTable(drawTop, endTabY-drawTop)

	res.SummaryPage, res.SummaryTop = r.writeSummary(endTabY)

	pages := c.PageCount()
	for p := 1; p <= pages; p++ {
		c.SetPage(p)
		r.pageFoot(p, pages)
	}
	c.SetPage(pages)

	res.Pages = pages
	res.Rollbacks = r.rollbacks
	res.Tables = r.tables
	res.Taxes = r.taxes
	return res
}

func (r *renderer) font(w canvas.Weight, delta float64) canvas.Font {
	return canvas.Font{Weight: w, Size: r.opts.FontSize + delta}
}

// write is a shorthand for a text box; it returns the y below the box.
func (r *renderer) write(x, y, w, lineHeight float64, s string, f canvas.Font, col canvas.Color, align canvas.Align) float64 {
	r.c.WriteText(canvas.TextBox{
		X: x, Y: y, W: w,
		LineHeight: lineHeight,
		Text:       s,
		Font:       f,
		Color:      col,
		Align:      align,
	})
	return r.c.Y()
}

// writeIntro writes the invoice public note or the proposal title above
// the lines table and moves the table down accordingly. A note too tall to
// leave room for a row flows over pages and the table starts on a new page.
func (r *renderer) writeIntro() {
	c := r.c
	var text string
	y := r.tabTop
	f := r.font(canvas.Light, -1)
	switch r.doc.Kind {
	case document.Invoice:
		text = r.doc.NotePublic
	case document.Proposal:
		text = r.doc.Title
		y += 5
		f = r.font(canvas.Medium, -1)
	}
	if text == "" {
		return
	}

	first := c.Page()
	c.SetTopMargin(r.g.tabTopNewPage + tabHeaderHeight)
	c.SetAutoPageBreak(true, r.g.footerHeight)
	nexY := r.write(r.g.posxDesc-1, y, r.g.contentWidth(), descLineHeight, richtext.Plain(text), f, black, canvas.AlignLeft)
	c.SetAutoPageBreak(false, 0)

	last := c.Page()
	for p := first + 1; p <= last; p++ {
		c.SetPage(p)
		r.continuationHead()
	}
	c.SetPage(last)

	if r.doc.Kind == document.Proposal {
		nexY -= 5
	}
	heightNote := nexY - r.tabTop
	r.tabTop = nexY + 9 + heightNote

	if last > first || r.tabTop+firstRowOffset+oneMoreLine > r.g.height-r.g.footerHeight {
		r.newPage()
		r.tabTop = r.g.tabTopNewPage
		r.log.Debug("lines table moved below the intro text", zap.Int("page", c.Page()))
	}
}

// drawTable draws the table chrome and border on the current page.
func (r *renderer) drawTable(top, height float64) {
	r.tableChrome(top, height)
	r.border(top, height)
	r.tables = append(r.tables, TablePlacement{Page: r.c.Page(), Top: top, Height: height})
}

// newPage appends a page and draws the continuation header on it.
func (r *renderer) newPage() {
	r.c.AddPage()
	r.continuationHead()
}

func (r *renderer) continuationHead() {
	if r.opts.RepeatHead {
		r.pageHead(false)
	}
}
