package layout

import (
	"strings"

	"codecouleurs/internal/canvas"
	"codecouleurs/internal/document"
	"codecouleurs/internal/richtext"

	"go.uber.org/zap"
)

// writeLines lays the line items out and returns the last page number and
// the y after the last row.
func (r *renderer) writeLines(res *Result) (int, float64) {
	pagenb := r.tablePage
	nexY := r.tabTop + firstRowOffset

	for i, line := range r.doc.Lines {
		if line.PageBreak && i > 0 {
			r.finalizePage(pagenb)
			r.newPage()
			pagenb++
			nexY = r.g.tabTopNewPage + firstRowOffset
		}

		var row RowPlacement
		row, pagenb = r.writeRow(i, nexY, pagenb)
		res.Rows = append(res.Rows, row)
		nexY = row.EndY
	}
	return pagenb, nexY
}

// tableTop is where the lines table starts on page n.
func (r *renderer) tableTop(n int) float64 {
	if n == r.tablePage {
		return r.tabTop
	}
	return r.g.tabTopNewPage
}

// rowTop is the y of the first row of page n.
func (r *renderer) rowTop(n int) float64 {
	return r.tableTop(n) + firstRowOffset
}

func (r *renderer) writeRow(i int, curY float64, pagenb int) (RowPlacement, int) {
	c := r.c
	line := r.doc.Lines[i]
	rowPage := c.Page()
	row := RowPlacement{Line: i, Page: rowPage, Y: curY}

	c.SetTopMargin(r.g.tabTopNewPage + tabHeaderHeight)
	c.SetAutoPageBreak(true, r.g.footerHeight)

	c.Begin()
	r.writeLineDesc(i, curY)
	if c.Page() > rowPage && curY > r.rowTop(rowPage) {
		c.Rollback()
		r.rollbacks++
		r.log.Debug("row moved to a new page", zap.Int("line", i+1), zap.Int("page", rowPage))

		r.finalizePage(rowPage)
		r.newPage()
		pagenb++

		curY = r.g.tabTopNewPage + firstRowOffset
		row.Page, row.Y, row.Moved = c.Page(), curY, true
		c.SetTopMargin(r.g.tabTopNewPage + tabHeaderHeight)
		c.SetAutoPageBreak(true, r.g.footerHeight)
		r.writeLineDesc(i, curY)
	} else {
		c.Commit()
	}

	nexY := c.Y()
	pageAfter := c.Page()
	c.SetAutoPageBreak(false, 0)

	c.SetPage(row.Page)
	r.writeLineNumbers(line, row.Y)
	r.taxes.Accumulate(line, r.doc.Discount)

	c.SetPage(pageAfter)
	if r.doc.Kind == document.Proposal && r.opts.DashBetweenLines && i < len(r.doc.Lines)-1 {
		c.Line(r.g.left, nexY+1, r.g.width-r.g.right, nexY+1, separatorStyle)
	}
	nexY += 2

	// Pages the description flowed over.
	for pagenb < pageAfter {
		r.finalizePage(pagenb)
		pagenb++
		c.SetPage(pagenb)
		r.continuationHead()
	}

	row.EndPage, row.EndY = pageAfter, nexY
	return row, pagenb
}

// writeLineDesc writes the separator and the description of line i: its
// first line as a title, the rest in a smaller grey font.
func (r *renderer) writeLineDesc(i int, curY float64) {
	c := r.c
	line := r.doc.Lines[i]
	title, body := richtext.SplitTitle(line.Description)

	bold := false
	if r.doc.Kind == document.Invoice && !strings.HasPrefix(strings.TrimSpace(line.Description), "-") {
		c.Line(r.g.left, curY-1, r.g.width-r.g.right, curY-1, separatorStyle)
		bold = line.IsTitle()
	}

	x := r.g.posxDesc - 1
	w := r.g.posxTVA - x
	if r.doc.Kind == document.Proposal {
		w = r.g.posxUP - x
	}

	weight := canvas.Regular
	if bold {
		weight = canvas.Medium
	}
	page := c.Page()
	y := r.write(x, curY, w, descLineHeight, title, r.font(weight, -1), black, canvas.AlignLeft)
	if c.Page() == page && y < curY+oneMoreLine {
		y = curY + oneMoreLine
		c.SetY(y)
	}

	if body != "" {
		r.write(x+4, y+1, w-4, bodyLineHeight, body, r.font(canvas.Light, -2), greyWrite, canvas.AlignLeft)
	}
}

// writeLineNumbers writes the amounts of a row at y.
func (r *renderer) writeLineNumbers(line document.Line, y float64) {
	g := r.g
	f := r.font(canvas.Light, -1)
	vat := line.TotalTTC.Sub(line.TotalHT)

	cell := func(x, w float64, s string) {
		r.write(x, y, w, 3, s, f, black, canvas.AlignRight)
	}

	if r.doc.Kind == document.Proposal {
		if !r.opts.WithoutVAT {
			cell(g.posxUP, g.posxUP-g.posxTVA-1, r.tr.Money(line.UnitPrice.Mul(line.Qty)))
		}
		cell(g.posxDiscount-2, g.posTotalHT-g.posxDiscount+1, r.tr.Money(vat))
		cell(g.posTotalHT, g.width-g.right-g.posTotalHT, r.tr.Money(line.TotalTTC))
		return
	}

	// Section titles and credit lines carry no amounts.
	if !line.Qty.IsPositive() {
		return
	}
	if !r.opts.WithoutVAT {
		cell(g.posxTVA, g.posxUP-g.posxTVA-1, r.tr.Money(line.UnitPrice))
	}
	if !line.Discount.IsZero() {
		cell(g.posxUP, g.posxQty-g.posxUP-1, r.tr.Rate(line.Discount))
	}
	rate := r.tr.Rate(line.VATRate)
	if line.NPR {
		rate += "*"
	}
	cell(g.posxQty, g.posxDiscount-g.posxQty-1, rate)
	cell(g.posxDiscount-2, g.posTotalHT-g.posxDiscount+1, r.tr.Money(vat))
	cell(g.posTotalHT, g.width-g.right-g.posTotalHT, r.tr.Money(line.TotalTTC))
}

// finalizePage draws the table of page n down to the footer.
func (r *renderer) finalizePage(n int) {
	c := r.c
	cur := c.Page()
	c.SetPage(n)

	top := r.tableTop(n)
	height := r.g.height - r.g.footerHeight - top - 1
	r.drawTable(top, height)

	c.SetPage(cur)
}
