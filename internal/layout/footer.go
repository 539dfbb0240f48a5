package layout

import (
	"fmt"
	"strings"

	"codecouleurs/internal/canvas"
	"codecouleurs/internal/document"
)

const (
	footerLineStep = oneMoreLine / 2
	freeTextLineH  = 3.0
	noWrapWidth    = 20000.0
)

func (r *renderer) freeTextTemplate() string {
	if r.doc.Kind == document.Proposal {
		return r.opts.ProposalFreeText
	}
	return r.opts.InvoiceFreeText
}

// substitute replaces the tokens of a free text with document values.
func (r *renderer) substitute(s string) string {
	if s == "" {
		return ""
	}
	doc := r.doc
	return strings.NewReplacer(
		"__FROM_NAME__", doc.Issuer.Name,
		"__FROM_EMAIL__", doc.Issuer.Email,
		"__TOTAL_TTC__", r.tr.Money(doc.TotalTTC),
		"__TOTAL_HT__", r.tr.Money(doc.TotalHT),
		"__TOTAL_VAT__", r.tr.Money(doc.TotalVAT),
		"__REF__", doc.Ref,
		`\n`, "\n",
	).Replace(s)
}

func (r *renderer) footerFont() canvas.Font {
	return r.font(canvas.Bold, -2)
}

func (r *renderer) freeTextBox() (width float64, align canvas.Align) {
	if r.opts.AutoWrapFreeText {
		return r.g.contentWidth(), canvas.AlignCenter
	}
	return noWrapWidth, canvas.AlignLeft
}

// freeTextHeight is the height reserved for the free text above the footer.
func (r *renderer) freeTextHeight() float64 {
	w, _ := r.freeTextBox()
	return max(r.opts.FreeTextHeight, r.c.TextHeight(r.freeText, w, freeTextLineH, r.footerFont()))
}

// footerLines returns the company lines of the footer. Lines 1 and 2 are
// only built when details are shown.
func (r *renderer) footerLines() [4]string {
	co, tr := r.doc.Issuer, r.tr
	var lines [4]string

	if r.opts.ShowDetails {
		var l1 []string
		if co.Name != "" {
			l1 = append(l1, tr.T("RegisteredOffice")+": "+co.Name)
		}
		if co.Address != "" {
			l1 = append(l1, co.Address)
		}
		if town := strings.TrimSpace(co.Zip + " " + co.Town); town != "" {
			l1 = append(l1, town)
		}
		if co.Phone != "" {
			l1 = append(l1, tr.T("Phone")+": "+co.Phone)
		}
		if co.Fax != "" {
			l1 = append(l1, tr.T("Fax")+": "+co.Fax)
		}
		lines[0] = strings.Join(l1, " - ")
		lines[1] = strings.Join(nonEmpty(co.URL, co.Email), " - ")
	}

	l3 := nonEmpty(co.Name, co.LegalForm, co.Capital)
	if co.ProfID1 != "" && (co.CountryCode != "FR" || co.ProfID2 == "") {
		l3 = append(l3, r.profIDLabel(1)+" : "+co.ProfID1)
	}
	if co.ProfID2 != "" {
		l3 = append(l3, r.profIDLabel(2)+" : "+co.ProfID2)
	}
	lines[2] = strings.Join(l3, " - ")

	var l4 []string
	if co.ProfID3 != "" {
		l4 = append(l4, r.profIDLabel(3)+" : "+co.ProfID3)
	}
	if co.ProfID4 != "" {
		l4 = append(l4, r.profIDLabel(4)+" : "+co.ProfID4)
	}
	if co.VATIntra != "" {
		l4 = append(l4, r.tr.T("VATIntraShort")+" : "+co.VATIntra)
	}
	lines[3] = strings.Join(l4, " - ")

	return lines
}

// profIDLabel names a professional id in the issuer country.
func (r *renderer) profIDLabel(n int) string {
	key := fmt.Sprintf("ProfId%d", n)
	if r.tr.Has(key + r.doc.Issuer.CountryCode) {
		key += r.doc.Issuer.CountryCode
	}
	return r.tr.T(key)
}

// footerMargin is the distance from the page bottom to the top of the
// footer holding text.
func (r *renderer) footerMargin(text string) float64 {
	n := 0
	for _, l := range r.footerLines() {
		if l != "" {
			n++
		}
	}
	margin := r.g.bottom + 3*float64(n)
	if text != "" {
		w, _ := r.freeTextBox()
		margin += r.c.TextHeight(text, w, freeTextLineH, r.footerFont())
	}
	return margin
}

// pageFoot draws the footer of page n out of count. The free text is only
// written on the last page.
func (r *renderer) pageFoot(n, count int) {
	c, g := r.c, r.g
	f := r.footerFont()

	text := ""
	if n == count {
		text = r.freeText
	}
	posy := r.footerMargin(text)

	if text != "" {
		w, align := r.freeTextBox()
		r.write(g.left, g.height-posy, w, freeTextLineH, text, f, darkGrey, align)
		posy -= c.TextHeight(text, w, freeTextLineH, f)
	}

	posy += footerLineStep
	c.Line(g.left, g.height-posy, g.width-g.right, g.height-posy, canvas.LineStyle{Width: 0.2, Color: darkGrey})
	posy -= footerLineStep

	lines := r.footerLines()
	center := func(s string) {
		r.write(g.left, g.height-posy, g.contentWidth(), 2, s, f, darkGrey, canvas.AlignCenter)
	}
	if lines[0] != "" {
		center(lines[0])
		posy -= footerLineStep
	}
	if lines[1] != "" {
		center(lines[1])
		posy -= footerLineStep
	}
	if lines[2] != "" {
		center(lines[2])
	}
	if lines[3] != "" {
		posy -= oneMoreLine
		center(lines[3])
	}

	if count > 1 {
		r.write(g.width-20, g.height-posy, 11, 2, fmt.Sprintf("%d/%d", n, count), f, darkGrey, canvas.AlignRight)
	}
}
