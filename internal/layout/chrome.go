package layout

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"codecouleurs/internal/canvas"
	"codecouleurs/internal/document"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	logoHeight   = 22.0
	boxHeight    = 43.0
	boxIndent    = 3.0
	senderWidth  = 82.0
	headerColumn = 100.0
)

// pageHead draws the header of a page. The address boxes are only drawn on
// the first page.
func (r *renderer) pageHead(first bool) {
	c, g, doc := r.c, r.g, r.doc

	if doc.Draft && r.opts.DraftWatermark != "" {
		c.Watermark(r.opts.DraftWatermark, canvas.Font{Weight: canvas.Bold, Size: 50}, watermarkColor)
	}

	r.logo()

	posx := g.width - g.right - headerColumn
	posy := g.top
	r.write(posx, posy, headerColumn, 3, r.title(), r.font(canvas.Bold, 0), black, canvas.AlignRight)

	posy += oneMoreLine
	r.write(posx, posy, headerColumn, 4, r.tr.T("Ref")+" : "+doc.Ref, r.font(canvas.Bold, 0), black, canvas.AlignRight)

	headLine := func(label, value string) {
		posy += oneMoreLine
		r.write(posx, posy, headerColumn, 3, r.tr.T(label)+" : "+value, r.font(canvas.Light, 0), black, canvas.AlignRight)
	}

	if doc.RefCustomer != "" {
		headLine("RefCustomer", doc.RefCustomer)
	}
	switch doc.Kind {
	case document.Invoice:
		if doc.Type == document.Standard && doc.ReplacingRef != "" {
			headLine("ReplacementByInvoice", doc.ReplacingRef)
		}
		if doc.Type == document.Replacement && doc.SourceRef != "" {
			headLine("ReplacementInvoice", doc.SourceRef)
		}
		if doc.Type == document.CreditNote && doc.SourceRef != "" {
			headLine("CorrectionInvoice", doc.SourceRef)
		}
		headLine("DateInvoice", r.tr.Date(doc.Date))
		if doc.Type != document.CreditNote {
			headLine("DateEcheance", r.tr.Date(doc.DueDate))
		}
	case document.Proposal:
		headLine("Date", r.tr.Date(doc.Date))
		headLine("DateEndPropal", r.tr.Date(doc.ValidUntil))
	}
	if doc.Customer.CustomerCode != "" {
		headLine("CustomerCode", doc.Customer.CustomerCode)
	}

	posy += 2
	for _, o := range doc.Linked {
		text := o.Label + " : " + o.Ref
		if !o.Date.IsZero() {
			text += " / " + r.tr.Date(o.Date)
		}
		posy = r.write(posx, posy+1, headerColumn, 3, text, r.font(canvas.Light, -1), black, canvas.AlignRight)
	}

	if first {
		r.addressBoxes()
	}
}

func (r *renderer) title() string {
	if r.doc.Kind == document.Proposal {
		return r.tr.T("CommercialProposal")
	}
	switch r.doc.Type {
	case document.Replacement:
		return r.tr.T("InvoiceReplacement")
	case document.CreditNote:
		return r.tr.T("InvoiceAvoir")
	case document.Deposit:
		return r.tr.T("InvoiceDeposit")
	case document.ProForma:
		return r.tr.T("InvoiceProFormat")
	}
	return r.tr.T("Invoice")
}

// logo draws the issuer logo, or its name when it has none. An unreadable
// logo is replaced by a red notice.
func (r *renderer) logo() {
	g, issuer := r.g, r.doc.Issuer
	if issuer.Logo == "" {
		r.write(g.left, g.top, headerColumn, 4, issuer.Name, r.font(canvas.Bold, 3), black, canvas.AlignLeft)
		return
	}

	path := issuer.Logo
	if !filepath.IsAbs(path) && r.opts.LogoDir != "" {
		path = filepath.Join(r.opts.LogoDir, path)
	}
	if _, err := r.c.Image(path, g.left, g.top, 0, logoHeight); err != nil {
		r.log.Warn("logo not rendered", zap.String("path", path), zap.Error(err))
		f := r.font(canvas.Bold, -2)
		y := r.write(g.left, g.top, headerColumn, 3, r.tr.T("ErrorLogoFileNotFound", path), f, red, canvas.AlignLeft)
		r.write(g.left, y, headerColumn, 3, r.tr.T("ErrorGoToGlobalSetup"), f, red, canvas.AlignLeft)
	}
}

// addressBoxes draws the sender box (grey background) and the recipient
// box (frame) of the first page.
func (r *renderer) addressBoxes() {
	c, g, doc := r.c, r.g, r.doc
	posy := firstAfterHeader

	// Sender
	posx := g.left
	if r.opts.InvertSenderRecipient {
		posx = g.width - g.right - 80
	}
	r.write(posx, posy-6, 66, 5, r.tr.T("BillFrom"), r.font(canvas.Regular, 0), pink, canvas.AlignLeft)
	c.Rect(posx, posy, senderWidth, boxHeight, canvas.RectStyle{Fill: &lightGrey})
	r.write(posx+boxIndent, posy+3, 80, 4, doc.Issuer.Name, r.font(canvas.Bold, 0), black, canvas.AlignLeft)
	r.write(posx+boxIndent, posy+10, 80, 4, r.buildAddress(doc.Issuer, doc.IssuerContact), r.font(canvas.Light, -1), black, canvas.AlignLeft)

	// Recipient
	width := 100.0
	if g.narrow() {
		width = 84
	}
	posx = g.width - g.right - width
	if r.opts.InvertSenderRecipient {
		posx = g.left
	}
	name := doc.Customer.Name
	if doc.BillingContact != nil && r.opts.UseCompanyNameOfContact && doc.BillingContact.CompanyName != "" {
		name = doc.BillingContact.CompanyName
	}

	r.write(posx, posy-6, width, 5, r.tr.T("BillTo"), r.font(canvas.Regular, 0), pink, canvas.AlignLeft)
	c.Rect(posx, posy, width, boxHeight, canvas.RectStyle{Width: 0.2, Stroke: &black})
	nameEnd := r.write(posx+boxIndent, posy+3, width, 4, name, r.font(canvas.Bold, 0), black, canvas.AlignLeft)
	r.write(posx+boxIndent, max(nameEnd, posy+7)+3, width, 4, r.buildAddress(doc.Customer, doc.BillingContact), r.font(canvas.Light, -1), black, canvas.AlignLeft)
}

// buildAddress formats a company address followed by its VAT number and
// the contact block, separated by blank lines.
func (r *renderer) buildAddress(co document.Company, contact *document.Contact) string {
	var parts []string

	var addr []string
	if co.Address != "" {
		addr = append(addr, co.Address)
	}
	if town := strings.TrimSpace(co.Zip + " " + co.Town); town != "" {
		addr = append(addr, town)
	}
	if co.Country != "" && co.CountryCode != r.doc.Issuer.CountryCode {
		addr = append(addr, co.Country)
	}
	if len(addr) > 0 {
		parts = append(parts, strings.Join(addr, "\n"))
	}
	if co.VATIntra != "" {
		parts = append(parts, r.tr.T("VATNumber")+" : "+co.VATIntra)
	}

	if contact != nil {
		var block []string
		var identity []string
		for _, s := range []string{contact.Civility, ucFirst(contact.FirstName), ucFirst(contact.LastName)} {
			if s != "" {
				identity = append(identity, s)
			}
		}
		if len(identity) > 0 {
			block = append(block, strings.Join(identity, " "))
		}

		var phones []string
		for _, p := range []string{contact.OfficePhone, contact.Mobile} {
			if p != "" {
				phones = append(phones, p)
			}
		}
		if len(phones) > 0 {
			block = append(block, strings.Join(phones, " | "))
		}
		if co.Email != "" {
			block = append(block, co.Email)
		}
		if len(block) > 0 {
			parts = append(parts, strings.Join(block, "\n"))
		}
	}

	return strings.Join(parts, "\n\n")
}

func ucFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

// tableChrome draws the header band, the column titles and the column
// lines of the lines table.
func (r *renderer) tableChrome(top, height float64) {
	c, g, doc := r.c, r.g, r.doc

	label := r.tr.T("AmountInCurrency", r.tr.Currency())
	small := r.font(canvas.Light, -2)
	lw := c.StringWidth(label, small) + 3
	r.write(g.width-g.right-lw, top-6, lw, 2, label, small, black, canvas.AlignLeft)

	c.Rect(g.left, top, g.contentWidth(), tabHeaderHeight, canvas.RectStyle{Width: 0.2, Stroke: &darkGrey, Fill: &darkGrey})

	f := r.font(canvas.Regular, 0)
	ly := top + 1
	head := func(x, w float64, s string) {
		r.write(x, ly, w, 2, s, f, white, canvas.AlignRight)
	}
	column := func(x float64) {
		c.Line(x, top, x, top+height, columnStyle)
	}

	r.write(g.posxDesc-1, ly, 108, 2, r.tr.T("Designation"), f, white, canvas.AlignLeft)

	if doc.Kind == document.Proposal {
		if !r.opts.WithoutVAT {
			column(g.posxUP - 1)
			head(g.posxUP-4, g.posxUP-g.posxTVA+3, r.tr.T("PrixHT"))
		}
		column(g.posxDiscount - 1)
		head(g.posxDiscount-2, g.posTotalHT-g.posxDiscount+1, r.tr.T("VAT")+" "+r.proposalVATRate())
		column(g.posTotalHT - 1)
		head(g.posTotalHT-2, g.width-g.right-g.posTotalHT+2, r.tr.T("PrixTTC"))
		return
	}

	if !r.opts.WithoutVAT {
		column(g.posxTVA - 1)
		head(g.posxTVA-4, g.posxUP-g.posxTVA+3, r.tr.T("PriceUHT"))
	}
	column(g.posxUP - 1)
	if doc.AnyDiscount() {
		head(g.posxUP-2, g.posxQty-g.posxUP-1, r.tr.T("ReductionShort"))
		column(g.posxQty)
	}
	head(g.posxQty-10, g.posxDiscount-g.posxQty+9, r.tr.T("VATRateShort"))
	column(g.posxDiscount - 1)
	head(g.posxDiscount-2, g.posTotalHT-g.posxDiscount+1, r.tr.T("VAT"))
	column(g.posTotalHT - 1)
	head(g.posTotalHT-2, g.width-g.right-g.posTotalHT+2, r.tr.T("TotalTTC"))
}

// proposalVATRate is the overall VAT rate of a proposal, one decimal.
func (r *renderer) proposalVATRate() string {
	if r.doc.TotalHT.IsZero() {
		return r.tr.Rate(decimal.Zero)
	}
	rate := r.doc.TotalVAT.Mul(decimal.NewFromInt(100)).Div(r.doc.TotalHT).Round(1)
	return r.tr.Rate(rate)
}

// border frames the lines table.
func (r *renderer) border(top, height float64) {
	r.c.Rect(r.g.left, top, r.g.contentWidth(), height, canvas.RectStyle{Width: 0.2, Stroke: &darkGrey})
}
