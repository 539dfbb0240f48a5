package layout

import (
	"sort"
	"strings"

	"codecouleurs/internal/canvas"
	"codecouleurs/internal/document"
	"codecouleurs/internal/richtext"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	totalsCol1     = 120.0
	totalsCol2     = 170.0
	totalsRow      = 6.0
	infoValueX     = 54.0
	paymentsWidth  = 80.0
	paymentsRowH   = 3.0
	proposalColEnd = 110.0
)

// writeSummary places the info, totals and payments blocks after the lines
// table ending at endTabY, on a new page when they do not fit above the
// free text and the footer. It returns the page and y of the summary.
func (r *renderer) writeSummary(endTabY float64) (int, float64) {
	c := r.c
	bottomMax := r.g.height - r.freeTextHeight() - r.g.footerHeight + 1

	var top float64
	if endTabY+oneMoreLine > bottomMax {
		r.newPage()
		top = firstAfterHeader
	} else {
		top = min(endTabY+10, bottomMax)
	}

	c.Begin()
	if bottom := r.summary(top); bottom > bottomMax {
		c.Rollback()
		r.rollbacks++
		r.log.Debug("summary moved to a new page", zap.Float64("bottom", bottom), zap.Float64("max", bottomMax))

		r.newPage()
		top = firstAfterHeader
		r.summary(top)
	} else {
		c.Commit()
	}
	return c.Page(), top
}

// summary writes the blocks at posy and returns the lowest y reached.
func (r *renderer) summary(posy float64) float64 {
	var left, right float64
	if r.doc.Kind == document.Proposal {
		left = r.proposalInfo(posy)
		left = r.notes(left)
		right = r.totals(posy)
	} else {
		left = r.invoiceInfo(posy)
		right = r.totals(posy)
		if r.doc.HasPaymentHistory() {
			right = r.payments(right)
		}
	}
	return max(left, right)
}

// invoiceInfo writes the VAT mentions and payment terms of an invoice.
func (r *renderer) invoiceInfo(posy float64) float64 {
	g, doc, tr := r.g, r.doc, r.tr

	if doc.Issuer.CountryCode == "FR" && !doc.Issuer.VATSubject {
		posy = r.write(g.left, posy, 100, 3, tr.T("VATIsNotUsedForInvoice"), r.font(canvas.Bold, -2), black, canvas.AlignLeft) + 4
	}
	if doc.Customer.CountryCode == "CH" {
		posy = r.write(g.left, posy, 100, 3, tr.T("VATExemptSwiss"), r.font(canvas.Light, -4), black, canvas.AlignLeft) + 4
	}
	if doc.Customer.VATIntra != "" && !doc.Customer.VATSubject {
		posy = r.write(g.left, posy, 100, 3, tr.T("VATReverseCharge"), r.font(canvas.Light, -4), black, canvas.AlignLeft) + 4
	}

	if doc.IsCreditNote() {
		return posy
	}

	if cond := r.paymentCondition(); cond != "" {
		y1 := r.write(g.left, posy, 80, 4, tr.T("PaymentConditions")+" :", r.font(canvas.Bold, -2), black, canvas.AlignLeft)
		y2 := r.write(infoValueX, posy, 80, 4, cond, r.font(canvas.Light, -2), black, canvas.AlignLeft)
		posy = max(y1, y2) + 3
	}

	mode := doc.PaymentMode
	if mode == "" && !r.opts.Cheque.Enabled && r.opts.Bank.empty() {
		posy = r.write(g.left, posy, 80, 3, tr.T("ErrorNoPaiementModeConfigured"), r.font(canvas.Bold, -2), red, canvas.AlignLeft) + 1
	}

	if mode != "" && mode != "CHQ" && mode != "VIR" {
		label := doc.PaymentModeText
		if tr.Has("PaymentType" + mode) {
			label = tr.T("PaymentType" + mode)
		}
		y1 := r.write(g.left, posy, 80, 5, tr.T("PaymentMode")+" :", r.font(canvas.Bold, -2), black, canvas.AlignLeft)
		y2 := r.write(infoValueX, posy, 80, 5, label, r.font(canvas.Light, -2), black, canvas.AlignLeft)
		posy = max(y1, y2) + 2
	}

	if (mode == "" || mode == "CHQ") && r.opts.Cheque.Enabled {
		payee, address := r.opts.Cheque.Payee, r.opts.Cheque.Address
		if payee == "" {
			payee = doc.Issuer.Name
			address = strings.Join(nonEmpty(doc.Issuer.Address, strings.TrimSpace(doc.Issuer.Zip+" "+doc.Issuer.Town)), "\n")
		}
		posy = r.write(g.left, posy, 100, 3, tr.T("PaymentByChequeOrderedTo", payee), r.font(canvas.Bold, -3), black, canvas.AlignLeft) + 1
		if !r.opts.HideChequeAddress && address != "" {
			posy = r.write(g.left, posy, 100, 3, address, r.font(canvas.Light, -3), black, canvas.AlignLeft) + 2
		}
	}

	if (mode == "" || mode == "VIR") && !r.opts.Bank.empty() {
		posy = r.bank(posy)
	}
	return posy
}

// bank writes the account to transfer the amount to.
func (r *renderer) bank(posy float64) float64 {
	b, tr := r.opts.Bank, r.tr
	var lines []string
	if b.Bank != "" {
		lines = append(lines, tr.T("Bank")+" : "+b.Bank)
	}
	if b.IBAN != "" {
		lines = append(lines, tr.T("IBAN")+" : "+b.IBAN)
	}
	if b.BIC != "" {
		lines = append(lines, tr.T("BIC")+" : "+b.BIC)
	}
	if b.Owner != "" {
		lines = append(lines, tr.T("AccountOwner")+" : "+b.Owner)
	}
	return r.write(r.g.left, posy, 100, 3, strings.Join(lines, "\n"), r.font(canvas.Light, -3), black, canvas.AlignLeft) + 2
}

func (r *renderer) paymentCondition() string {
	code, text := r.doc.PaymentCondition, r.doc.PaymentConditionText
	if code != "" && r.tr.Has("PaymentCondition"+code) {
		text = r.tr.T("PaymentCondition" + code)
	}
	return strings.ReplaceAll(text, `\n`, "\n")
}

// proposalInfo writes the VAT mention and payment terms of a proposal.
func (r *renderer) proposalInfo(posy float64) float64 {
	g, doc, tr := r.g, r.doc, r.tr
	width := proposalColEnd - g.left

	if doc.Issuer.CountryCode == "FR" && !doc.Issuer.VATSubject {
		posy = r.write(g.left, posy+1, width, 4, tr.T("VATIsNotUsedForInvoice"), r.font(canvas.Bold, -2), black, canvas.AlignLeft) + 6
	}
	if cond := r.paymentCondition(); cond != "" && !r.opts.HidePaymentTerms {
		r.write(g.left, posy+1, width, 5, tr.T("PaymentConditions")+" :", r.font(canvas.Medium, -1), black, canvas.AlignLeft)
		posy = r.write(g.left, posy+6, width, 5, cond, r.font(canvas.Light, -1), black, canvas.AlignLeft) + 6
	}
	return posy
}

// notes writes the public note of a proposal under its info block.
func (r *renderer) notes(posy float64) float64 {
	if r.doc.NotePublic == "" {
		return posy
	}
	nexY := r.write(r.g.left, posy, proposalColEnd-r.g.left, 5, richtext.Plain(r.doc.NotePublic), r.font(canvas.Light, -2), black, canvas.AlignLeft)
	return nexY + 9
}

// totals writes the totals block and returns the y below it.
func (r *renderer) totals(posy float64) float64 {
	g, doc, tr := r.g, r.doc, r.tr
	c := r.c

	col1, col2 := totalsCol1, totalsCol2
	if g.narrow() {
		col2 -= 20
	}
	width2 := g.width - g.right - col2
	f := r.font(canvas.Regular, -1)

	sign := decimal.NewFromInt(1)
	if doc.IsCreditNote() && r.opts.PositiveCreditNote {
		sign = sign.Neg()
	}

	cur := posy
	index := 0
	row := func(label string, value decimal.Decimal, fillLabel, fillValue bool) {
		y := cur + totalsRow*float64(index)
		if fillLabel {
			c.Rect(col1, y, col2-col1, totalsRow, canvas.RectStyle{Fill: &lightGrey})
		}
		if fillValue {
			c.Rect(col2, y, width2, totalsRow, canvas.RectStyle{Fill: &lightGrey})
		}
		r.write(col1, y+1, col2-col1, 4, label, f, black, canvas.AlignLeft)
		r.write(col2, y+1, width2, 4, tr.Money(value.Mul(sign)), f, black, canvas.AlignRight)
		index++
	}

	row(tr.T("TotalHT"), doc.TotalHT.Add(doc.GlobalDiscount), false, false)

	if !r.opts.WithoutVAT && !(r.opts.WithoutVATIfNull && r.taxes.VAT.IsOnlyZeroRate()) {
		rates := r.taxes.VAT.NonZero()
		for _, e := range rates {
			label := tr.T("TotalVAT") + " " + tr.Rate(e.Rate())
			if e.NPR() {
				label += " (" + tr.T("NonPercuRecuperable") + ")"
			}
			row(label, e.Amount, false, false)
		}

		if len(rates) == 0 {
			row(tr.T("TotalVAT"), doc.TotalVAT, false, false)
			if r.opts.LocalTax1 && doc.TotalLocalTax1.IsPositive() {
				row(r.localTaxLabel(1), doc.TotalLocalTax1, false, false)
			}
			if r.opts.LocalTax2 && doc.TotalLocalTax2.IsPositive() {
				row(r.localTaxLabel(2), doc.TotalLocalTax2, false, false)
			}
		} else {
			if r.opts.LocalTax1 {
				for _, e := range r.taxes.LocalTax1.NonZero() {
					row(r.localTaxLabel(1)+" "+tr.Rate(e.Rate()), e.Amount, false, false)
				}
			}
			if r.opts.LocalTax2 {
				for _, e := range r.taxes.LocalTax2.NonZero() {
					row(r.localTaxLabel(2)+" "+tr.Rate(e.Rate()), e.Amount, false, false)
				}
			}
		}

		label := tr.T("TotalTTC")
		if doc.IsCreditNote() {
			label = tr.T("TotalTTCToYourCredit")
		}
		row(label, doc.TotalTTC, doc.Kind == document.Invoice, true)
	}

	if doc.Kind == document.Proposal {
		cur += totalsRow * float64(index)
		if doc.HasOptions() {
			cur++
			r.write(col1, cur, 50, 3, tr.T("AllOptions"), r.font(canvas.Light, -3), black, canvas.AlignLeft)
		}
		return cur + totalsRow
	}

	if doc.HasPaymentHistory() {
		paid := doc.AlreadyPaid()
		credits := doc.CreditNotesUsed()
		deposits := doc.DepositsUsed()

		row(tr.T("Paid"), paid.Add(deposits), false, false)
		if credits.IsPositive() {
			row(tr.T("CreditNotes"), credits, false, false)
		}
		remainder := doc.RemainderToPay()
		if doc.CloseCode == document.CloseDiscountVAT {
			row(tr.T("EscompteOffered"), doc.TotalTTC.Sub(paid).Sub(credits).Sub(deposits), true, true)
			remainder = decimal.Zero
		}
		row(tr.T("RemainderToPay"), remainder, true, true)
	}

	return cur + totalsRow*float64(index)
}

func (r *renderer) localTaxLabel(n int) string {
	key := "TotalLT1"
	if n == 2 {
		key = "TotalLT2"
	}
	if r.tr.Has(key + r.doc.Issuer.CountryCode) {
		key += r.doc.Issuer.CountryCode
	}
	return r.tr.T(key)
}

// payments writes the table of credit notes, deposits and payments already
// applied to an invoice.
func (r *renderer) payments(posy float64) float64 {
	g, doc, tr := r.g, r.doc, r.tr
	c := r.c

	x := totalsCol1
	if g.narrow() {
		x -= 20
	}
	top := posy + 8

	r.write(x, top-4, 60, 3, tr.T("PaymentsAlreadyDone"), r.font(canvas.Light, -3), black, canvas.AlignLeft)
	c.Line(x, top, x+paymentsWidth, top, paymentsStyle)

	f := r.font(canvas.Light, -4)
	cols := func(y float64, date, amount, kind, num string) {
		r.write(x, y, 20, 3, date, f, black, canvas.AlignLeft)
		r.write(x+21, y, 20, 3, amount, f, black, canvas.AlignLeft)
		r.write(x+40, y, 20, 3, kind, f, black, canvas.AlignLeft)
		r.write(x+58, y, 30, 3, num, f, black, canvas.AlignLeft)
	}

	cols(top, tr.T("Payment"), tr.T("Amount"), tr.T("Type"), tr.T("Num"))
	c.Line(x, top-1+4, x+paymentsWidth, top-1+4, paymentsStyle)

	y := 0.0
	for _, cr := range doc.Credits {
		y += paymentsRowH
		kind := tr.T("UnknownType")
		switch cr.Type {
		case document.CreditNote:
			kind = tr.T("CreditNote")
		case document.Deposit:
			kind = tr.T("Deposit")
		}
		cols(top+y, tr.Date(cr.Date), tr.Money(cr.AmountTTC), kind, cr.SourceRef)
		c.Line(x, top+y+paymentsRowH, x+paymentsWidth, top+y+paymentsRowH, paymentsStyle)
	}

	payments := make([]document.Payment, len(doc.Payments))
	copy(payments, doc.Payments)
	sort.SliceStable(payments, func(i, j int) bool { return payments[i].Date.Before(payments[j].Date) })
	for _, p := range payments {
		y += paymentsRowH
		kind := p.Code
		if tr.Has("PaymentTypeShort" + p.Code) {
			kind = tr.T("PaymentTypeShort" + p.Code)
		}
		cols(top+y, tr.Date(p.Date), tr.Money(p.Amount), kind, p.Num)
		c.Line(x, top+y+paymentsRowH, x+paymentsWidth, top+y+paymentsRowH, paymentsStyle)
	}

	return top + y + paymentsRowH + 1
}

func nonEmpty(s ...string) []string {
	var out []string
	for _, v := range s {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
