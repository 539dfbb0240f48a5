package document

import (
	"strings"

	"github.com/shopspring/decimal"
)

// nprSuffix marks a non-perceived recoverable rate label.
const nprSuffix = "*"

// TaxEntry is one accumulated rate of a TaxTotals.
type TaxEntry struct {
	Label  string
	Amount decimal.Decimal
}

// Rate returns the numeric rate of the entry, without NPR suffix.
func (e TaxEntry) Rate() decimal.Decimal {
	r, err := decimal.NewFromString(strings.TrimSuffix(e.Label, nprSuffix))
	if err != nil {
		return decimal.Zero
	}
	return r
}

// NPR reports whether the entry was accumulated from NPR lines.
func (e TaxEntry) NPR() bool {
	return strings.HasSuffix(e.Label, nprSuffix)
}

// TaxTotals accumulates tax amounts per rate label while lines are laid out.
// Entries keep the order in which their rate was first seen.
type TaxTotals struct {
	order  []string
	amount map[string]decimal.Decimal
}

// NewTaxTotals returns an empty accumulator.
func NewTaxTotals() *TaxTotals {
	return &TaxTotals{amount: make(map[string]decimal.Decimal)}
}

// RateLabel formats a rate the way accumulator keys are built.
func RateLabel(rate decimal.Decimal, npr bool) string {
	label := rate.StringFixed(3)
	if npr {
		label += nprSuffix
	}
	return label
}

// Add accumulates amount under label.
func (t *TaxTotals) Add(label string, amount decimal.Decimal) {
	cur, ok := t.amount[label]
	if !ok {
		t.order = append(t.order, label)
	}
	t.amount[label] = cur.Add(amount)
}

// Len returns the number of distinct labels.
func (t *TaxTotals) Len() int { return len(t.order) }

// Get returns the accumulated amount for label.
func (t *TaxTotals) Get(label string) (decimal.Decimal, bool) {
	v, ok := t.amount[label]
	return v, ok
}

// Entries lists every label in first-seen order.
func (t *TaxTotals) Entries() []TaxEntry {
	out := make([]TaxEntry, 0, len(t.order))
	for _, l := range t.order {
		out = append(out, TaxEntry{Label: l, Amount: t.amount[l]})
	}
	return out
}

// NonZero lists the entries whose rate is not zero.
func (t *TaxTotals) NonZero() []TaxEntry {
	var out []TaxEntry
	for _, e := range t.Entries() {
		if !e.Rate().IsZero() {
			out = append(out, e)
		}
	}
	return out
}

// IsOnlyZeroRate reports a single accumulated rate equal to 0 %.
func (t *TaxTotals) IsOnlyZeroRate() bool {
	return len(t.order) == 1 && t.order[0] == RateLabel(decimal.Zero, false)
}

// LineTaxes is the set of accumulators filled for one render.
type LineTaxes struct {
	VAT       *TaxTotals
	LocalTax1 *TaxTotals
	LocalTax2 *TaxTotals
}

// NewLineTaxes returns empty VAT and local tax accumulators.
func NewLineTaxes() *LineTaxes {
	return &LineTaxes{VAT: NewTaxTotals(), LocalTax1: NewTaxTotals(), LocalTax2: NewTaxTotals()}
}

var hundred = decimal.NewFromInt(100)

// Accumulate adds the taxes of l, reduced by the document level discount
// percent when there is one.
func (lt *LineTaxes) Accumulate(l Line, globalDiscount decimal.Decimal) {
	vat, lt1, lt2 := l.TotalVAT, l.TotalLocalTax1, l.TotalLocalTax2
	if !globalDiscount.IsZero() {
		vat = vat.Sub(vat.Mul(globalDiscount).Div(hundred))
		lt1 = lt1.Sub(lt1.Mul(globalDiscount).Div(hundred))
		lt2 = lt2.Sub(lt2.Mul(globalDiscount).Div(hundred))
	}

	lt.VAT.Add(RateLabel(l.VATRate, l.NPR), vat)
	lt.LocalTax1.Add(RateLabel(l.LocalTax1Rate, false), lt1)
	lt.LocalTax2.Add(RateLabel(l.LocalTax2Rate, false), lt2)
}
