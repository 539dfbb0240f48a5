// Package document holds the business documents (invoices and commercial
// proposals) rendered by the layout engine. Everything here is read-only
// input for a render.
package document

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Kind selects the document template.
type Kind string

const (
	Invoice  Kind = "invoice"
	Proposal Kind = "proposal"
)

// InvoiceType mirrors the accounting nature of an invoice.
type InvoiceType int

const (
	Standard InvoiceType = iota
	Replacement
	CreditNote
	Deposit
	ProForma
)

// CloseDiscountVAT marks an invoice closed with an early payment discount.
const CloseDiscountVAT = "discount_vat"

// Company is either the issuer or the customer of a document.
type Company struct {
	Name         string `yaml:"name"`
	Address      string `yaml:"address"`
	Zip          string `yaml:"zip"`
	Town         string `yaml:"town"`
	Country      string `yaml:"country"`
	CountryCode  string `yaml:"country_code"`
	Province     string `yaml:"province"`
	Phone        string `yaml:"phone"`
	Fax          string `yaml:"fax"`
	Email        string `yaml:"email"`
	URL          string `yaml:"url"`
	Logo         string `yaml:"logo"`
	CustomerCode string `yaml:"customer_code"`

	LegalForm string `yaml:"legal_form"`
	Capital   string `yaml:"capital"`
	ProfID1   string `yaml:"prof_id1"`
	ProfID2   string `yaml:"prof_id2"`
	ProfID3   string `yaml:"prof_id3"`
	ProfID4   string `yaml:"prof_id4"`
	VATIntra  string `yaml:"vat_intra"`

	// VATSubject is false for companies under a VAT franchise.
	VATSubject bool `yaml:"vat_subject"`
}

// Contact is a person attached to a company for a given document.
type Contact struct {
	Civility    string `yaml:"civility"`
	FirstName   string `yaml:"firstname"`
	LastName    string `yaml:"lastname"`
	CompanyName string `yaml:"company_name"`
	OfficePhone string `yaml:"office_phone"`
	Mobile      string `yaml:"mobile"`
	Email       string `yaml:"email"`
}

// Line is one billable row of a document.
type Line struct {
	Description string          `yaml:"description"`
	Qty         decimal.Decimal `yaml:"qty"`
	UnitPrice   decimal.Decimal `yaml:"unit_price"`
	Discount    decimal.Decimal `yaml:"discount"`
	VATRate     decimal.Decimal `yaml:"vat_rate"`

	// NPR flags a non-perceived recoverable VAT rate.
	NPR           bool            `yaml:"npr"`
	LocalTax1Rate decimal.Decimal `yaml:"localtax1_rate"`
	LocalTax2Rate decimal.Decimal `yaml:"localtax2_rate"`

	TotalHT        decimal.Decimal `yaml:"total_ht"`
	TotalVAT       decimal.Decimal `yaml:"total_vat"`
	TotalLocalTax1 decimal.Decimal `yaml:"total_localtax1"`
	TotalLocalTax2 decimal.Decimal `yaml:"total_localtax2"`
	TotalTTC       decimal.Decimal `yaml:"total_ttc"`

	// PageBreak forces a page break before the line.
	PageBreak bool `yaml:"pagebreak"`
}

// IsTitle reports whether the line carries no quantity and is drawn as a
// section title without amounts.
func (l Line) IsTitle() bool {
	return l.Qty.IntPart() == 0
}

// Payment is a settlement already received for an invoice.
type Payment struct {
	Date   time.Time       `yaml:"date"`
	Amount decimal.Decimal `yaml:"amount"`
	Code   string          `yaml:"code"`
	Num    string          `yaml:"num"`
}

// Credit is a credit note or a deposit invoice consumed by an invoice.
type Credit struct {
	Date      time.Time       `yaml:"date"`
	AmountTTC decimal.Decimal `yaml:"amount_ttc"`
	Type      InvoiceType     `yaml:"type"`
	SourceRef string          `yaml:"source_ref"`
}

// LinkedObject is a reference to another business object shown in the header.
type LinkedObject struct {
	Label string    `yaml:"label"`
	Ref   string    `yaml:"ref"`
	Date  time.Time `yaml:"date"`
}

// Document is an invoice or a commercial proposal.
type Document struct {
	Kind        Kind        `yaml:"kind"`
	Type        InvoiceType `yaml:"type"`
	Ref         string      `yaml:"ref"`
	RefCustomer string      `yaml:"ref_customer"`
	Draft       bool        `yaml:"draft"`
	Specimen    bool        `yaml:"specimen"`

	Date         time.Time `yaml:"date"`
	DueDate      time.Time `yaml:"due_date"`
	ValidUntil   time.Time `yaml:"valid_until"`
	PaymentDays  int       `yaml:"payment_days"`
	ReplacingRef string    `yaml:"replacing_ref"`
	SourceRef    string    `yaml:"source_ref"`

	Title      string          `yaml:"title"`
	NotePublic string          `yaml:"note_public"`
	Discount   decimal.Decimal `yaml:"discount"`

	PaymentCondition     string `yaml:"payment_condition"`
	PaymentConditionText string `yaml:"payment_condition_text"`
	PaymentMode          string `yaml:"payment_mode"`
	PaymentModeText      string `yaml:"payment_mode_text"`
	CloseCode            string `yaml:"close_code"`
	Paid                 bool   `yaml:"paid"`

	Issuer         Company  `yaml:"issuer"`
	Customer       Company  `yaml:"customer"`
	IssuerContact  *Contact `yaml:"issuer_contact"`
	BillingContact *Contact `yaml:"billing_contact"`

	Lines []Line `yaml:"lines"`

	TotalHT        decimal.Decimal `yaml:"total_ht"`
	TotalVAT       decimal.Decimal `yaml:"total_vat"`
	TotalLocalTax1 decimal.Decimal `yaml:"total_localtax1"`
	TotalLocalTax2 decimal.Decimal `yaml:"total_localtax2"`
	TotalTTC       decimal.Decimal `yaml:"total_ttc"`

	// GlobalDiscount is the absolute discount amount added back to Total HT.
	GlobalDiscount decimal.Decimal `yaml:"global_discount"`

	Payments []Payment      `yaml:"payments"`
	Credits  []Credit       `yaml:"credits"`
	Linked   []LinkedObject `yaml:"linked"`
}

var (
	// ErrNoRef is returned for a validated document without reference.
	ErrNoRef = errors.New("document has no reference")
	// ErrEmptyDescription is returned for a line without description.
	ErrEmptyDescription = errors.New("line has an empty description")
)

// Load reads a YAML (or JSON) document file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document file: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document file: %w", err)
	}
	return &doc, nil
}

// Validate checks the document can be rendered and fills in the derived
// fields a render needs (provisional ref, due date).
func (d *Document) Validate(now time.Time) error {
	if d.Kind == "" {
		d.Kind = Invoice
	}
	if d.Kind != Invoice && d.Kind != Proposal {
		return fmt.Errorf("unknown document kind %q", d.Kind)
	}
	if strings.TrimSpace(d.Ref) == "" {
		if !d.Draft && !d.Specimen {
			return ErrNoRef
		}
		ref, err := ProvisionalRef(now)
		if err != nil {
			return err
		}
		d.Ref = ref
	}
	for i, l := range d.Lines {
		if strings.TrimSpace(l.Description) == "" {
			return fmt.Errorf("line %d: %w", i+1, ErrEmptyDescription)
		}
	}
	if d.Date.IsZero() {
		d.Date = now
	}
	if d.Kind == Invoice && d.DueDate.IsZero() && d.PaymentDays > 0 {
		d.DueDate = DueDate(d.Date, d.PaymentDays, d.Issuer)
	}
	return nil
}

// AlreadyPaid sums the payments received.
func (d *Document) AlreadyPaid() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range d.Payments {
		sum = sum.Add(p.Amount)
	}
	return sum
}

func (d *Document) creditsOf(t InvoiceType) decimal.Decimal {
	sum := decimal.Zero
	for _, c := range d.Credits {
		if c.Type == t {
			sum = sum.Add(c.AmountTTC)
		}
	}
	return sum
}

// CreditNotesUsed sums the credit notes consumed by the invoice.
func (d *Document) CreditNotesUsed() decimal.Decimal { return d.creditsOf(CreditNote) }

// DepositsUsed sums the deposit invoices consumed by the invoice.
func (d *Document) DepositsUsed() decimal.Decimal { return d.creditsOf(Deposit) }

// HasPaymentHistory reports whether a payments table has something to show.
func (d *Document) HasPaymentHistory() bool {
	return d.AlreadyPaid().IsPositive() || d.CreditNotesUsed().IsPositive() || d.DepositsUsed().IsPositive()
}

// RemainderToPay is what the customer still owes.
func (d *Document) RemainderToPay() decimal.Decimal {
	if d.Paid {
		return decimal.Zero
	}
	return d.TotalTTC.Sub(d.AlreadyPaid()).Sub(d.CreditNotesUsed()).Sub(d.DepositsUsed()).Round(2)
}

// AnyDiscount reports whether at least one line carries a discount.
func (d *Document) AnyDiscount() bool {
	for _, l := range d.Lines {
		if !l.Discount.IsZero() {
			return true
		}
	}
	return false
}

var optionRegex = regexp.MustCompile(`(?i)\(option\)`)

// HasOptions reports whether a proposal line is marked "(option)".
func (d *Document) HasOptions() bool {
	for _, l := range d.Lines {
		if optionRegex.MatchString(l.Description) {
			return true
		}
	}
	return false
}

// IsCreditNote is a shorthand used all over the templates.
func (d *Document) IsCreditNote() bool {
	return d.Kind == Invoice && d.Type == CreditNote
}
