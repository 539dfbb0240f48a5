package layout

// BankAccount is printed on invoices paid by transfer.
type BankAccount struct {
	Bank  string `yaml:"bank"`
	IBAN  string `yaml:"iban"`
	BIC   string `yaml:"bic"`
	Owner string `yaml:"owner"`
}

func (b BankAccount) empty() bool {
	return b.IBAN == "" && b.Bank == "" && b.BIC == ""
}

// Cheque configures the "payment by cheque" mention. An enabled cheque
// without payee is made out to the issuer, at the issuer address.
type Cheque struct {
	Enabled bool   `yaml:"enabled"`
	Payee   string `yaml:"payee"`
	Address string `yaml:"address"`
}

// Options tunes the rendering of a document.
type Options struct {
	// FontSize is the default font size in points.
	FontSize float64

	// FreeTextHeight is reserved above the footer of the last page.
	FreeTextHeight   float64
	AutoWrapFreeText bool
	InvoiceFreeText  string
	ProposalFreeText string

	RepeatHead            bool
	DashBetweenLines      bool
	InvertSenderRecipient bool
	ShowDetails           bool
	DraftWatermark        string
	LogoDir               string

	WithoutVAT         bool
	WithoutVATIfNull   bool
	LocalTax1          bool
	LocalTax2          bool
	PositiveCreditNote bool

	HideChequeAddress       bool
	HidePaymentTerms        bool
	UseCompanyNameOfContact bool

	Cheque Cheque
	Bank   BankAccount
}

// DefaultOptions returns the options of a stock installation.
func DefaultOptions() Options {
	return Options{
		FontSize:       10,
		FreeTextHeight: 5,
		RepeatHead:     true,
	}
}
