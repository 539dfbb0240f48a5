package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

// entry holds one label in every built-in language.
type entry struct {
	key        string
	fr, en, de string
}

// entries is the built-in catalog. Labels taking arguments use fmt verbs.
var entries = []entry{
	// Titles
	{"Invoice", "Facture", "Invoice", "Rechnung"},
	{"InvoiceReplacement", "Facture de remplacement", "Replacement invoice", "Ersatzrechnung"},
	{"InvoiceAvoir", "Avoir", "Credit note", "Gutschrift"},
	{"InvoiceDeposit", "Facture d'acompte", "Deposit invoice", "Anzahlungsrechnung"},
	{"InvoiceProFormat", "Facture proforma", "Proforma invoice", "Proformarechnung"},
	{"CommercialProposal", "Proposition commerciale", "Commercial proposal", "Angebot"},

	// Page header
	{"Ref", "Réf.", "Ref.", "Nr."},
	{"RefCustomer", "Réf. client", "Customer ref.", "Kundenreferenz"},
	{"DateInvoice", "Date facturation", "Invoice date", "Rechnungsdatum"},
	{"DateEcheance", "Date échéance", "Due date", "Fälligkeitsdatum"},
	{"Date", "Date", "Date", "Datum"},
	{"DateEndPropal", "Date fin validité", "Validity end date", "Gültig bis"},
	{"CustomerCode", "Code client", "Customer code", "Kundennummer"},
	{"ReplacementInvoice", "Facture de remplacement de", "Replacement of invoice", "Ersatz für Rechnung"},
	{"CorrectionInvoice", "Correction de la facture", "Correction of invoice", "Korrektur der Rechnung"},
	{"ReplacementByInvoice", "Remplacée par la facture", "Replaced by invoice", "Ersetzt durch Rechnung"},
	{"BillFrom", "Émetteur", "Bill from", "Absender"},
	{"BillTo", "Adressé à", "Bill to", "Empfänger"},
	{"VATNumber", "Num. TVA", "VAT number", "USt-IdNr."},
	{"ErrorLogoFileNotFound", "Le fichier logo '%s' n'a pas été trouvé", "Logo file '%s' was not found", "Logodatei '%s' wurde nicht gefunden"},
	{"ErrorGoToGlobalSetup", "Vérifiez la configuration de la société", "Check the company setup", "Prüfen Sie die Firmeneinstellungen"},

	// Lines table
	{"AmountInCurrency", "Montants exprimés en %s", "Amounts in %s", "Beträge in %s"},
	{"Designation", "Désignation", "Description", "Bezeichnung"},
	{"PriceUHT", "P.U. HT", "U.P. (net)", "E-Preis netto"},
	{"ReductionShort", "Réd.", "Disc.", "Rab."},
	{"VATRateShort", "TVA (%%)", "VAT (%%)", "MwSt. (%%)"},
	{"VAT", "TVA", "VAT", "MwSt."},
	{"PrixHT", "Prix HT", "Price (net)", "Preis netto"},
	{"PrixTTC", "Prix TTC", "Price (gross)", "Preis brutto"},

	// Totals
	{"TotalHT", "Total HT", "Total (net)", "Gesamt netto"},
	{"TotalVAT", "Total TVA", "Total VAT", "MwSt. gesamt"},
	{"TotalTTC", "Total TTC", "Total (gross)", "Gesamt brutto"},
	{"TotalTTCToYourCredit", "Total TTC à votre crédit", "Total to your credit", "Gesamtbetrag zu Ihren Gunsten"},
	{"TotalLT1", "Total taxe 2", "Total tax 2", "Steuer 2 gesamt"},
	{"TotalLT2", "Total taxe 3", "Total tax 3", "Steuer 3 gesamt"},
	{"TotalLT1ES", "Total RE", "Total RE", "Total RE"},
	{"TotalLT2ES", "Total IRPF", "Total IRPF", "Total IRPF"},
	{"NonPercuRecuperable", "Non perçu récupérable", "Not perceived recoverable", "Nicht erhoben erstattungsfähig"},
	{"Paid", "Payé", "Paid", "Bezahlt"},
	{"AlreadyPaid", "Déjà réglé", "Already paid", "Bereits bezahlt"},
	{"CreditNotes", "Avoirs", "Credit notes", "Gutschriften"},
	{"EscompteOffered", "Escompte accordé", "Discount offered", "Gewährtes Skonto"},
	{"RemainderToPay", "Reste à payer", "Remaining unpaid", "Offener Betrag"},
	{"AllOptions", "Les options ne sont pas comprises dans le total", "Options are not included in the total", "Optionen sind nicht im Gesamtbetrag enthalten"},

	// Payments table
	{"PaymentsAlreadyDone", "Versements déjà effectués", "Payments already done", "Bereits erfolgte Zahlungen"},
	{"Payment", "Règlement", "Payment", "Zahlung"},
	{"Amount", "Montant", "Amount", "Betrag"},
	{"Type", "Type", "Type", "Art"},
	{"Num", "Numéro", "Number", "Nummer"},
	{"CreditNote", "Avoir", "Credit note", "Gutschrift"},
	{"Deposit", "Acompte", "Deposit", "Anzahlung"},
	{"UnknownType", "Type inconnu", "Unknown type", "Unbekannte Art"},

	// Info block
	{"PaymentConditions", "Conditions de règlement", "Payment terms", "Zahlungsbedingungen"},
	{"PaymentMode", "Mode de règlement", "Payment type", "Zahlungsart"},
	{"ErrorNoPaiementModeConfigured", "Aucun mode de règlement défini", "No payment type defined", "Keine Zahlungsart definiert"},
	{"PaymentByChequeOrderedTo", "Règlement par chèque à l'ordre de %s envoyé à", "Cheque payment to the order of %s sent to", "Zahlung per Scheck an %s, zu senden an"},
	{"VATIsNotUsedForInvoice", "TVA non applicable, art-293B du CGI", "VAT not applicable, art-293B of CGI", "Keine MwSt. ausgewiesen, Art. 293B CGI"},
	{"VATExemptSwiss", "Exonération de TVA en application de l'article 262 I du code général des impôts", "VAT exemption under article 262 I of the French tax code", "MwSt.-Befreiung nach Artikel 262 I des französischen Steuergesetzbuchs"},
	{"VATReverseCharge", "TVA due par le preneur, article 283-2 du Code général des impôts", "VAT due by the customer, article 283-2 of the French tax code", "Steuerschuldnerschaft des Leistungsempfängers, Artikel 283-2 CGI"},
	{"Bank", "Banque", "Bank", "Bank"},
	{"IBAN", "IBAN", "IBAN", "IBAN"},
	{"BIC", "BIC/SWIFT", "BIC/SWIFT", "BIC/SWIFT"},
	{"AccountOwner", "Titulaire du compte", "Account owner", "Kontoinhaber"},

	{"PaymentConditionRECEP", "À réception", "Due upon receipt", "Sofort fällig"},
	{"PaymentCondition30D", "30 jours", "30 days", "30 Tage"},
	{"PaymentCondition30DENDMONTH", "30 jours fin de mois", "30 days end of month", "30 Tage zum Monatsende"},
	{"PaymentCondition60D", "60 jours", "60 days", "60 Tage"},
	{"PaymentCondition60DENDMONTH", "60 jours fin de mois", "60 days end of month", "60 Tage zum Monatsende"},
	{"PaymentConditionPT_ORDER", "À commande", "On order", "Bei Bestellung"},
	{"PaymentConditionPT_DELIVERY", "À livraison", "On delivery", "Bei Lieferung"},
	{"PaymentCondition10D", "10 jours", "10 days", "10 Tage"},

	{"PaymentTypeCB", "Carte bancaire", "Credit card", "Kreditkarte"},
	{"PaymentTypeCHQ", "Chèque", "Cheque", "Scheck"},
	{"PaymentTypeLIQ", "Espèces", "Cash", "Bar"},
	{"PaymentTypePRE", "Prélèvement", "Direct debit", "Lastschrift"},
	{"PaymentTypeVIR", "Virement", "Bank transfer", "Überweisung"},
	{"PaymentTypeShortCB", "CB", "Card", "Karte"},
	{"PaymentTypeShortCHQ", "Chèque", "Cheque", "Scheck"},
	{"PaymentTypeShortLIQ", "Espèces", "Cash", "Bar"},
	{"PaymentTypeShortPRE", "Prélèv.", "Debit", "Lastschr."},
	{"PaymentTypeShortVIR", "Virement", "Transfer", "Überw."},

	// Footer
	{"RegisteredOffice", "Siège social", "Registered office", "Firmensitz"},
	{"Phone", "Tél.", "Phone", "Tel."},
	{"Fax", "Fax", "Fax", "Fax"},
	{"VATIntraShort", "TVA intra.", "VAT ID", "USt-IdNr."},
	{"ProfId1", "Id. prof. 1", "Prof Id 1", "Prof. Id 1"},
	{"ProfId2", "Id. prof. 2", "Prof Id 2", "Prof. Id 2"},
	{"ProfId3", "Id. prof. 3", "Prof Id 3", "Prof. Id 3"},
	{"ProfId4", "Id. prof. 4", "Prof Id 4", "Prof. Id 4"},
	{"ProfId1FR", "SIREN", "SIREN", "SIREN"},
	{"ProfId2FR", "SIRET", "SIRET", "SIRET"},
	{"ProfId3FR", "NAF-APE", "NAF-APE", "NAF-APE"},
	{"ProfId4FR", "RCS/RM", "RCS/RM", "RCS/RM"},
	{"ProfId1DE", "USt-Nr.", "Tax number", "Steuernummer"},
	{"ProfId2DE", "Handelsregister", "Trade register", "Handelsregister"},
	{"ProfId3DE", "Registergericht", "Register court", "Registergericht"},

	// Document metadata
	{"Draft", "BROUILLON", "DRAFT", "ENTWURF"},
}

var (
	index = make(map[string]struct{}, len(entries))

	messages = newCatalog()
)

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.French))
	for _, e := range entries {
		index[e.key] = struct{}{}
		b.SetString(language.French, e.key, e.fr)
		b.SetString(language.English, e.key, e.en)
		b.SetString(language.German, e.key, e.de)
	}
	return b
}
