// Package i18n provides the labels and value formatting of rendered
// documents for the built-in languages (French, English, German).
package i18n

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Translator resolves labels and formats values for one output language.
type Translator interface {
	// T returns the label of key, or key itself when the catalog has none.
	T(key string, args ...any) string
	// Has reports whether the catalog knows key.
	Has(key string) bool
	Money(v decimal.Decimal) string
	Rate(v decimal.Decimal) string
	Date(t time.Time) string
	Currency() string
	Language() language.Tag
}

// supported lists the catalog languages; the first one is the default.
var supported = []language.Tag{language.French, language.English, language.German}

var matcher = language.NewMatcher(supported)

var dateLayouts = map[language.Tag]string{
	language.French:  "02/01/2006",
	language.English: "01/02/2006",
	language.German:  "02.01.2006",
}

// Locale is the Translator of the built-in catalog.
type Locale struct {
	tag      language.Tag
	printer  *message.Printer
	currency currency.Unit
}

// New returns the Locale best matching lang. An empty currency code
// defaults to EUR.
func New(lang, currencyCode string) (*Locale, error) {
	tag := Match(lang)

	unit := currency.EUR
	if currencyCode != "" {
		u, err := currency.ParseISO(currencyCode)
		if err != nil {
			return nil, fmt.Errorf("invalid currency %q: %w", currencyCode, err)
		}
		unit = u
	}

	return &Locale{
		tag:      tag,
		printer:  message.NewPrinter(tag, message.Catalog(messages)),
		currency: unit,
	}, nil
}

// Match resolves a requested language (e.g. "fr_FR", "en-US", "de") to one
// of the built-in catalog languages.
func Match(lang string) language.Tag {
	lang = strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
	if lang == "" {
		return supported[0]
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return supported[0]
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return supported[0]
	}
	return supported[idx]
}

func (l *Locale) T(key string, args ...any) string {
	if !l.Has(key) {
		if len(args) == 0 {
			return key
		}
		return key + " " + fmt.Sprint(args...)
	}
	return l.printer.Sprintf(key, args...)
}

func (l *Locale) Has(key string) bool {
	_, ok := index[key]
	return ok
}

// Money formats an amount with two decimals and the grouping of the
// language, without currency symbol.
func (l *Locale) Money(v decimal.Decimal) string {
	return plainSpaces(l.printer.Sprint(number.Decimal(v.Round(2).InexactFloat64(), number.Scale(2))))
}

// Rate formats a percentage rate, e.g. "20%" or "5,5%".
func (l *Locale) Rate(v decimal.Decimal) string {
	return plainSpaces(l.printer.Sprint(number.Decimal(v.InexactFloat64(), number.MaxFractionDigits(3)))) + "%"
}

// Date formats a day in the short layout of the language. The zero time
// yields an empty string.
func (l *Locale) Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayouts[l.tag])
}

// Currency returns the ISO code of the document currency.
func (l *Locale) Currency() string {
	return l.currency.String()
}

// CurrencySymbol returns the localized symbol of the document currency.
func (l *Locale) CurrencySymbol() string {
	return l.printer.Sprint(currency.Symbol(l.currency))
}

func (l *Locale) Language() language.Tag {
	return l.tag
}

// plainSpaces replaces the non-breaking spaces some locales group digits
// with, which the core PDF fonts cannot encode.
func plainSpaces(s string) string {
	return strings.NewReplacer("\u202f", " ", "\u00a0", " ").Replace(s)
}
