package i18n

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		lang     string
		expected language.Tag
	}{
		{"fr_FR", language.French},
		{"en-US", language.English},
		{"de", language.German},
		{"de_CH", language.German},
		{"", language.French},
		{"not a tag!", language.French},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			got := Match(tt.lang)
			if got != tt.expected {
				t.Errorf("Match(%q) = %v, want %v", tt.lang, got, tt.expected)
			}
		})
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		lang     string
		key      string
		args     []any
		expected string
	}{
		{"fr", "Invoice", nil, "Facture"},
		{"en", "Invoice", nil, "Invoice"},
		{"de", "Invoice", nil, "Rechnung"},
		{"en", "AmountInCurrency", []any{"EUR"}, "Amounts in EUR"},
		{"fr", "VATRateShort", nil, "TVA (%)"},
		{"en", "NoSuchKey", nil, "NoSuchKey"},
	}

	for _, tt := range tests {
		t.Run(tt.lang+"/"+tt.key, func(t *testing.T) {
			l, err := New(tt.lang, "")
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			got := l.T(tt.key, tt.args...)
			if got != tt.expected {
				t.Errorf("T(%q) = %q, want %q", tt.key, got, tt.expected)
			}
		})
	}
}

func TestHas(t *testing.T) {
	l, _ := New("fr", "")
	if !l.Has("PaymentCondition30D") {
		t.Error("Has(PaymentCondition30D) = false, want true")
	}
	if l.Has("PaymentConditionCUSTOM") {
		t.Error("Has(PaymentConditionCUSTOM) = true, want false")
	}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		lang     string
		amount   string
		expected string
	}{
		{"en", "1234.5", "1,234.50"},
		{"en", "-12", "-12.00"},
		{"de", "1234.5", "1.234,50"},
		{"fr", "1234.5", "1 234,50"},
		{"en", "0.005", "0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.lang+"/"+tt.amount, func(t *testing.T) {
			l, _ := New(tt.lang, "")
			got := l.Money(decimal.RequireFromString(tt.amount))
			if got != tt.expected {
				t.Errorf("Money(%s) = %q, want %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestRate(t *testing.T) {
	en, _ := New("en", "")
	if got := en.Rate(decimal.RequireFromString("20")); got != "20%" {
		t.Errorf("Rate(20) = %q, want 20%%", got)
	}
	fr, _ := New("fr", "")
	if got := fr.Rate(decimal.RequireFromString("5.5")); got != "5,5%" {
		t.Errorf("Rate(5.5) = %q, want 5,5%%", got)
	}
}

func TestDate(t *testing.T) {
	d := time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		lang     string
		expected string
	}{
		{"fr", "13/02/2026"},
		{"en", "02/13/2026"},
		{"de", "13.02.2026"},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			l, _ := New(tt.lang, "")
			if got := l.Date(d); got != tt.expected {
				t.Errorf("Date() = %q, want %q", got, tt.expected)
			}
		})
	}

	l, _ := New("fr", "")
	if got := l.Date(time.Time{}); got != "" {
		t.Errorf("Date(zero) = %q, want empty", got)
	}
}

func TestCurrency(t *testing.T) {
	l, err := New("en", "usd")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if l.Currency() != "USD" {
		t.Errorf("Currency() = %q, want USD", l.Currency())
	}

	if _, err := New("en", "XXXX"); err == nil {
		t.Error("New() expected error for invalid currency")
	}
}
