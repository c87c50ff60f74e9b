package format

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency formats a whole-unit amount for the storefront currencies.
// Example: Currency(400000, "VND", "vi") => "400.000₫"
func Currency(amount int64, currency, lang string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	switch currency {
	case "VND", "":
		return Number(amount, lang) + "₫"
	case "USD":
		return "$" + Number(amount, "en")
	default:
		return fmt.Sprintf("%s %s", currency, Number(amount, lang))
	}
}

// Number groups digits the way the given locale does ("vi" => 1.234.567).
func Number(n int64, lang string) string {
	return printer(lang).Sprintf("%d", n)
}

func printer(lang string) *message.Printer {
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil || tag == language.Und {
		tag = language.Vietnamese
	}
	return message.NewPrinter(tag)
}

// Date formats a calendar date in a locale-friendly short form.
// Vietnamese uses D/M/YYYY without zero padding.
func Date(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	switch strings.ToLower(lang) {
	case "en":
		return t.Format("Jan 2, 2006")
	default:
		return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
	}
}

// ISODate renders the date portion used in structured data (YYYY-MM-DD).
func ISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// Rating renders a rating with one decimal, e.g. "4.5".
func Rating(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
