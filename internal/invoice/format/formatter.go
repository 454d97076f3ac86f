// Package format holds display formatting for invoices: currency and date
// strings plus the invoice number template.
package format

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var seqPadRe = regexp.MustCompile(`\{SEQ(\d+)\}`)

// DefaultNumberTemplate matches the legacy numbering scheme.
const DefaultNumberTemplate = "{SEQ3}/VI/AGS-I/{YYYY}"

var localeByCurrency = map[string]language.Tag{
	"USD": language.AmericanEnglish,
	"EUR": language.MustParse("en-150"),
	"GBP": language.BritishEnglish,
	"JPY": language.Japanese,
	"IDR": language.Indonesian,
	"SGD": language.MustParse("en-SG"),
	"MYR": language.Malay,
}

var symbolByCurrency = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"IDR": "Rp",
	"SGD": "S$",
	"MYR": "RM",
}

// Currency renders an amount with the currency's symbol and locale-aware
// grouping. IDR and JPY render without decimal places.
func Currency(amount float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	tag, ok := localeByCurrency[code]
	if !ok {
		tag = language.AmericanEnglish
	}
	p := message.NewPrinter(tag)

	symbol := symbolByCurrency[code]
	if symbol == "" {
		symbol = code + " "
	}

	if zeroDecimal(code) {
		return symbol + p.Sprintf("%d", int64(math.Round(amount)))
	}
	return symbol + p.Sprintf("%.2f", amount)
}

// Symbol returns just the currency symbol.
func Symbol(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if symbol, ok := symbolByCurrency[code]; ok {
		return symbol
	}
	return code
}

func zeroDecimal(code string) bool {
	return code == "IDR" || code == "JPY"
}

// Date renders a date in the long form used on the printed invoice.
func Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("January 2, 2006")
}

// InvoiceNumber formats a human-readable invoice number based on a template,
// invoice issue time, and monotonic sequence.
//
// This function is PURE:
// - No side effects
// - No DB access
// - Fully deterministic
func InvoiceNumber(template string, issuedAt time.Time, seq int64) (string, error) {
	if template == "" {
		return "", fmt.Errorf("invoice number template is empty")
	}

	if seq <= 0 {
		return "", fmt.Errorf("invalid invoice sequence: %d", seq)
	}

	out := template

	// Date tokens
	out = strings.ReplaceAll(out, "{YYYY}", issuedAt.Format("2006"))
	out = strings.ReplaceAll(out, "{YY}", issuedAt.Format("06"))
	out = strings.ReplaceAll(out, "{MM}", issuedAt.Format("01"))
	out = strings.ReplaceAll(out, "{DD}", issuedAt.Format("02"))

	// Simple sequence
	out = strings.ReplaceAll(out, "{SEQ}", strconv.FormatInt(seq, 10))

	// Padded sequence
	out = seqPadRe.ReplaceAllStringFunc(out, func(m string) string {
		match := seqPadRe.FindStringSubmatch(m)
		if len(match) != 2 {
			return m // should never happen
		}

		width, err := strconv.Atoi(match[1])
		if err != nil || width <= 0 {
			return m
		}

		return fmt.Sprintf("%0*d", width, seq)
	})

	// Final safety check: unresolved tokens
	if strings.Contains(out, "{") || strings.Contains(out, "}") {
		return "", fmt.Errorf("unresolved token in invoice format: %s", out)
	}

	return out, nil
}
