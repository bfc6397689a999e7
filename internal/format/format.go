// Package format holds the display helpers shared by the portal templates.
package format

import (
	"errors"
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidAmount = errors.New("invalid amount")

var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
}

// Money renders an amount in minor units, e.g. Money(123456, "EUR") == "€1,234.56".
func Money(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	symbol, ok := currencySymbols[strings.ToUpper(currency)]
	if !ok {
		symbol = strings.ToUpper(currency) + " "
	}
	return fmt.Sprintf("%s%s%s.%02d", sign, symbol, groupThousands(cents/100), cents%100)
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// ParseMoney turns user input like "1,250.5" or "€20" into minor units.
func ParseMoney(input string) (int64, error) {
	s := strings.TrimSpace(input)
	for _, symbol := range currencySymbols {
		s = strings.TrimPrefix(s, symbol)
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, ErrInvalidAmount
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if hasFrac && (len(frac) == 0 || len(frac) > 2) {
		return 0, ErrInvalidAmount
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units < 0 || units > math.MaxInt64/100 {
		return 0, ErrInvalidAmount
	}
	var minor int64
	if hasFrac {
		if len(frac) == 1 {
			frac += "0"
		}
		minor, err = strconv.ParseInt(frac, 10, 64)
		if err != nil || minor < 0 {
			return 0, ErrInvalidAmount
		}
	}
	return units*100 + minor, nil
}

func Date(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("Mon, 02 Jan 2006")
}

func DateTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("02 Jan 2006, 15:04")
}

// Percent returns part/total as a whole percentage clamped to 0..100.
func Percent(part, total int) int {
	if total <= 0 || part <= 0 {
		return 0
	}
	p := int(math.Round(float64(part) * 100 / float64(total)))
	if p > 100 {
		return 100
	}
	return p
}

// Label turns a status value like "already_checked_in" into "Already checked in".
func Label(status string) string {
	s := strings.ReplaceAll(status, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Badge maps a status value to the CSS badge variant used by the templates.
func Badge(status string) string {
	switch status {
	case "paid", "completed", "active", "accepted", "on_sale", "valid":
		return "badge-green"
	case "pending", "invited", "sent", "opened", "draft":
		return "badge-yellow"
	case "refunded", "failed", "declined", "cancelled", "unknown":
		return "badge-red"
	case "sold_out", "already_checked_in":
		return "badge-blue"
	default:
		return "badge-gray"
	}
}

// MaskIBAN hides everything but the last four characters of an account
// number.
func MaskIBAN(iban string) string {
	compact := strings.ReplaceAll(iban, " ", "")
	if len(compact) <= 4 {
		return compact
	}
	return strings.Repeat("•", 4) + " " + compact[len(compact)-4:]
}

// Funcs returns the template helpers bound to the organizer's currency.
func Funcs(currency string) template.FuncMap {
	return template.FuncMap{
		"money":    func(cents int64) string { return Money(cents, currency) },
		"date":     Date,
		"datetime": DateTime,
		"percent":  Percent,
		"label":    Label,
		"badge":    Badge,
		"maskIBAN": MaskIBAN,
		"add":      func(a, b int) int { return a + b },
		"lower":    strings.ToLower,
		"deref":    deref,
	}
}

func deref(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
