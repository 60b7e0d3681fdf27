// Package format renders amounts and dates for display.
//
// Amounts use the South Asian numbering system: digits are grouped as
// 1,23,45,678 and large magnitudes are abbreviated to lakhs (L) and
// crores (Cr).
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/myfinances/internal/model"
)

const (
	// ISODate is the layout used for dates on disk and in user input.
	ISODate = "2006-01-02"
	// DisplayDate renders day, abbreviated month and four-digit year.
	DisplayDate = "2 Jan 2006"
	// MonthLabelLayout renders a short month and two-digit year ("Aug 25").
	MonthLabelLayout = "Jan 06"
)

var (
	lakh  = decimal.NewFromInt(100_000)
	crore = decimal.NewFromInt(10_000_000)
)

// Currency renders the magnitude of amount prefixed with symbol.
// The sign is dropped; callers add +/- where it matters (see Signed).
//
//	Currency(9999, "₹")     -> "₹9,999"
//	Currency(100000, "₹")   -> "₹1.0 L"
//	Currency(10000000, "₹") -> "₹1.0 Cr"
func Currency(amount decimal.Decimal, symbol string) string {
	return symbol + Magnitude(amount)
}

// Magnitude is Currency without the symbol.
func Magnitude(amount decimal.Decimal) string {
	abs := amount.Abs()
	switch {
	case abs.GreaterThanOrEqual(crore):
		return Number(abs.Shift(-7), 1, 2) + " Cr"
	case abs.GreaterThanOrEqual(lakh):
		return Number(abs.Shift(-5), 1, 2) + " L"
	default:
		return Number(abs, 0, 2)
	}
}

// Signed renders a transaction amount with a leading + for income and - for expense.
func Signed(amount decimal.Decimal, kind model.Kind, symbol string) string {
	sign := "+"
	if kind == model.KindExpense {
		sign = "-"
	}
	return sign + Currency(amount, symbol)
}

// Number renders d with South Asian digit grouping, rounding half away from
// zero to maxFrac fraction digits and keeping at least minFrac of them.
func Number(d decimal.Decimal, minFrac, maxFrac int32) string {
	s := d.StringFixed(maxFrac)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")
	for len(frac) < int(minFrac) {
		frac += "0"
	}

	out := groupIndian(intPart)
	if frac != "" {
		out += "." + frac
	}
	if neg && strings.Trim(out, "0.,") != "" {
		out = "-" + out
	}
	return out
}

// groupIndian inserts separators: the last three digits form one group,
// every two digits before that form another.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append(groups, head[len(head)-2:])
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append(groups, head)
	}

	var b strings.Builder
	for i := len(groups) - 1; i >= 0; i-- {
		b.WriteString(groups[i])
		b.WriteByte(',')
	}
	b.WriteString(tail)
	return b.String()
}

// Percent renders a percentage with one fraction digit: "43.8%".
func Percent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

// Date renders t as "2 Jan 2006".
func Date(t time.Time) string {
	return t.Format(DisplayDate)
}

// MonthLabel renders the month containing t as "Jan 06".
func MonthLabel(t time.Time) string {
	return t.Format(MonthLabelLayout)
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(ISODate, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// ISODateToDisplay converts "2025-08-03" into "3 Aug 2025".
func ISODateToDisplay(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return Date(t), nil
}

// ParseAmount parses user input such as "1500", "1,500.50" or "₹2,00,000".
// Blank, non-numeric and negative input is rejected with model.ErrInvalidAmount.
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, model.Rupee.Symbol)
	clean = strings.ReplaceAll(clean, ",", "")
	if clean == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", model.ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", model.ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q is negative", model.ErrInvalidAmount, s)
	}
	return d, nil
}
