package cli

import (
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"scenario-parser/internal/models"
)

// FormatPrice formats a price with thousands separators and as many
// decimals as the value carries, e.g. 4317 -> "4,317", 152.25 -> "152.25".
func FormatPrice(price float64) string {
	negative := price < 0
	if negative {
		price = -price
	}

	str := strconv.FormatFloat(price, 'f', -1, 64)
	intPart, decPart, hasDec := strings.Cut(str, ".")

	result := groupThousands(intPart)
	if hasDec {
		result += "." + decPart
	}
	if negative {
		result = "-" + result
	}
	return result
}

func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatZone formats a zone as "lower - upper".
func FormatZone(z models.PriceZone) string {
	return FormatPrice(z.LowerBound) + " - " + FormatPrice(z.UpperBound)
}

// FormatLocalTime formats an optional timestamp, "-" when absent.
func FormatLocalTime(t *models.LocalTime, layout string) string {
	if t == nil {
		return "-"
	}
	if layout == "" {
		layout = models.LocalTimeLayout
	}
	return t.Format(layout)
}

// FormatTimeframe returns a short label for a timeframe.
func FormatTimeframe(tf models.Timeframe) string {
	switch tf {
	case models.TimeframeDaily:
		return "D1"
	case models.TimeframeWeekly:
		return "W1"
	case models.TimeframeMonthly:
		return "MN"
	default:
		return string(tf)
	}
}

// DisplayWidth returns the number of terminal cells s occupies. Wide and
// full-width runes count as two.
func DisplayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

// TruncateString truncates s to at most maxWidth cells with an ellipsis.
func TruncateString(s string, maxWidth int) string {
	if DisplayWidth(s) <= maxWidth {
		return s
	}
	limit := maxWidth - 3
	if maxWidth <= 3 {
		limit = maxWidth
	}

	var b strings.Builder
	used := 0
	for _, r := range s {
		w := DisplayWidth(string(r))
		if used+w > limit {
			break
		}
		b.WriteRune(r)
		used += w
	}
	if maxWidth > 3 {
		b.WriteString("...")
	}
	return b.String()
}

// PadRight pads s with spaces to the given cell width.
func PadRight(s string, length int) string {
	w := DisplayWidth(s)
	if w >= length {
		return s
	}
	return s + strings.Repeat(" ", length-w)
}

// PadLeft pads s with spaces on the left to the given cell width.
func PadLeft(s string, length int) string {
	w := DisplayWidth(s)
	if w >= length {
		return s
	}
	return strings.Repeat(" ", length-w) + s
}
