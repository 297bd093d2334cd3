package cli

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"scenario-parser/internal/models"
)

func newFormatProperties() *gopter.Properties {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	return gopter.NewProperties(parameters)
}

// Property: FormatPrice groups thousands and preserves the value.
//
// For any price in a realistic range the result must:
// 1. Use groups of three digits separated by commas
// 2. Parse back to the same number once commas are removed
func TestProperty_PriceFormatting(t *testing.T) {
	properties := newFormatProperties()
	grouped := regexp.MustCompile(`^-?\d{1,3}(,\d{3})*(\.\d+)?$`)

	properties.Property("FormatPrice groups thousands and round-trips", prop.ForAll(
		func(price float64) bool {
			formatted := FormatPrice(price)
			if !grouped.MatchString(formatted) {
				t.Logf("bad grouping for %v: %s", price, formatted)
				return false
			}
			back, err := strconv.ParseFloat(strings.ReplaceAll(formatted, ",", ""), 64)
			if err != nil || back != price {
				t.Logf("round trip failed for %v: %s", price, formatted)
				return false
			}
			return true
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.Property("integral prices carry no decimals", prop.ForAll(
		func(n int64) bool {
			return !strings.Contains(FormatPrice(float64(n)), ".")
		},
		gen.Int64Range(0, 1e12),
	))

	properties.TestingRun(t)
}

// Property: padding reaches exactly the requested cell width for any
// mix of ASCII and CJK text, and truncation never exceeds it.
func TestProperty_DisplayWidthPadding(t *testing.T) {
	properties := newFormatProperties()
	pieces := []string{"a", "Z", "4", " ", "日", "足", "サ", "ポ", "ー", "ト", "ｻ", "１"}
	textGen := gen.SliceOf(gen.IntRange(0, len(pieces)-1)).Map(func(idx []int) string {
		var b strings.Builder
		for _, i := range idx {
			b.WriteString(pieces[i])
		}
		return b.String()
	})

	properties.Property("PadRight and PadLeft reach the target width", prop.ForAll(
		func(s string, extra int) bool {
			target := DisplayWidth(s) + extra
			return DisplayWidth(PadRight(s, target)) == target &&
				DisplayWidth(PadLeft(s, target)) == target &&
				strings.HasPrefix(PadRight(s, target), s) &&
				strings.HasSuffix(PadLeft(s, target), s)
		},
		textGen,
		gen.IntRange(0, 20),
	))

	properties.Property("TruncateString stays within the limit", prop.ForAll(
		func(s string, limit int) bool {
			out := TruncateString(s, limit)
			if DisplayWidth(s) <= limit {
				return out == s
			}
			return DisplayWidth(out) <= limit
		},
		textGen,
		gen.IntRange(0, 30),
	))

	properties.TestingRun(t)
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{4317, "4,317"},
		{152.25, "152.25"},
		{999, "999"},
		{1000, "1,000"},
		{1234567.5, "1,234,567.5"},
		{-4218, "-4,218"},
		{0, "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.in))
	}
}

func TestDisplayWidth(t *testing.T) {
	assert.Equal(t, 4, DisplayWidth("GOLD"))
	assert.Equal(t, 4, DisplayWidth("日足"))
	assert.Equal(t, 1, DisplayWidth("ｻ"))
	assert.Equal(t, 2, DisplayWidth("１"))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "日足...", TruncateString("日足ベースのサポート", 7))
	assert.Equal(t, "ab", TruncateString("abcdef", 2))
}

func TestFormatHelpers(t *testing.T) {
	z := models.NewPriceZone(4320, 4317, models.ZoneSupport, "")
	assert.Equal(t, "4,317 - 4,320", FormatZone(z))

	assert.Equal(t, "-", FormatLocalTime(nil, ""))
	lt := models.Date(2025, 10, 21, 8, 0)
	assert.Equal(t, "2025-10-21T08:00:00", FormatLocalTime(&lt, ""))
	assert.Equal(t, "2025/10/21", FormatLocalTime(&lt, "2006/01/02"))

	assert.Equal(t, "D1", FormatTimeframe(models.TimeframeDaily))
	assert.Equal(t, "W1", FormatTimeframe(models.TimeframeWeekly))
	assert.Equal(t, "MN", FormatTimeframe(models.TimeframeMonthly))
}
