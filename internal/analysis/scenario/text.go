package scenario

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// normalize folds full-width digits, Latin letters and punctuation to ASCII
// and composes half-width katakana, so that one grammar covers both forms.
func normalize(text string) string {
	return norm.NFKC.String(text)
}

// span is a half-open byte range [start, end) in normalized text.
type span struct {
	start, end int
}

func (s span) overlaps(o span) bool {
	return s.start < o.end && o.start < s.end
}

// mask blanks every span with spaces of the same byte length so that
// offsets stay valid.
func mask(text string, spans []span) string {
	if len(spans) == 0 {
		return text
	}
	b := []byte(text)
	for _, sp := range spans {
		for i := sp.start; i < sp.end && i < len(b); i++ {
			b[i] = ' '
		}
	}
	return string(b)
}

// clause is one sentence-level unit of a scenario text.
type clause struct {
	span
	text string
}

var clauseBreak = regexp.MustCompile(`[。!?\r\n]+`)

// splitClauses cuts text at sentence terminators and line breaks. Blank
// clauses are dropped.
func splitClauses(text string) []clause {
	var clauses []clause
	start := 0
	emit := func(end int) {
		if strings.TrimSpace(text[start:end]) != "" {
			clauses = append(clauses, clause{span: span{start, end}, text: text[start:end]})
		}
	}
	for _, loc := range clauseBreak.FindAllStringIndex(text, -1) {
		emit(loc[0])
		start = loc[1]
	}
	emit(len(text))
	return clauses
}

// trimClause strips surrounding whitespace, list bullets and terminal
// punctuation.
func trimClause(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "・•*> \t")
	s = strings.TrimRight(s, "。、,.!? \t")
	return strings.TrimSpace(s)
}

// priceToken is a numeral that reads as a price.
type priceToken struct {
	span
	value float64
}

var numeral = regexp.MustCompile(`\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?`)

// findPrices returns the standalone price numerals of text in order.
// Numerals glued to letters, digits or a unit suffix are not prices, nor is
// the minute of a clock reading such as 8:30, and
// tokens that do not parse to a positive finite number are skipped.
func findPrices(text string) []priceToken {
	var out []priceToken
	for _, loc := range numeral.FindAllStringIndex(text, -1) {
		if !standalone(text, loc[0], loc[1]) {
			continue
		}
		v, ok := parsePrice(text[loc[0]:loc[1]])
		if !ok {
			continue
		}
		out = append(out, priceToken{span: span{loc[0], loc[1]}, value: v})
	}
	return out
}

func standalone(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isASCIIAlnum(r) || r == '.' || r == ':' {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isASCIIAlnum(r) || strings.ContainsRune(unitSuffixes, r) {
			return false
		}
	}
	return true
}

func isASCIIAlnum(r rune) bool {
	return r < utf8.RuneSelf && (r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
}

// parsePrice strips thousand separators and converts s. Only positive
// finite values are accepted.
func parsePrice(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}
