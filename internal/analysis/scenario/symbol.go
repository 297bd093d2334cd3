package scenario

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SymbolResolver maps instrument names found in text to canonical
// identifiers. It is immutable after construction.
type SymbolResolver struct {
	pattern *regexp.Regexp
	symbols map[string]string // lower-cased normalized alias -> identifier
}

// NewSymbolResolver compiles an alias table. Aliases are normalized the
// same way as scenario text; empty aliases or identifiers are ignored.
func NewSymbolResolver(aliases map[string]string) *SymbolResolver {
	symbols := make(map[string]string, len(aliases))
	for alias, symbol := range aliases {
		alias = strings.TrimSpace(normalize(alias))
		symbol = strings.TrimSpace(symbol)
		if alias == "" || symbol == "" {
			continue
		}
		symbols[strings.ToLower(alias)] = symbol
	}

	keys := make([]string, 0, len(symbols))
	for k := range symbols {
		keys = append(keys, k)
	}
	// Longest first so that an alternation prefers the most specific alias
	// at any given position.
	sort.Slice(keys, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(keys[i]), utf8.RuneCountInString(keys[j])
		if li != lj {
			return li > lj
		}
		return keys[i] < keys[j]
	})

	r := &SymbolResolver{symbols: symbols}
	if len(keys) == 0 {
		return r
	}
	alts := make([]string, len(keys))
	for i, k := range keys {
		q := regexp.QuoteMeta(k)
		if isASCIIWord(k) {
			q = `\b` + q + `\b`
		}
		alts[i] = q
	}
	r.pattern = regexp.MustCompile(`(?i)(?:` + strings.Join(alts, "|") + `)`)
	return r
}

// Resolve returns the identifier of the first alias in text, or nil. An
// alias that is only part of a longer katakana word does not count.
func (r *SymbolResolver) Resolve(text string) *string {
	if r == nil || r.pattern == nil {
		return nil
	}
	text = normalize(text)
	found := r.spans(text)
	if len(found) == 0 {
		return nil
	}
	symbol, ok := r.symbols[strings.ToLower(text[found[0].start:found[0].end])]
	if !ok {
		return nil
	}
	return &symbol
}

// spans returns every alias occurrence in normalized text.
func (r *SymbolResolver) spans(text string) []span {
	if r == nil || r.pattern == nil {
		return nil
	}
	var out []span
	for _, loc := range r.pattern.FindAllStringIndex(text, -1) {
		if splitsKatakanaWord(text, loc[0], loc[1]) {
			continue
		}
		out = append(out, span{loc[0], loc[1]})
	}
	return out
}

// splitsKatakanaWord reports whether text[start:end] begins or ends inside
// a longer katakana word, as ダウ does in ダウントレンド.
func splitsKatakanaWord(text string, start, end int) bool {
	if start > 0 {
		first, _ := utf8.DecodeRuneInString(text[start:])
		prev, _ := utf8.DecodeLastRuneInString(text[:start])
		if isKatakana(first) && isKatakana(prev) {
			return true
		}
	}
	if end < len(text) {
		last, _ := utf8.DecodeLastRuneInString(text[:end])
		next, _ := utf8.DecodeRuneInString(text[end:])
		if isKatakana(last) && isKatakana(next) {
			return true
		}
	}
	return false
}

// isKatakana includes the prolonged sound mark, which Unicode files under
// the common script.
func isKatakana(r rune) bool {
	return r == 'ー' || unicode.Is(unicode.Katakana, r)
}

// Aliases returns a copy of the alias table keyed by normalized alias.
func (r *SymbolResolver) Aliases() map[string]string {
	if r == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(r.symbols))
	for k, v := range r.symbols {
		out[k] = v
	}
	return out
}

// isASCIIWord reports whether s starts and ends with an ASCII word rune,
// in which case \b anchors are meaningful around it.
func isASCIIWord(s string) bool {
	first, _ := utf8.DecodeRuneInString(s)
	last, _ := utf8.DecodeLastRuneInString(s)
	return isWordRune(first) && isWordRune(last)
}

func isWordRune(r rune) bool {
	return isASCIIAlnum(r) || r == '_'
}
