package scenario

import (
	"regexp"
	"sort"

	"scenario-parser/internal/models"
)

// zoneRule is one zone phrasing. lower, upper and polarity are submatch
// indexes; the bounds are reordered after parsing.
type zoneRule struct {
	name               string
	re                 *regexp.Regexp
	first, second, pol int
}

var zoneRules = []zoneRule{
	{
		// 4317近辺～4320近辺のサポート帯
		name:  "range",
		re:    regexp.MustCompile(pricePattern + qualifierPattern + rangeSepPattern + pricePattern + qualifierPattern + `\s*(?:の|が|は|を|で)?\s*` + zonePolPattern + zoneWordPattern),
		first: 1, second: 2, pol: 3,
	},
	{
		// 4317近辺と4320近辺の間がサポート帯
		name:  "between",
		re:    regexp.MustCompile(pricePattern + qualifierPattern + `\s*と\s*` + pricePattern + qualifierPattern + `\s*の間\s*(?:が|は|の)?\s*` + zonePolPattern + zoneWordPattern),
		first: 1, second: 2, pol: 3,
	},
	{
		// サポート帯は4317～4320
		name:  "leading",
		re:    regexp.MustCompile(zonePolPattern + zoneWordPattern + `\s*(?:は|が|:)?\s*` + pricePattern + qualifierPattern + rangeSepPattern + pricePattern + qualifierPattern),
		first: 2, second: 3, pol: 1,
	},
}

// zoneMatch is a zone together with the text it was read from.
type zoneMatch struct {
	span
	zone models.PriceZone
}

// findZones applies every zone rule to normalized text. A match that
// overlaps one accepted by an earlier rule is dropped. Results are in
// document order.
func findZones(text string) []zoneMatch {
	var out []zoneMatch
	for _, rule := range zoneRules {
		for _, m := range rule.re.FindAllStringSubmatchIndex(text, -1) {
			sp := span{m[0], m[1]}
			if overlapsAny(sp, out) {
				continue
			}
			zone, ok := rule.build(text, m)
			if !ok {
				continue
			}
			out = append(out, zoneMatch{span: sp, zone: zone})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].start < out[j].start })
	return out
}

func (r zoneRule) build(text string, m []int) (models.PriceZone, bool) {
	group := func(i int) string { return text[m[2*i]:m[2*i+1]] }
	a, ok := parsePrice(group(r.first))
	if !ok {
		return models.PriceZone{}, false
	}
	b, ok := parsePrice(group(r.second))
	if !ok {
		return models.PriceZone{}, false
	}
	zt, ok := lookupZonePolarity(group(r.pol))
	if !ok {
		return models.PriceZone{}, false
	}
	return models.NewPriceZone(a, b, zt, trimClause(text[m[0]:m[1]])), true
}

func overlapsAny(sp span, matches []zoneMatch) bool {
	for _, z := range matches {
		if sp.overlaps(z.span) {
			return true
		}
	}
	return false
}

// zoneSpans returns the text ranges claimed by zone expressions.
func zoneSpans(text string) []span {
	matches := findZones(text)
	out := make([]span, len(matches))
	for i, z := range matches {
		out[i] = z.span
	}
	return out
}

// extractZones returns the zones of one type in document order.
func extractZones(text string, zoneType models.ZoneType) []models.PriceZone {
	zones := []models.PriceZone{}
	for _, z := range findZones(text) {
		if z.zone.ZoneType == zoneType {
			zones = append(zones, z.zone)
		}
	}
	return zones
}
