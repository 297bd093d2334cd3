package scenario

import (
	"scenario-parser/internal/models"
)

// timeframeMention is a timeframe token found in a clause. Unknown tokens
// are kept so that they can veto the levels they govern.
type timeframeMention struct {
	span
	timeframe models.Timeframe
	known     bool
}

func findTimeframes(text string) []timeframeMention {
	var out []timeframeMention
	for _, loc := range timeframeToken.FindAllStringIndex(text, -1) {
		tf, ok := lookupTimeframe(text[loc[0]:loc[1]])
		out = append(out, timeframeMention{span: span{loc[0], loc[1]}, timeframe: tf, known: ok})
	}
	return out
}

// extractLevels returns every level of one polarity in document order.
// Zone expressions, instrument names and dates are masked first so that
// their numerals are not read as single levels.
func (p *Parser) extractLevels(text string, want models.LevelType) []models.PriceLevel {
	claimed := append(zoneSpans(text), p.symbols.spans(text)...)
	claimed = append(claimed, dateSpans(text)...)
	masked := mask(text, claimed)

	levels := []models.PriceLevel{}
	for _, c := range splitClauses(text) {
		body := masked[c.start:c.end]
		levels = append(levels, p.clauseLevels(body, trimClause(c.text), want)...)
	}
	return levels
}

// clauseLevels reads the levels of one clause. Each polarity keyword opens
// a segment running to the next keyword; numerals ahead of the first
// keyword belong to it.
func (p *Parser) clauseLevels(body, description string, want models.LevelType) []models.PriceLevel {
	keywords := polarityKeyword.FindAllStringIndex(body, -1)
	if len(keywords) == 0 {
		return nil
	}
	mentions := findTimeframes(body)

	var out []models.PriceLevel
	for _, price := range findPrices(body) {
		seg := segmentOf(price.start, keywords)
		lt, ok := lookupPolarity(body[keywords[seg][0]:keywords[seg][1]])
		if !ok || lt != want {
			continue
		}
		segment := span{0, len(body)}
		if seg > 0 {
			segment.start = keywords[seg][0]
		}
		if seg+1 < len(keywords) {
			segment.end = keywords[seg+1][0]
		}
		tf, ok := p.timeframeFor(price, segment, mentions)
		if !ok {
			p.logger.Debug().
				Float64("price", price.value).
				Str("clause", description).
				Msg("Level dropped: timeframe unresolved")
			continue
		}
		out = append(out, models.PriceLevel{
			Price:       price.value,
			LevelType:   lt,
			Timeframe:   tf,
			Description: description,
		})
	}
	return out
}

// segmentOf returns the index of the last keyword starting at or before
// pos, or 0 when pos precedes every keyword.
func segmentOf(pos int, keywords [][]int) int {
	seg := 0
	for i, kw := range keywords {
		if kw[0] <= pos {
			seg = i
		}
	}
	return seg
}

// timeframeFor picks the timeframe governing a numeral: the closest
// mention before it in the clause, else the first mention after it inside
// its segment, else the configured default. An unknown mention or an
// unset default rejects the numeral.
func (p *Parser) timeframeFor(price priceToken, segment span, mentions []timeframeMention) (models.Timeframe, bool) {
	var chosen *timeframeMention
	for i := range mentions {
		if mentions[i].end <= price.start {
			chosen = &mentions[i]
		}
	}
	if chosen == nil {
		for i := range mentions {
			m := &mentions[i]
			if m.start >= price.end && m.start < segment.end {
				chosen = m
				break
			}
		}
	}
	if chosen == nil {
		if p.defaultTimeframe == "" {
			return "", false
		}
		return p.defaultTimeframe, true
	}
	if !chosen.known {
		return "", false
	}
	return chosen.timeframe, true
}
