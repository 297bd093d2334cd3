package scenario

import (
	"regexp"
	"strconv"
	"time"

	"scenario-parser/internal/models"
)

const clockPattern = `(?:(\d{1,2})\s*時(?:\s*(\d{1,2})\s*分)?(?:頃|ごろ)?(?:に|の|には)?\s*)?`

// trendRule reads "[H時] A から [H時] B への上昇"-style trajectories.
// Groups: start hour, start minute, start price, end hour, end minute,
// end price, movement word.
var trendRule = regexp.MustCompile(clockPattern + pricePattern + qualifierPattern +
	`\s*(?:から|→|->|=>)\s*` + clockPattern + pricePattern + qualifierPattern +
	`\s*(?:へ|まで|に|を)?(?:の)?\s*(上昇|下落|反発|反落|戻り|上抜け|下抜け|推移|到達|続伸|続落)`)

// extractTrendLines returns the two-point trajectories of normalized text.
// Clock times are anchored to the analysis date written in the same text;
// without one they stay nil.
func extractTrendLines(text string) []models.TrendLine {
	masked := mask(text, append(zoneSpans(text), dateSpans(text)...))
	anchor := resolveDate(text)

	lines := []models.TrendLine{}
	for _, m := range trendRule.FindAllStringSubmatchIndex(masked, -1) {
		group := func(i int) string {
			if m[2*i] < 0 {
				return ""
			}
			return masked[m[2*i]:m[2*i+1]]
		}
		start, ok := parsePrice(group(3))
		if !ok {
			continue
		}
		end, ok := parsePrice(group(6))
		if !ok {
			continue
		}
		line := models.TrendLine{
			StartPrice:  start,
			EndPrice:    end,
			Description: trimClause(text[m[0]:m[1]]),
		}
		if anchor != nil {
			line.StartTime = clockOn(anchor, group(1), group(2))
			line.EndTime = clockOn(anchor, group(4), group(5))
			if line.StartTime != nil && line.EndTime != nil && line.EndTime.Before(line.StartTime.Time) {
				next := models.LocalTime{Time: line.EndTime.Add(24 * time.Hour)}
				line.EndTime = &next
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// clockOn places hour:minute on the anchor's calendar day.
func clockOn(anchor *models.LocalTime, hour, minute string) *models.LocalTime {
	if hour == "" {
		return nil
	}
	h, err := strconv.Atoi(hour)
	if err != nil {
		return nil
	}
	mi := 0
	if minute != "" {
		if mi, err = strconv.Atoi(minute); err != nil {
			return nil
		}
	}
	if !validClock(h, mi) {
		return nil
	}
	t := models.Date(anchor.Year(), anchor.Month(), anchor.Day(), h, mi)
	return &t
}
