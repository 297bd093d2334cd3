package scenario

// extractNotes collects every clause that carries a cautionary or
// conditional phrase, once each, in document order.
func extractNotes(text string) []string {
	notes := []string{}
	seen := make(map[string]struct{})
	for _, c := range splitClauses(text) {
		if !matchesAny(c.text) {
			continue
		}
		note := trimClause(c.text)
		if note == "" {
			continue
		}
		if _, dup := seen[note]; dup {
			continue
		}
		seen[note] = struct{}{}
		notes = append(notes, note)
	}
	return notes
}

func matchesAny(s string) bool {
	for _, re := range notePatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
