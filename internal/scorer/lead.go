// Package scorer computes heuristic lead priority scores from industry and
// job-title keyword matches.
package scorer

import (
	"strings"

	"github.com/sells-group/leadflow/internal/model"
)

// Score components.
const (
	IndustryMatchPoints = 2
	TitleKeywordPoints  = 10
	TitleGenericPoints  = 5
)

// minAbbrevLen is the shortest industry word accepted as an abbreviation of
// a label ("Tech" for "Technology").
const minAbbrevLen = 4

// abbrevStopWords never count as abbreviations.
var abbrevStopWords = map[string]bool{
	"the": true, "and": true, "with": true, "from": true, "general": true,
}

// DefaultIndustries is used when the caller supplies no industry labels.
var DefaultIndustries = []string{"Technology", "Healthcare"}

// genericTitleTerms earn partial title credit when no industry keyword matches.
var genericTitleTerms = []string{"training", "consultant"}

// Score returns the lead's priority: industry match points plus job-title
// points. It has no side effects and is the only scoring entry point.
func Score(lead model.Lead, industries []string) int {
	labels := normalizeLabels(industries)
	if len(labels) == 0 {
		labels = normalizeLabels(DefaultIndustries)
	}

	base := 0
	if industryMatches(strings.ToLower(lead.Industry), labels) {
		base = IndustryMatchPoints
	}

	return base + titleScore(strings.ToLower(lead.JobTitle), labels)
}

// ScoreAll returns a copy of leads with Score recomputed by Score.
func ScoreAll(leads []model.Lead, industries []string) []model.Lead {
	out := make([]model.Lead, len(leads))
	for i, l := range leads {
		l.Score = Score(l, industries)
		out[i] = l
	}
	return out
}

// normalizeLabels lowercases and trims labels, dropping blanks.
func normalizeLabels(industries []string) []string {
	labels := make([]string, 0, len(industries))
	for _, ind := range industries {
		ind = strings.ToLower(strings.TrimSpace(ind))
		if ind != "" {
			labels = append(labels, ind)
		}
	}
	return labels
}

func industryMatches(industry string, labels []string) bool {
	if industry == "" {
		return false
	}
	lead := firstWord(industry)
	for _, label := range labels {
		if strings.Contains(industry, label) {
			return true
		}
		if isAbbrev(lead) && strings.HasPrefix(firstWord(label), lead) {
			return true
		}
	}
	return false
}

func isAbbrev(word string) bool {
	return len(word) >= minAbbrevLen && !abbrevStopWords[word]
}

func titleScore(title string, labels []string) int {
	if title == "" {
		return 0
	}
	for _, label := range labels {
		if kw := firstWord(label); kw != "" && strings.Contains(title, kw) {
			return TitleKeywordPoints
		}
	}
	for _, term := range genericTitleTerms {
		if strings.Contains(title, term) {
			return TitleGenericPoints
		}
	}
	return 0
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
