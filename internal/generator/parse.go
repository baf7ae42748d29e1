package generator

import (
	"regexp"
	"strings"
)

var (
	numberedItem = regexp.MustCompile(`^\s*(?:\d+[.)]\s*|[-*•]\s+)(.+)$`)
	emphasis     = regexp.MustCompile("(\\*\\*|__|\\*|`)")
	spaces       = regexp.MustCompile(`\s+`)
)

// ParseInsights extracts up to max insight lines from raw model output.
// Numbered or bulleted lines are preferred; numbering gaps in the raw output
// are irrelevant because items are kept in order of appearance and renumbered
// positionally downstream. Falls back to plain non-empty lines when the model
// ignored the list format.
func ParseInsights(raw string, max int) []string {
	lines := strings.Split(raw, "\n")

	var insights []string
	for _, line := range lines {
		if m := numberedItem.FindStringSubmatch(line); m != nil {
			if text := CleanInsight(m[1]); text != "" {
				insights = append(insights, text)
			}
		}
	}

	if len(insights) == 0 {
		for _, line := range lines {
			if text := CleanInsight(line); text != "" {
				insights = append(insights, text)
			}
		}
	}

	if max > 0 && len(insights) > max {
		insights = insights[:max]
	}
	return insights
}

// CleanInsight strips emphasis markers the models like to emit. The terminal
// document formats cannot render them.
func CleanInsight(s string) string {
	s = emphasis.ReplaceAllString(s, "")
	s = spaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
