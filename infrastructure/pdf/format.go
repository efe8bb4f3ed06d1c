package pdf

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Fallback display strings for missing or malformed optional fields.
// Missing data degrades to these rather than aborting generation.
const (
	fallbackNotSet       = "Not set"
	fallbackNotSpecified = "Not specified"
	fallbackNA           = "N/A"
)

// evidencePlaceholder replaces comments that carry nothing but an
// attachment link.
const evidencePlaceholder = "Evidence attached"

// minMeaningfulComment is the shortest cleaned comment still worth printing.
// Anything shorter (e.g. a stray "See" left after stripping a URL) collapses
// to the placeholder.
const minMeaningfulComment = 5

var urlPattern = regexp.MustCompile(`https?://\S+`)

// CleanComment strips embedded URLs from free-text comments before
// rendering. Whitespace is collapsed and the result trimmed; if nothing
// meaningful remains the placeholder is returned instead.
func CleanComment(comment string) string {
	cleaned := urlPattern.ReplaceAllString(comment, "")
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if len(cleaned) < minMeaningfulComment {
		return evidencePlaceholder
	}
	return cleaned
}

// formatDate renders a date for display, falling back for zero values.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return fallbackNotSet
	}
	return t.Format("2 January 2006")
}

// formatDatePtr renders an optional date.
func formatDatePtr(t *time.Time) string {
	if t == nil {
		return fallbackNotSet
	}
	return formatDate(*t)
}

// formatDateRange renders a scope time frame.
func formatDateRange(from, to time.Time) string {
	if from.IsZero() && to.IsZero() {
		return fallbackNotSpecified
	}
	return fmt.Sprintf("%s to %s", formatDate(from), formatDate(to))
}

// orFallback substitutes a fallback string for blank values.
func orFallback(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// titleCaseEnum turns an UPPER_SNAKE enum value into a display label,
// e.g. "MID_TERM" -> "Mid Term".
func titleCaseEnum(value string) string {
	if value == "" {
		return fallbackNotSpecified
	}
	words := strings.Split(strings.ToLower(value), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// yesNo renders an endorsement flag.
func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
