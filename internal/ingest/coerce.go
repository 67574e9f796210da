package ingest

import (
	"regexp"
	"strconv"
	"strings"

	"projectdeck/pkg/models"
)

// ParseList splits a raw cell into trimmed, non-empty items.
// Semicolon is the preferred separator when present, because single items
// legitimately contain commas ("Redis, clustered" etc).
func ParseList(raw string) []string {
	out := []string{}
	if strings.TrimSpace(raw) == "" {
		return out
	}
	sep := ","
	if strings.Contains(raw, ";") {
		sep = ";"
	}
	for _, item := range strings.Split(raw, sep) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

var brTag = regexp.MustCompile(`(?i)<br\s*/?>`)

// NormalizeLineBreaks rewrites literal <br> markup (optionally self-closed,
// any case) into real newlines. Runs before any line-oriented parser.
func NormalizeLineBreaks(raw string) string {
	if raw == "" {
		return ""
	}
	return brTag.ReplaceAllString(raw, "\n")
}

var leadingInt = regexp.MustCompile(`^[-+]?\d+`)

// CoerceInt parses the leading integer of raw, falling back to def on
// empty or non-numeric input.
func CoerceInt(raw string, def int) int {
	m := leadingInt.FindString(strings.TrimSpace(raw))
	if m == "" {
		return def
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return def
	}
	return n
}

// NormalizeEnum maps raw through a synonym table after lowercasing and
// trimming. Unmatched input yields def.
func NormalizeEnum(raw string, table map[string]string, def string) string {
	if v, ok := table[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return v
	}
	return def
}

// statusSynonyms folds both channels' status vocabularies into the
// canonical enum.
var statusSynonyms = map[string]string{
	"planning":       models.StatusPlanning,
	"plan":           models.StatusPlanning,
	"idea":           models.StatusIdea,
	"concept":        models.StatusIdea,
	"development":    models.StatusDevelopment,
	"in development": models.StatusDevelopment,
	"in progress":    models.StatusDevelopment,
	"building":       models.StatusDevelopment,
	"review":         models.StatusReview,
	"testing":        models.StatusReview,
	"beta":           models.StatusReview,
	"completed":      models.StatusCompleted,
	"done":           models.StatusCompleted,
	"launch":         models.StatusCompleted,
	"launched":       models.StatusCompleted,
	"live":           models.StatusCompleted,
	"on hold":        models.StatusOnHold,
	"on-hold":        models.StatusOnHold,
	"onhold":         models.StatusOnHold,
	"paused":         models.StatusOnHold,
	"maintenance":    models.StatusOnHold,
}

var prioritySynonyms = map[string]string{
	"low":      models.PriorityLow,
	"medium":   models.PriorityMedium,
	"mid":      models.PriorityMedium,
	"high":     models.PriorityHigh,
	"critical": models.PriorityHigh,
}

var monetizationSynonyms = map[string]string{
	"free":         models.MonetizationFree,
	"freemium":     models.MonetizationFreemium,
	"paid":         models.MonetizationPaid,
	"subscription": models.MonetizationSubscription,
	"ads":          models.MonetizationAds,
	"advertising":  models.MonetizationAds,
}

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9\s]`)
	spaceRun     = regexp.MustCompile(`\s+`)
	dashRun      = regexp.MustCompile(`-+`)
)

// Slug derives a lower-kebab identifier from a project name.
// May return "" when the name has no alphanumeric content.
func Slug(name string) string {
	s := strings.ToLower(name)
	s = nonSlugChars.ReplaceAllString(s, "")
	s = spaceRun.ReplaceAllString(strings.TrimSpace(s), "-")
	s = dashRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// nonEmptyLines splits on newlines and drops blank lines, returning every
// remaining line trimmed.
func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
