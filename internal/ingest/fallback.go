package ingest

import (
	"encoding/json"
	"regexp"
	"strings"

	"projectdeck/pkg/models"
)

// The four structured cell parsers share one contract: strict JSON decode
// first, and on failure a line-oriented heuristic specific to the field's
// shape. Neither stage may panic, and a line that fits no pattern is
// skipped rather than failing the cell.

var bulletPrefix = regexp.MustCompile(`^[•\-*]\s*`)

// ParseTimeline decodes a timeline cell. Unparseable but non-empty input
// degrades to a single synthetic phase so the timeline is never lost
// entirely.
func ParseTimeline(raw string) []models.TimelinePhase {
	if strings.TrimSpace(raw) == "" {
		return []models.TimelinePhase{}
	}
	var phases []models.TimelinePhase
	if err := json.Unmarshal([]byte(raw), &phases); err == nil {
		if phases == nil {
			phases = []models.TimelinePhase{}
		}
		return phases
	}
	return []models.TimelinePhase{{Phase: "Development", Duration: "6 months", Status: "pending"}}
}

// ParsePricing decodes a pricing cell into tier-key → price description.
// Keys are normalized through the tier synonym table.
func ParsePricing(raw string) map[string]string {
	if strings.TrimSpace(raw) == "" {
		return map[string]string{}
	}
	var tiers map[string]string
	if err := json.Unmarshal([]byte(raw), &tiers); err == nil {
		if tiers == nil {
			tiers = map[string]string{}
		}
		return tiers
	}
	return pricingFromLines(raw)
}

func pricingFromLines(raw string) map[string]string {
	pricing := map[string]string{}
	for _, line := range nonEmptyLines(NormalizeLineBreaks(raw)) {
		clean := bulletPrefix.ReplaceAllString(line, "")
		lower := strings.ToLower(clean)

		if strings.Contains(lower, "pricing structure") || strings.Contains(lower, "pricing model") {
			continue
		}

		if strings.Contains(clean, ":") {
			parts := strings.Split(clean, ":")
			tierName := strings.ToLower(strings.TrimSpace(parts[0]))
			pricing[tierKey(tierName)] = strings.TrimSpace(parts[1])
			continue
		}

		// A priced line without a colon: guess the tier from keywords,
		// keep the whole line as the description.
		if strings.Contains(clean, "$") || strings.Contains(lower, "free") {
			key := "premium"
			switch {
			case strings.Contains(lower, "free"):
				key = "freemium"
			case strings.Contains(lower, "team"):
				key = "team"
			case strings.Contains(lower, "enterprise"):
				key = "enterprise"
			case strings.Contains(lower, "ultra"):
				key = "ultra"
			case strings.Contains(lower, "rainbow"):
				key = "rainbow"
			}
			pricing[key] = clean
		}
	}
	return pricing
}

var tierKeyChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// tierKey maps a lowercased tier label onto the closed synonym set,
// slugifying labels that match nothing.
func tierKey(name string) string {
	switch {
	case strings.Contains(name, "freemium"), strings.Contains(name, "free"):
		return "freemium"
	case strings.Contains(name, "pro"), strings.Contains(name, "premium"):
		return "premium"
	case strings.Contains(name, "team"):
		return "team"
	case strings.Contains(name, "enterprise"):
		return "enterprise"
	case strings.Contains(name, "ultra"):
		return "ultra"
	case strings.Contains(name, "rainbow"):
		return "rainbow"
	}
	return strings.ToLower(tierKeyChars.ReplaceAllString(name, "_"))
}

// ParseCaseStudies decodes a case-studies cell.
func ParseCaseStudies(raw string) []models.CaseStudy {
	if strings.TrimSpace(raw) == "" {
		return []models.CaseStudy{}
	}
	var studies []models.CaseStudy
	if err := json.Unmarshal([]byte(raw), &studies); err == nil {
		if studies == nil {
			studies = []models.CaseStudy{}
		}
		return studies
	}
	return caseStudiesFromLines(raw)
}

func caseStudiesFromLines(raw string) []models.CaseStudy {
	out := []models.CaseStudy{}
	var client, result string

	flush := func() {
		if client != "" && result != "" {
			out = append(out, models.CaseStudy{Client: client, Result: result})
		}
	}

	for _, line := range nonEmptyLines(NormalizeLineBreaks(raw)) {
		if strings.Contains(strings.ToLower(line), "case studies") {
			continue
		}

		switch {
		case strings.Contains(line, ":"):
			parts := strings.SplitN(line, ":", 2)
			flush()
			client = strings.TrimSpace(parts[0])
			result = strings.TrimSpace(parts[1])
		case strings.Contains(line, " - "):
			parts := strings.SplitN(line, " - ", 2)
			flush()
			client = strings.TrimSpace(parts[0])
			result = strings.TrimSpace(parts[1])
		case len(line) > 20 && !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "•"):
			// Continuation text for the pending client.
			if client != "" {
				result = line
			}
		}
	}
	flush()
	return out
}

var (
	bulletBenchmark = regexp.MustCompile(`^(.+?)\s*\(([^)]+)\)`)
	parenBenchmark  = regexp.MustCompile(`\(([^)]+)\)`)
	parenSuffix     = regexp.MustCompile(`\s*\([^)]+\)`)
)

// ParseMetrics decodes an achieved-metrics cell.
func ParseMetrics(raw string) []models.Metric {
	if strings.TrimSpace(raw) == "" {
		return []models.Metric{}
	}
	var metrics []models.Metric
	if err := json.Unmarshal([]byte(raw), &metrics); err == nil {
		if metrics == nil {
			metrics = []models.Metric{}
		}
		return metrics
	}
	return metricsFromLines(raw)
}

func metricsFromLines(raw string) []models.Metric {
	out := []models.Metric{}
	for _, line := range nonEmptyLines(NormalizeLineBreaks(raw)) {
		if strings.Contains(strings.ToLower(line), "metrics") {
			continue
		}
		// Bullet-only headers carry no value.
		if strings.HasPrefix(line, "•") && len(line) < 20 {
			continue
		}

		if strings.HasPrefix(line, "•") {
			content := strings.TrimSpace(strings.TrimPrefix(line, "•"))
			if m := bulletBenchmark.FindStringSubmatch(content); m != nil {
				out = append(out, models.Metric{
					Label:     "Metric",
					Value:     strings.TrimSpace(m[1]),
					Benchmark: strings.TrimSpace(m[2]),
				})
				continue
			}
			out = append(out, models.Metric{Label: "Metric", Value: content, Benchmark: "N/A"})
			continue
		}

		if strings.Contains(line, ":") {
			parts := strings.Split(line, ":")
			label := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])
			benchmark := "N/A"
			if m := parenBenchmark.FindStringSubmatch(value); m != nil {
				benchmark = m[1]
				value = strings.TrimSpace(parenSuffix.ReplaceAllString(value, ""))
			} else if len(parts) >= 3 {
				benchmark = strings.TrimSpace(parts[2])
			}
			out = append(out, models.Metric{Label: label, Value: value, Benchmark: benchmark})
			continue
		}

		out = append(out, models.Metric{Label: "Metric", Value: line, Benchmark: "N/A"})
	}
	return out
}

var quotedWithAuthor = regexp.MustCompile(`^"([^"]+)"\s*-\s*(.+)$`)

// ParseTestimonials decodes a testimonials cell.
func ParseTestimonials(raw string) []models.Testimonial {
	if strings.TrimSpace(raw) == "" {
		return []models.Testimonial{}
	}
	var testimonials []models.Testimonial
	if err := json.Unmarshal([]byte(raw), &testimonials); err == nil {
		if testimonials == nil {
			testimonials = []models.Testimonial{}
		}
		return testimonials
	}
	return testimonialsFromLines(raw)
}

func testimonialsFromLines(raw string) []models.Testimonial {
	out := []models.Testimonial{}
	var pendingQuote string

	for _, line := range nonEmptyLines(NormalizeLineBreaks(raw)) {
		if strings.Contains(strings.ToLower(line), "testimonials") {
			continue
		}

		switch {
		case strings.HasPrefix(line, `"`):
			if m := quotedWithAuthor.FindStringSubmatch(line); m != nil {
				out = append(out, models.Testimonial{
					Quote:  strings.TrimSpace(m[1]),
					Author: strings.TrimSpace(m[2]),
				})
			} else {
				pendingQuote = trimQuoteMarks(line)
			}
		case strings.HasPrefix(line, "- ") && pendingQuote != "":
			out = append(out, models.Testimonial{
				Quote:  pendingQuote,
				Author: strings.TrimSpace(line[2:]),
			})
			pendingQuote = ""
		case strings.Contains(line, " - "):
			parts := strings.Split(line, " - ")
			out = append(out, models.Testimonial{
				Quote:  trimQuoteMarks(strings.TrimSpace(parts[0])),
				Author: strings.TrimSpace(parts[1]),
			})
		case strings.Contains(line, " | "):
			parts := strings.Split(line, " | ")
			out = append(out, models.Testimonial{
				Quote:  trimQuoteMarks(strings.TrimSpace(parts[0])),
				Author: strings.TrimSpace(parts[1]),
			})
		case len(line) > 20 && !strings.HasPrefix(line, "-"):
			pendingQuote = trimQuoteMarks(line)
		}
	}
	return out
}

// trimQuoteMarks strips at most one quote character from each end.
func trimQuoteMarks(s string) string {
	if len(s) > 0 && (s[0] == '"' || s[0] == '\'') {
		s = s[1:]
	}
	if len(s) > 0 && (s[len(s)-1] == '"' || s[len(s)-1] == '\'') {
		s = s[:len(s)-1]
	}
	return s
}
