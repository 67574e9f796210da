package ingest

import (
	"regexp"
	"strconv"
	"strings"

	"projectdeck/pkg/models"
)

// The template channel is a single free-form document authored by a human
// or an AI against a loose convention: a title line, then heading-announced
// sections. Headings come in three styles (markdown "## ", a known emoji
// prefix, an ALL_CAPS key), so section detection is an ordered rule table
// evaluated per line; the first rule that matches wins and yields the
// normalized section id.

type sectionRule func(line string) (string, bool)

var sectionRules = []sectionRule{
	matchMarkdownHeading,
	matchEmojiHeading,
	matchSectionKey,
}

var headingEmojis = []string{
	"📱", "🎯", "🚀", "📋", "👥", "🔧", "🛠️", "✅", "⚠️", "🔍", "📅", "💰", "🎨",
}

var sectionKeys = []string{
	"PROJECT_NAME", "QUICK_SUMMARY", "PROJECT_METADATA", "PROBLEM_STATEMENT",
	"TARGET_USERS", "MVP_FEATURES", "TECHNICAL_OVERVIEW", "BUSINESS_MODEL",
	"DEVELOPMENT_PLAN", "LAUNCH_STRATEGY", "COST_BREAKDOWN", "SUCCESS_METRICS",
}

var leadingNonLetter = regexp.MustCompile(`^[^A-Za-z]+`)

func matchMarkdownHeading(line string) (string, bool) {
	if !strings.HasPrefix(line, "## ") {
		return "", false
	}
	return sectionID(strings.TrimPrefix(line, "##")), true
}

func matchEmojiHeading(line string) (string, bool) {
	for _, e := range headingEmojis {
		if strings.HasPrefix(line, e) {
			return sectionID(line), true
		}
	}
	return "", false
}

func matchSectionKey(line string) (string, bool) {
	for _, key := range sectionKeys {
		if strings.EqualFold(line, key) {
			return strings.ToLower(key), true
		}
	}
	return "", false
}

func detectSection(line string) (string, bool) {
	for _, rule := range sectionRules {
		if id, ok := rule(line); ok {
			return id, true
		}
	}
	return "", false
}

// sectionID strips the heading marker and slugifies the remaining text to
// lower_snake_case.
func sectionID(s string) string {
	s = leadingNonLetter.ReplaceAllString(s, "")
	s = strings.ToLower(strings.TrimSpace(s))
	return spaceRun.ReplaceAllString(s, "_")
}

var dashStarPrefix = regexp.MustCompile(`^[-*]\s*`)

// ParseTemplate scans a free-form template document into a canonical draft.
// It returns nil when the document yields no usable name or description
// even after fallback recovery; it never returns an error for any input.
func ParseTemplate(content string) *models.Project {
	lines := strings.Split(content, "\n")
	p := &models.Project{}

	var (
		section       string
		featureBucket string
		planBucket    string
		capturedName  bool
	)

	for _, rawLine := range lines {
		line := strings.TrimSpace(rawLine)

		if id, ok := detectSection(line); ok {
			section = id
			featureBucket, planBucket = "", ""
			continue
		}

		// The metadata block is sometimes introduced mid-sentence rather
		// than by a clean heading.
		if strings.Contains(line, "PROJECT_METADATA") || strings.Contains(line, "🚀") {
			section = "project_metadata"
			continue
		}

		// A technology list that escaped its section entirely.
		if strings.HasPrefix(line, "TECHNOLOGY:") {
			if techs := parseTechnologyList(afterColon(line)); len(techs) > 0 {
				p.Technology = techs
			}
			continue
		}

		// One-time name capture: the first non-empty line before any
		// section opens.
		if !capturedName && line != "" && section == "" {
			p.Name = strings.TrimSpace(leadingNonLetter.ReplaceAllString(line, ""))
			capturedName = true
			continue
		}

		switch section {
		case "project_name":
			if strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**") {
				p.Name = strings.TrimSpace(stripStars(line))
			}

		case "quick_summary":
			appendText(&p.Description, line)

		case "project_metadata", "projectmetadata":
			scanMetadataLine(p, line)

		case "problem_statement":
			appendText(&p.ProblemStatement, line)

		case "target_users":
			scanTargetUsersLine(p, line)

		case "mvp_features":
			featureBucket = scanFeatureLine(p, line, featureBucket)

		case "technical_overview":
			scanTechnicalLine(p, line)

		case "business_model":
			if strings.Contains(line, "**Monetization**:") {
				p.Monetization = NormalizeEnum(stripStars(afterColon(line)), monetizationSynonyms, models.MonetizationFree)
			}

		case "development_plan":
			planBucket = scanPlanLine(p, line, planBucket)

		case "launch_strategy":
			appendText(&p.LaunchStrategy, line)

		case "success_metrics":
			if line != "" {
				if item := bulletPrefix.ReplaceAllString(line, ""); item != "" {
					p.SuccessMetrics = append(p.SuccessMetrics, item)
				}
			}

		case "cost_breakdown":
			if strings.Contains(line, "**Total Estimated Cost**:") || strings.HasPrefix(line, "Total Estimated Cost") {
				v := strings.NewReplacer("$", "", ",", "").Replace(stripStars(afterColon(line)))
				if f, err := strconv.ParseFloat(v, 64); err == nil {
					p.EstimatedCost = f
				}
			}
		}
	}

	if p.Description == "" {
		p.Description = recoverDescription(lines)
	}

	// Structural failure: nothing a human could recognize as a project.
	if p.Name == "" || p.Description == "" {
		return nil
	}

	applyTemplateDefaults(p)
	return Finalize(p)
}

func scanMetadataLine(p *models.Project, line string) {
	switch {
	case strings.Contains(line, "**STATUS**") || strings.HasPrefix(line, "STATUS"):
		p.Status = NormalizeEnum(stripStars(afterColon(line)), statusSynonyms, models.StatusPlanning)
	case strings.Contains(line, "**TECHNOLOGY**") || strings.HasPrefix(line, "TECHNOLOGY"):
		if techs := parseTechnologyList(afterColon(line)); len(techs) > 0 {
			p.Technology = techs
		}
	case strings.Contains(line, "**ESTIMATED_TIMELINE**") || strings.HasPrefix(line, "ESTIMATED_TIMELINE"):
		p.EstimatedTimeline = stripStars(afterColon(line))
	case strings.Contains(line, "**TEAM_SIZE**") || strings.HasPrefix(line, "TEAM_SIZE"):
		p.TeamSize = CoerceInt(afterColon(line), 1)
	case strings.Contains(line, "**COMPLEXITY**") || strings.HasPrefix(line, "COMPLEXITY"):
		p.Priority = NormalizeEnum(stripStars(afterColon(line)), prioritySynonyms, models.PriorityMedium)
	case strings.Contains(line, "**MONETIZATION**") || strings.HasPrefix(line, "MONETIZATION"):
		p.Monetization = NormalizeEnum(stripStars(afterColon(line)), monetizationSynonyms, models.MonetizationFree)
	}
}

func scanTargetUsersLine(p *models.Project, line string) {
	lower := strings.ToLower(line)
	switch {
	case strings.HasPrefix(line, "**Primary User:**"):
		p.TargetUsers = strings.TrimSpace(strings.TrimPrefix(line, "**Primary User:**"))
	case strings.HasPrefix(lower, "primary user:"):
		p.TargetUsers = afterFirstColon(line)
	case strings.HasPrefix(lower, "goals:"):
		p.TargetUsers += " Goals: " + afterFirstColon(line)
	case strings.HasPrefix(lower, "pain points:"):
		p.TargetUsers += " Pain Points: " + afterFirstColon(line)
	}
}

// scanFeatureLine switches the active must/should/could bucket and appends
// bullet lines to whichever bucket is open. Returns the new bucket.
func scanFeatureLine(p *models.Project, line, bucket string) string {
	upper := strings.ToUpper(line)
	switch {
	case strings.Contains(upper, "MUST HAVE"):
		return "must"
	case strings.Contains(upper, "SHOULD HAVE"):
		return "should"
	case strings.Contains(upper, "COULD HAVE"):
		return "could"
	}
	if bucket == "" || line == "" {
		return bucket
	}
	feature := strings.TrimSpace(dashStarPrefix.ReplaceAllString(line, ""))
	if feature == "" {
		return bucket
	}
	switch bucket {
	case "must":
		p.MustHave = append(p.MustHave, feature)
	case "should":
		p.ShouldHave = append(p.ShouldHave, feature)
	case "could":
		p.CouldHave = append(p.CouldHave, feature)
	}
	return bucket
}

func scanTechnicalLine(p *models.Project, line string) {
	switch {
	case strings.Contains(line, "**Frontend**:"):
		p.Frontend = afterColon(line)
	case strings.Contains(line, "**Backend**:"):
		p.Backend = afterColon(line)
	case strings.Contains(line, "**Architecture**:"):
		p.ArchitectureNote = afterColon(line)
	}
}

// scanPlanLine buckets bullet lines under "Current Blockers" and
// "Next Actions"/"Next Milestones" labels. Returns the new bucket.
func scanPlanLine(p *models.Project, line, bucket string) string {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "current blockers"):
		return "blockers"
	case strings.Contains(lower, "next actions"), strings.Contains(lower, "next milestones"):
		return "milestones"
	}
	if bucket == "" || line == "" {
		return bucket
	}
	item := strings.TrimSpace(bulletPrefix.ReplaceAllString(line, ""))
	if item == "" {
		return bucket
	}
	if bucket == "blockers" {
		p.CurrentBlockers = append(p.CurrentBlockers, item)
	} else {
		p.NextMilestones = append(p.NextMilestones, item)
	}
	return bucket
}

// recoverDescription grabs the first contiguous run of non-empty lines
// after a QUICK_SUMMARY heading, or after the name line when no such
// heading exists, stopping at the next heading-like line.
func recoverDescription(lines []string) string {
	start := -1
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), "quick_summary") {
			start = i + 1
			break
		}
	}
	if start == -1 {
		start = 1
	}

	var desc string
	for i := start; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if headingLike(line) {
			break
		}
		if line == "" {
			if desc != "" {
				break
			}
			continue
		}
		if desc != "" {
			desc += " "
		}
		desc += line
	}
	return desc
}

func headingLike(line string) bool {
	if strings.HasPrefix(line, "## ") {
		return true
	}
	for _, e := range headingEmojis {
		if strings.HasPrefix(line, e) {
			return true
		}
	}
	return false
}

func applyTemplateDefaults(p *models.Project) {
	if p.Status == "" {
		p.Status = models.StatusPlanning
	}
	if p.Priority == "" {
		p.Priority = models.PriorityMedium
	}
	if p.Monetization == "" {
		p.Monetization = models.MonetizationFree
	}
	if p.EstimatedTimeline == "" {
		p.EstimatedTimeline = "12 weeks"
	}
	if p.TeamSize == 0 {
		p.TeamSize = 1
	}
	if p.ProblemStatement == "" {
		p.ProblemStatement = "Problem statement not provided"
	}
	if p.TargetUsers == "" {
		p.TargetUsers = "Target users not specified"
	}
	if len(p.MustHave) == 0 {
		p.MustHave = []string{"Core functionality"}
	}
	if p.Frontend == "" {
		p.Frontend = "To be determined"
	}
	if p.Backend == "" {
		p.Backend = "To be determined"
	}
	if p.ArchitectureNote == "" {
		p.ArchitectureNote = "To be determined"
	}
	// The channel supplied a timeline estimate even when no phase
	// breakdown exists; keep at least one synthetic phase.
	if len(p.TimelinePhases) == 0 && p.EstimatedTimeline != "" {
		p.TimelinePhases = []models.TimelinePhase{
			{Phase: "Development", Duration: p.EstimatedTimeline, Status: "pending"},
		}
	}
}

func appendText(dst *string, line string) {
	text := strings.TrimSpace(stripStars(line))
	if text == "" {
		return
	}
	if *dst == "" {
		*dst = text
		return
	}
	*dst += " " + text
}

func stripStars(s string) string {
	return strings.ReplaceAll(s, "*", "")
}

// afterColon returns the text between the first and second colon, the way
// a "KEY: value" metadata line is read.
func afterColon(line string) string {
	parts := strings.Split(line, ":")
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// afterFirstColon returns everything after the first colon.
func afterFirstColon(line string) string {
	_, rest, ok := strings.Cut(line, ":")
	if !ok {
		return ""
	}
	return strings.TrimSpace(rest)
}

var techListChars = strings.NewReplacer("[", "", "]", "", `"`, "")

func parseTechnologyList(v string) []string {
	var out []string
	for _, t := range strings.Split(techListChars.Replace(v), ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
