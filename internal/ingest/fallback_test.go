package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projectdeck/pkg/models"
)

func TestParseTimeline(t *testing.T) {
	t.Run("valid json used verbatim", func(t *testing.T) {
		got := ParseTimeline(`[{"phase":"MVP","duration":"8 weeks","status":"done"}]`)
		require.Len(t, got, 1)
		assert.Equal(t, models.TimelinePhase{Phase: "MVP", Duration: "8 weeks", Status: "done"}, got[0])
	})

	t.Run("non-empty garbage degrades to synthetic phase", func(t *testing.T) {
		got := ParseTimeline("Q3: build the thing")
		require.Len(t, got, 1)
		assert.Equal(t, "Development", got[0].Phase)
		assert.Equal(t, "pending", got[0].Status)
	})

	t.Run("empty input yields empty list", func(t *testing.T) {
		assert.Equal(t, []models.TimelinePhase{}, ParseTimeline(""))
		assert.Equal(t, []models.TimelinePhase{}, ParseTimeline("  "))
	})
}

func TestParsePricing(t *testing.T) {
	t.Run("valid json used verbatim", func(t *testing.T) {
		got := ParsePricing(`{"freemium":"Free","premium":"$9.99/month"}`)
		assert.Equal(t, map[string]string{"freemium": "Free", "premium": "$9.99/month"}, got)
	})

	t.Run("pro maps onto premium", func(t *testing.T) {
		got := ParsePricing("Pro: $9.99/month")
		assert.Equal(t, map[string]string{"premium": "$9.99/month"}, got)
	})

	t.Run("bulleted multi-line with br markup", func(t *testing.T) {
		got := ParsePricing("• Free: $0<br>• Enterprise: Custom pricing")
		assert.Equal(t, map[string]string{
			"freemium":   "$0",
			"enterprise": "Custom pricing",
		}, got)
	})

	t.Run("section headers dropped", func(t *testing.T) {
		got := ParsePricing("Pricing Structure:\nTeam: $29/month")
		assert.Equal(t, map[string]string{"team": "$29/month"}, got)
	})

	t.Run("priced line without colon defaults to premium", func(t *testing.T) {
		got := ParsePricing("$19.99 one-time purchase")
		assert.Equal(t, map[string]string{"premium": "$19.99 one-time purchase"}, got)
	})

	t.Run("free line without colon maps to freemium", func(t *testing.T) {
		got := ParsePricing("Free forever")
		assert.Equal(t, map[string]string{"freemium": "Free forever"}, got)
	})

	t.Run("unknown tier slugifies", func(t *testing.T) {
		got := ParsePricing("Mega Plan: $99")
		assert.Equal(t, map[string]string{"mega_plan": "$99"}, got)
	})

	t.Run("garbage yields empty map", func(t *testing.T) {
		assert.Equal(t, map[string]string{}, ParsePricing("%%%%"))
		assert.Equal(t, map[string]string{}, ParsePricing(""))
	})
}

func TestParseCaseStudies(t *testing.T) {
	t.Run("valid json used verbatim", func(t *testing.T) {
		got := ParseCaseStudies(`[{"client":"Acme","result":"2x growth"}]`)
		assert.Equal(t, []models.CaseStudy{{Client: "Acme", Result: "2x growth"}}, got)
	})

	t.Run("colon pair", func(t *testing.T) {
		got := ParseCaseStudies("Acme Corp: 40% increase in signups")
		assert.Equal(t, []models.CaseStudy{{Client: "Acme Corp", Result: "40% increase in signups"}}, got)
	})

	t.Run("dash pair and header skipping", func(t *testing.T) {
		got := ParseCaseStudies("Case Studies:\nGlobex - halved onboarding time")
		assert.Equal(t, []models.CaseStudy{{Client: "Globex", Result: "halved onboarding time"}}, got)
	})

	t.Run("continuation line replaces pending result", func(t *testing.T) {
		got := ParseCaseStudies("Initech: initial rollout\nThe result was a big reduction in churn")
		assert.Equal(t, []models.CaseStudy{
			{Client: "Initech", Result: "The result was a big reduction in churn"},
		}, got)
	})

	t.Run("multiple pairs flush in order", func(t *testing.T) {
		got := ParseCaseStudies("Acme: result one\nGlobex: result two")
		assert.Equal(t, []models.CaseStudy{
			{Client: "Acme", Result: "result one"},
			{Client: "Globex", Result: "result two"},
		}, got)
	})

	t.Run("garbage yields empty list", func(t *testing.T) {
		assert.Equal(t, []models.CaseStudy{}, ParseCaseStudies(""))
		assert.Equal(t, []models.CaseStudy{}, ParseCaseStudies("short line"))
	})
}

func TestParseMetrics(t *testing.T) {
	t.Run("valid json used verbatim", func(t *testing.T) {
		got := ParseMetrics(`[{"label":"MAU","value":"5k","benchmark":"10k"}]`)
		assert.Equal(t, []models.Metric{{Label: "MAU", Value: "5k", Benchmark: "10k"}}, got)
	})

	t.Run("bullet with parenthesized benchmark", func(t *testing.T) {
		got := ParseMetrics("• 500 active users (target 1000)")
		assert.Equal(t, []models.Metric{{Label: "Metric", Value: "500 active users", Benchmark: "target 1000"}}, got)
	})

	t.Run("bullet without benchmark", func(t *testing.T) {
		got := ParseMetrics("• 95% uptime across regions")
		assert.Equal(t, []models.Metric{{Label: "Metric", Value: "95% uptime across regions", Benchmark: "N/A"}}, got)
	})

	t.Run("labeled value with benchmark in parens", func(t *testing.T) {
		got := ParseMetrics("Retention: 80% (industry 60%)")
		assert.Equal(t, []models.Metric{{Label: "Retention", Value: "80%", Benchmark: "industry 60%"}}, got)
	})

	t.Run("labeled value with colon benchmark", func(t *testing.T) {
		got := ParseMetrics("Signups: 200: 150")
		assert.Equal(t, []models.Metric{{Label: "Signups", Value: "200", Benchmark: "150"}}, got)
	})

	t.Run("headers and short bullet headers dropped", func(t *testing.T) {
		got := ParseMetrics("Current Beta Metrics:\n• KPIs\nChurn: 2%")
		assert.Equal(t, []models.Metric{{Label: "Churn", Value: "2%", Benchmark: "N/A"}}, got)
	})

	t.Run("bare long line kept as value", func(t *testing.T) {
		got := ParseMetrics("ninety percent satisfaction")
		assert.Equal(t, []models.Metric{{Label: "Metric", Value: "ninety percent satisfaction", Benchmark: "N/A"}}, got)
	})

	t.Run("empty input yields empty list", func(t *testing.T) {
		assert.Equal(t, []models.Metric{}, ParseMetrics(""))
	})
}

func TestParseTestimonials(t *testing.T) {
	t.Run("valid json used verbatim", func(t *testing.T) {
		got := ParseTestimonials(`[{"quote":"Love it","author":"Sam"}]`)
		assert.Equal(t, []models.Testimonial{{Quote: "Love it", Author: "Sam"}}, got)
	})

	t.Run("quote and author on one line", func(t *testing.T) {
		got := ParseTestimonials(`"Great app!" - Jane Doe`)
		assert.Equal(t, []models.Testimonial{{Quote: "Great app!", Author: "Jane Doe"}}, got)
	})

	t.Run("quote then author on following dash line", func(t *testing.T) {
		got := ParseTestimonials("\"Changed how our team works\"\n- John Smith")
		assert.Equal(t, []models.Testimonial{{Quote: "Changed how our team works", Author: "John Smith"}}, got)
	})

	t.Run("pipe separated", func(t *testing.T) {
		got := ParseTestimonials("Saves me hours every week | Sam Lee")
		assert.Equal(t, []models.Testimonial{{Quote: "Saves me hours every week", Author: "Sam Lee"}}, got)
	})

	t.Run("header skipped, pending quote without author dropped", func(t *testing.T) {
		got := ParseTestimonials("Customer Testimonials:\n\"An orphaned quote without an author\"")
		assert.Equal(t, []models.Testimonial{}, got)
	})

	t.Run("empty input yields empty list", func(t *testing.T) {
		assert.Equal(t, []models.Testimonial{}, ParseTestimonials(""))
	})
}

// Every fallback parser must return a well-typed result for arbitrary
// input, never panic.
func TestFallbackParsersAreTotal(t *testing.T) {
	inputs := []string{
		"", " ", "\n\n\n", "\t", ":", " - ", " | ", "•", `"`,
		"{not json", "[1,2,", "null", "{}", "[]", `"just a json string"`,
		"::::::", "----", "(((((", "$", "<br><br><br>",
		"\x00\x01\x02", "日本語のテキスト: 値 (基準)",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			assert.NotNil(t, ParsePricing(in))
			assert.NotNil(t, ParseCaseStudies(in))
			assert.NotNil(t, ParseMetrics(in))
			assert.NotNil(t, ParseTestimonials(in))
			assert.NotNil(t, ParseTimeline(in))
		}, "input %q", in)
	}
}
