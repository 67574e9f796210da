package ingest

import (
	"strings"

	"github.com/google/uuid"

	"projectdeck/pkg/models"
)

// Finalize fills defaults on a draft so downstream consumers never see a
// nil list or an out-of-range number. It never overwrites a value the
// channel supplied.
func Finalize(p *models.Project) *models.Project {
	if p == nil {
		return nil
	}
	if p.Status == "" {
		p.Status = models.StatusIdea
	}
	if p.Priority == "" {
		p.Priority = models.PriorityMedium
	}
	if p.Monetization == "" {
		p.Monetization = models.MonetizationFree
	}
	if p.TeamSize <= 0 {
		p.TeamSize = 1
	}
	if p.CompletionPercentage < 0 {
		p.CompletionPercentage = 0
	}
	if p.CompletionPercentage > 100 {
		p.CompletionPercentage = 100
	}
	if p.EstimatedCost < 0 {
		p.EstimatedCost = 0
	}

	if p.Technology == nil {
		p.Technology = []string{}
	}
	if p.SuccessMetrics == nil {
		p.SuccessMetrics = []string{}
	}
	if p.Requirements == nil {
		p.Requirements = []string{}
	}
	if p.AcceptanceCriteria == nil {
		p.AcceptanceCriteria = []string{}
	}
	if p.CodingStandards == nil {
		p.CodingStandards = []string{}
	}
	if p.APISpecs == nil {
		p.APISpecs = []string{}
	}
	if p.FeaturesList == nil {
		p.FeaturesList = []string{}
	}
	if p.DemoLinks == nil {
		p.DemoLinks = []string{}
	}
	if p.CompetitiveDifferentiation == nil {
		p.CompetitiveDifferentiation = []string{}
	}
	if p.CurrentBlockers == nil {
		p.CurrentBlockers = []string{}
	}
	if p.NextMilestones == nil {
		p.NextMilestones = []string{}
	}
	if p.MustHave == nil {
		p.MustHave = []string{}
	}
	if p.ShouldHave == nil {
		p.ShouldHave = []string{}
	}
	if p.CouldHave == nil {
		p.CouldHave = []string{}
	}
	if p.TimelinePhases == nil {
		p.TimelinePhases = []models.TimelinePhase{}
	}
	if p.PricingTiers == nil {
		p.PricingTiers = map[string]string{}
	}
	if p.CaseStudies == nil {
		p.CaseStudies = []models.CaseStudy{}
	}
	if p.AchievedMetrics == nil {
		p.AchievedMetrics = []models.Metric{}
	}
	if p.Testimonials == nil {
		p.Testimonials = []models.Testimonial{}
	}
	if p.Files == nil {
		p.Files = []models.ProjectFile{}
	}
	return p
}

// Validate runs every content rule and reports all violations at once as
// human-readable strings. An empty slice means the record is valid; the
// function never fails any other way.
func Validate(p *models.Project) []string {
	errs := []string{}
	if p == nil {
		return append(errs, "Project record is required")
	}

	name := strings.TrimSpace(p.Name)
	if name == "" {
		errs = append(errs, "Project name is required")
	} else if len(name) < 3 {
		errs = append(errs, "Project name must be at least 3 characters")
	}

	desc := strings.TrimSpace(p.Description)
	if desc == "" {
		errs = append(errs, "Description is required")
	} else if len(desc) < 10 {
		errs = append(errs, "Description must be at least 10 characters")
	}

	if len(p.Technology) == 0 {
		errs = append(errs, "At least one technology is required")
	}

	// Template-channel rule; a zero value means the channel never set it.
	if p.TeamSize != 0 && p.TeamSize < 1 {
		errs = append(errs, "Team size must be at least 1")
	}

	return errs
}

// NewProjectID derives a batch-unique id from the project name. taken is
// updated in place so repeated calls within one batch stay unique.
func NewProjectID(name string, taken map[string]bool) string {
	id := Slug(name)
	if id == "" {
		id = "project"
	}
	if taken[id] {
		id += "-" + uuid.NewString()[:8]
	}
	taken[id] = true
	return id
}
