package models

// Project is the normalized, canonical form of a project record.
//
// Both ingestion channels (the pipe-delimited CSV table and the free-form
// AI template document) are mapped into this structure first, then we
// write to the DB from this representation.
type Project struct {
	ID                   string   `json:"id"` // slug of the name, unique per batch
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	Status               string   `json:"status"`   // see Status* constants
	Priority             string   `json:"priority"` // Low / Medium / High
	Technology           []string `json:"technology"`
	CompletionPercentage int      `json:"completion_percentage"`

	// Overview
	Vision           string          `json:"vision,omitempty"`
	ProblemStatement string          `json:"problem_statement,omitempty"`
	TargetAudience   string          `json:"target_audience,omitempty"`
	SuccessMetrics   []string        `json:"success_metrics"`
	Requirements     []string        `json:"requirements"`
	Architecture     string          `json:"architecture,omitempty"`
	TimelinePhases   []TimelinePhase `json:"timeline_phases"`
	Resources        string          `json:"resources,omitempty"`

	// Prompt kit
	Specifications       string   `json:"specifications,omitempty"`
	AcceptanceCriteria   []string `json:"acceptance_criteria"`
	SampleData           string   `json:"sample_data,omitempty"`
	CodingStandards      []string `json:"coding_standards"`
	APISpecs             []string `json:"api_specs"`
	TestingStrategy      string   `json:"testing_strategy,omitempty"`
	SecurityRequirements string   `json:"security_requirements,omitempty"`

	// Sales, pre-launch
	ExecutiveSummary    string            `json:"executive_summary,omitempty"`
	MarketAnalysis      string            `json:"market_analysis,omitempty"`
	ValueProposition    string            `json:"value_proposition,omitempty"`
	FeaturesList        []string          `json:"features_list"`
	PricingTiers        map[string]string `json:"pricing_tiers"`
	DevelopmentTimeline string            `json:"development_timeline,omitempty"`
	RiskAssessment      string            `json:"risk_assessment,omitempty"`

	// Sales, post-launch
	DemoLinks                  []string      `json:"demo_links"`
	CaseStudies                []CaseStudy   `json:"case_studies"`
	AchievedMetrics            []Metric      `json:"achieved_metrics"`
	Testimonials               []Testimonial `json:"testimonials"`
	ROICalculator              string        `json:"roi_calculator,omitempty"`
	CompetitiveDifferentiation []string      `json:"competitive_differentiation"`
	NextSteps                  string        `json:"next_steps,omitempty"`

	// File attachments (CSV channel only)
	Files []ProjectFile `json:"files"`

	// Business / planning (template channel; defaulted for CSV)
	Monetization       string   `json:"monetization"` // Free / Freemium / Paid / Subscription / Ads
	EstimatedCost      float64  `json:"estimated_cost"`
	EstimatedTimeline  string   `json:"estimated_timeline,omitempty"`
	TeamSize           int      `json:"team_size"`
	CurrentBlockers    []string `json:"current_blockers"`
	NextMilestones     []string `json:"next_milestones"`
	MarketValidation   string   `json:"market_validation,omitempty"`
	CompetitorAnalysis string   `json:"competitor_analysis,omitempty"`
	LaunchStrategy     string   `json:"launch_strategy,omitempty"`

	// Template detail sections
	TargetUsers      string   `json:"target_users,omitempty"`
	MustHave         []string `json:"must_have"`
	ShouldHave       []string `json:"should_have"`
	CouldHave        []string `json:"could_have"`
	Frontend         string   `json:"frontend,omitempty"`
	Backend          string   `json:"backend,omitempty"`
	ArchitectureNote string   `json:"architecture_note,omitempty"`
}

// TimelinePhase is one entry of a project delivery timeline.
type TimelinePhase struct {
	Phase    string `json:"phase"`
	Duration string `json:"duration"`
	Status   string `json:"status"`
}

// CaseStudy pairs a client with the outcome they saw.
type CaseStudy struct {
	Client string `json:"client"`
	Result string `json:"result"`
}

// Metric is one achieved metric with an optional benchmark ("N/A" when absent).
type Metric struct {
	Label     string `json:"label"`
	Value     string `json:"value"`
	Benchmark string `json:"benchmark"`
}

// Testimonial is a customer quote plus its author.
type Testimonial struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

// ProjectFile describes an attachment referenced from the CSV file columns.
type ProjectFile struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size string `json:"size"`
	URL  string `json:"url"`
}

// Canonical status values. Channel-specific vocabularies are normalized
// to these via the synonym table in internal/ingest.
const (
	StatusPlanning    = "Planning"
	StatusIdea        = "Idea"
	StatusDevelopment = "Development"
	StatusReview      = "Review"
	StatusCompleted   = "Completed"
	StatusOnHold      = "On Hold"
)

// Priority values.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Monetization values.
const (
	MonetizationFree         = "Free"
	MonetizationFreemium     = "Freemium"
	MonetizationPaid         = "Paid"
	MonetizationSubscription = "Subscription"
	MonetizationAds          = "Ads"
)
