package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"projectdeck/internal/project"
	"projectdeck/pkg/database"
	"projectdeck/pkg/models"
)

// Export writes the same pipe-delimited convention the importer reads:
// lists joined with "; ", multi-line text re-encoded with <br>, structured
// fields as JSON so a re-import takes the strict-JSON path.

var header = []string{
	"Project_Name", "Status", "Description", "Tech_Stack", "Completion_Percentage",
	"Priority", "Vision", "Problem_Statement", "Target_Audience", "Success_Metrics",
	"Requirements", "Architecture", "Timeline_Phases", "Resources", "Specifications",
	"Acceptance_Criteria", "Sample_Data", "Coding_Standards", "API_Specs",
	"Testing_Strategy", "Security_Requirements", "Executive_Summary", "Market_Analysis",
	"Value_Proposition", "Features_List", "Pricing_Model", "Development_Timeline",
	"Risk_Assessment", "Demo_Links", "Case_Studies", "Success_Metrics_Achieved",
	"Customer_Testimonials", "ROI_Calculator", "Competitive_Differentiation", "Next_Steps",
}

func main() {
	var (
		out = flag.String("file", "data/projects.csv", "output path for the project table")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	repo := project.NewRepo(db)

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		log.Fatalf("ensure output dir failed: %v", err)
	}
	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s failed: %v", *out, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '|'
	if err := w.Write(header); err != nil {
		log.Fatalf("write header failed: %v", err)
	}

	exported := 0
	for offset := 0; ; offset += 100 {
		page, err := repo.List(ctx, project.ListQuery{Limit: 100, Offset: offset})
		if err != nil {
			log.Fatalf("list projects failed: %v", err)
		}
		if len(page) == 0 {
			break
		}
		for i := range page {
			if err := w.Write(projectRow(&page[i])); err != nil {
				log.Fatalf("write row failed: %v", err)
			}
			exported++
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("flush failed: %v", err)
	}

	log.Printf("✅ exported %d projects to %s", exported, *out)
}

func projectRow(p *models.Project) []string {
	return []string{
		p.Name,
		p.Status,
		p.Description,
		joinList(p.Technology),
		strconv.Itoa(p.CompletionPercentage),
		p.Priority,
		encodeBreaks(p.Vision),
		encodeBreaks(p.ProblemStatement),
		encodeBreaks(p.TargetAudience),
		joinList(p.SuccessMetrics),
		joinList(p.Requirements),
		encodeBreaks(p.Architecture),
		encodeJSON(p.TimelinePhases),
		encodeBreaks(p.Resources),
		encodeBreaks(p.Specifications),
		joinList(p.AcceptanceCriteria),
		encodeBreaks(p.SampleData),
		joinList(p.CodingStandards),
		joinList(p.APISpecs),
		encodeBreaks(p.TestingStrategy),
		encodeBreaks(p.SecurityRequirements),
		encodeBreaks(p.ExecutiveSummary),
		encodeBreaks(p.MarketAnalysis),
		encodeBreaks(p.ValueProposition),
		joinList(p.FeaturesList),
		encodeJSON(p.PricingTiers),
		encodeBreaks(p.DevelopmentTimeline),
		encodeBreaks(p.RiskAssessment),
		joinList(p.DemoLinks),
		encodeJSON(p.CaseStudies),
		encodeJSON(p.AchievedMetrics),
		encodeJSON(p.Testimonials),
		encodeBreaks(p.ROICalculator),
		joinList(p.CompetitiveDifferentiation),
		encodeBreaks(p.NextSteps),
	}
}

func joinList(items []string) string {
	return strings.Join(items, "; ")
}

func encodeBreaks(s string) string {
	return strings.ReplaceAll(s, "\n", "<br>")
}

func encodeJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
