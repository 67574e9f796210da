package ingest

import (
	"errors"
	"strings"

	"projectdeck/pkg/models"
)

// Row is one data row of the import table, keyed by its header label.
// Headers the mapper does not recognize are simply never looked up.
type Row map[string]string

// ParseDocument splits a pipe-delimited document (one header row plus data
// rows, cells optionally double-quoted) into header-keyed rows. Blank lines
// are ignored. A row shorter than the header gets "" for the missing cells.
func ParseDocument(raw string) ([]Row, error) {
	lines := nonEmptyLines(raw)
	if len(lines) < 2 {
		return nil, errors.New("document must contain a header row and at least one data row")
	}

	headers := splitCells(lines[0])
	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := splitCells(line)
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(values) {
				row[h] = values[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func splitCells(line string) []string {
	cells := strings.Split(line, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(strings.ReplaceAll(cells[i], `"`, ""))
	}
	return cells
}

// MapRow maps one header-labeled row onto a canonical draft. It always
// returns a draft even when required cells are blank; the required-field
// and validation checks happen in the orchestrator.
func MapRow(row Row) *models.Project {
	name := strings.TrimSpace(row["Project_Name"])
	if name == "" {
		name = "Untitled Project"
	}

	return &models.Project{
		Name:                 name,
		Status:               NormalizeEnum(row["Status"], statusSynonyms, models.StatusIdea),
		Description:          row["Description"],
		Technology:           ParseList(row["Tech_Stack"]),
		CompletionPercentage: CoerceInt(row["Completion_Percentage"], 0),
		Priority:             NormalizeEnum(row["Priority"], prioritySynonyms, models.PriorityMedium),

		Vision:           NormalizeLineBreaks(row["Vision"]),
		ProblemStatement: NormalizeLineBreaks(row["Problem_Statement"]),
		TargetAudience:   NormalizeLineBreaks(row["Target_Audience"]),
		SuccessMetrics:   ParseList(row["Success_Metrics"]),
		Requirements:     ParseList(row["Requirements"]),
		Architecture:     NormalizeLineBreaks(row["Architecture"]),
		TimelinePhases:   ParseTimeline(row["Timeline_Phases"]),
		Resources:        NormalizeLineBreaks(row["Resources"]),

		Specifications:       NormalizeLineBreaks(row["Specifications"]),
		AcceptanceCriteria:   ParseList(row["Acceptance_Criteria"]),
		SampleData:           NormalizeLineBreaks(row["Sample_Data"]),
		CodingStandards:      ParseList(row["Coding_Standards"]),
		APISpecs:             ParseList(row["API_Specs"]),
		TestingStrategy:      NormalizeLineBreaks(row["Testing_Strategy"]),
		SecurityRequirements: NormalizeLineBreaks(row["Security_Requirements"]),

		ExecutiveSummary:    NormalizeLineBreaks(row["Executive_Summary"]),
		MarketAnalysis:      NormalizeLineBreaks(row["Market_Analysis"]),
		ValueProposition:    NormalizeLineBreaks(row["Value_Proposition"]),
		FeaturesList:        ParseList(row["Features_List"]),
		PricingTiers:        ParsePricing(row["Pricing_Model"]),
		DevelopmentTimeline: NormalizeLineBreaks(row["Development_Timeline"]),
		RiskAssessment:      NormalizeLineBreaks(row["Risk_Assessment"]),

		DemoLinks:                  ParseList(row["Demo_Links"]),
		CaseStudies:                ParseCaseStudies(row["Case_Studies"]),
		AchievedMetrics:            ParseMetrics(row["Success_Metrics_Achieved"]),
		Testimonials:               ParseTestimonials(row["Customer_Testimonials"]),
		ROICalculator:              NormalizeLineBreaks(row["ROI_Calculator"]),
		CompetitiveDifferentiation: ParseList(row["Competitive_Differentiation"]),
		NextSteps:                  NormalizeLineBreaks(row["Next_Steps"]),

		Files: parseFiles(row["File_Names"], row["File_Types"], row["File_URLs"]),
	}
}

// parseFiles zips the three optional attachment columns into file records.
// Lists shorter than the name list fall back per entry.
func parseFiles(names, types, urls string) []models.ProjectFile {
	nameList := ParseList(names)
	if len(nameList) == 0 {
		return []models.ProjectFile{}
	}
	typeList := ParseList(types)
	urlList := ParseList(urls)

	files := make([]models.ProjectFile, 0, len(nameList))
	for i, name := range nameList {
		f := models.ProjectFile{Name: name, Type: "file", Size: "Unknown", URL: "#"}
		if i < len(typeList) {
			f.Type = typeList[i]
		}
		if i < len(urlList) {
			f.URL = urlList[i]
		}
		files = append(files, f)
	}
	return files
}
