package ingest

import (
	"fmt"
	"strings"

	"projectdeck/pkg/models"
)

// Result summarizes one batch import. Errors are ordered and prefixed
// with their 1-based row number; a failing row never aborts the batch.
type Result struct {
	Imported      []models.Project `json:"imported"`
	ImportedCount int              `json:"imported_count"`
	FailedCount   int              `json:"failed_count"`
	Errors        []string         `json:"errors"`
}

func (r *Result) fail(row int, msg string) {
	r.Errors = append(r.Errors, fmt.Sprintf("Row %d: %s", row, msg))
	r.FailedCount++
}

// ImportBatch drives the CSV path over many rows. Each row is mapped,
// finalized and validated independently; a name collision with an existing
// project or an earlier row in the same batch is a row error like any
// other. Duplicate detection is sequential in batch order.
func ImportBatch(rows []Row, existingNames []string) Result {
	res := Result{Imported: []models.Project{}, Errors: []string{}}

	known := make(map[string]bool, len(existingNames))
	for _, n := range existingNames {
		known[strings.TrimSpace(n)] = true
	}
	takenIDs := make(map[string]bool, len(rows))

	for i, row := range rows {
		rowNum := i + 1

		if strings.TrimSpace(row["Project_Name"]) == "" || strings.TrimSpace(row["Status"]) == "" {
			res.fail(rowNum, "missing required fields (Project_Name, Status)")
			continue
		}

		p := Finalize(MapRow(row))

		if errs := Validate(p); len(errs) > 0 {
			res.fail(rowNum, strings.Join(errs, "; "))
			continue
		}

		if known[p.Name] {
			res.fail(rowNum, fmt.Sprintf("project %q already exists", p.Name))
			continue
		}
		known[p.Name] = true

		p.ID = NewProjectID(p.Name, takenIDs)
		res.Imported = append(res.Imported, *p)
		res.ImportedCount++
	}
	return res
}

// ParseCSVBatch parses a whole pipe-delimited document and imports every
// data row. A document without a header and at least one data row yields
// a single error and nothing imported.
func ParseCSVBatch(raw string, existingNames []string) Result {
	rows, err := ParseDocument(raw)
	if err != nil {
		return Result{
			Imported:    []models.Project{},
			Errors:      []string{err.Error()},
			FailedCount: 0,
		}
	}
	return ImportBatch(rows, existingNames)
}
