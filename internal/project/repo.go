package project

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"projectdeck/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

type ListQuery struct {
	Q      string // keyword search in name/description
	Status string
	Limit  int
	Offset int
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// Create inserts one canonical record. Scalar columns are duplicated out
// of the JSON record so list filters stay cheap.
func (r *Repo) Create(ctx context.Context, p *models.Project) error {
	record, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	tech, _ := json.Marshal(p.Technology)

	now := time.Now().UTC()
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO projects
			(id, name, status, priority, description, technology,
			 completion_percentage, monetization, estimated_cost, team_size,
			 record, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID, p.Name, p.Status, p.Priority, p.Description, string(tech),
		p.CompletionPercentage, p.Monetization, p.EstimatedCost, p.TeamSize,
		string(record), now, now,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT record FROM projects WHERE id = ?`, id)

	var record string
	if err := row.Scan(&record); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan getByID: %w", err)
	}

	var p models.Project
	if err := json.Unmarshal([]byte(record), &p); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", id, err)
	}
	return &p, nil
}

func (r *Repo) Count(ctx context.Context, q ListQuery) (int, error) {
	sqlStr, args := buildListSQL(q, true)
	var total int
	if err := r.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count scan: %w", err)
	}
	return total, nil
}

func (r *Repo) List(ctx context.Context, q ListQuery) ([]models.Project, error) {
	sqlStr, args := buildListSQL(q, false)

	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	out := make([]models.Project, 0, q.Limit)
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("list scan: %w", err)
		}
		var p models.Project
		if err := json.Unmarshal([]byte(record), &p); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// Names returns every stored project name, the duplicate set the batch
// orchestrator consults.
func (r *Repo) Names(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT name FROM projects`)
	if err != nil {
		return nil, fmt.Errorf("names query: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("names scan: %w", err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return names, nil
}

func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// buildListSQL builds either COUNT(*) or the record SELECT.
func buildListSQL(q ListQuery, countOnly bool) (string, []any) {
	baseSelect := `SELECT record FROM projects`
	if countOnly {
		baseSelect = `SELECT COUNT(*) FROM projects`
	}

	var where []string
	var args []any

	if strings.TrimSpace(q.Q) != "" {
		where = append(where, "(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)")
		kw := "%" + strings.ToLower(strings.TrimSpace(q.Q)) + "%"
		args = append(args, kw, kw)
	}

	if strings.TrimSpace(q.Status) != "" {
		where = append(where, "LOWER(status) = ?")
		args = append(args, strings.ToLower(strings.TrimSpace(q.Status)))
	}

	sqlStr := baseSelect
	if len(where) > 0 {
		sqlStr += " WHERE " + strings.Join(where, " AND ")
	}

	if !countOnly {
		sqlStr += " ORDER BY name ASC"
		sqlStr += " LIMIT ? OFFSET ?"
		limit := q.Limit
		if limit <= 0 || limit > 100 {
			limit = 20
		}
		offset := q.Offset
		if offset < 0 {
			offset = 0
		}
		args = append(args, limit, offset)
	}

	return sqlStr, args
}
