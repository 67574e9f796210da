package project

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projectdeck/pkg/models"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../../docs/schema.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	return NewRepo(db)
}

func seedProject(t *testing.T, r *Repo, id, name, status string) {
	t.Helper()
	err := r.Create(context.Background(), &models.Project{
		ID:          id,
		Name:        name,
		Status:      status,
		Priority:    models.PriorityMedium,
		Description: "Seeded for testing",
		Technology:  []string{"Go"},
		TeamSize:    1,
	})
	require.NoError(t, err)
}

func TestRepoCreateAndGet(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	p := &models.Project{
		ID:          "taskflow",
		Name:        "TaskFlow",
		Status:      models.StatusDevelopment,
		Priority:    models.PriorityHigh,
		Description: "A task manager",
		Technology:  []string{"Go", "React"},
		TeamSize:    3,
		PricingTiers: map[string]string{
			"premium": "$9.99/month",
		},
		Testimonials: []models.Testimonial{{Quote: "Great app!", Author: "Jane Doe"}},
	}
	require.NoError(t, r.Create(ctx, p))

	got, err := r.GetByID(ctx, "taskflow")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, p.Technology, got.Technology)
	assert.Equal(t, p.PricingTiers, got.PricingTiers)
	assert.Equal(t, p.Testimonials, got.Testimonials)

	t.Run("unknown id", func(t *testing.T) {
		got, err := r.GetByID(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("duplicate name rejected by the schema", func(t *testing.T) {
		err := r.Create(ctx, &models.Project{ID: "taskflow-2", Name: "TaskFlow", Status: models.StatusIdea})
		assert.Error(t, err)
	})
}

func TestRepoListAndCount(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	seedProject(t, r, "alpha", "Alpha", models.StatusIdea)
	seedProject(t, r, "beta", "Beta Tracker", models.StatusDevelopment)
	seedProject(t, r, "gamma", "Gamma", models.StatusDevelopment)

	t.Run("no filter, name order", func(t *testing.T) {
		out, err := r.List(ctx, ListQuery{})
		require.NoError(t, err)
		require.Len(t, out, 3)
		assert.Equal(t, "Alpha", out[0].Name)
		assert.Equal(t, "Gamma", out[2].Name)
	})

	t.Run("status filter is case-insensitive", func(t *testing.T) {
		out, err := r.List(ctx, ListQuery{Status: "development"})
		require.NoError(t, err)
		assert.Len(t, out, 2)

		n, err := r.Count(ctx, ListQuery{Status: "DEVELOPMENT"})
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("keyword search", func(t *testing.T) {
		out, err := r.List(ctx, ListQuery{Q: "tracker"})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "Beta Tracker", out[0].Name)
	})

	t.Run("limit and offset", func(t *testing.T) {
		out, err := r.List(ctx, ListQuery{Limit: 2, Offset: 2})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "Gamma", out[0].Name)
	})
}

func TestRepoNamesAndDelete(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	seedProject(t, r, "alpha", "Alpha", models.StatusIdea)
	seedProject(t, r, "beta", "Beta", models.StatusIdea)

	names, err := r.Names(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Alpha", "Beta"}, names)

	ok, err := r.Delete(ctx, "alpha")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Delete(ctx, "alpha")
	require.NoError(t, err)
	assert.False(t, ok)

	names, err = r.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta"}, names)
}
