package project

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projectdeck/pkg/models"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Repo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newTestRepo(t)
	h := NewHandler(repo, nil, 100)

	r := gin.New()
	h.RegisterRoutes(r.Group("/projects"))
	return r, repo
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCreateEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	p := models.Project{
		Name:        "TaskFlow",
		Description: "A task manager for small teams",
		Technology:  []string{"Go"},
	}

	w := doJSON(t, r, http.MethodPost, "/projects", p)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "taskflow", created.ID)
	assert.Equal(t, models.StatusIdea, created.Status)
	assert.Equal(t, 1, created.TeamSize)

	t.Run("duplicate name conflicts", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/projects", p)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("invalid record", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/projects", models.Project{Name: "Hi"})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := decodeBody(t, w)
		assert.Len(t, body["errors"], 3)
	})
}

func TestGetListDeleteEndpoints(t *testing.T) {
	r, repo := newTestRouter(t)
	seedProject(t, repo, "alpha", "Alpha", models.StatusIdea)
	seedProject(t, repo, "beta", "Beta", models.StatusDevelopment)

	t.Run("get by id", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/projects/alpha", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var p models.Project
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		assert.Equal(t, "Alpha", p.Name)
	})

	t.Run("get unknown id", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/projects/nope", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("list with status filter", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/projects?status=Development", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(1), body["total"])
	})

	t.Run("delete then 404", func(t *testing.T) {
		w := doJSON(t, r, http.MethodDelete, "/projects/alpha", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		w = doJSON(t, r, http.MethodDelete, "/projects/alpha", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestImportCSVEndpoint(t *testing.T) {
	r, repo := newTestRouter(t)
	seedProject(t, repo, "gamma", "Gamma", models.StatusIdea)

	doc := "Project_Name | Status | Description | Tech_Stack\n" +
		"Alpha | idea | A reasonably long description | Go; SQLite\n" +
		"Gamma | idea | A reasonably long description | Go\n" +
		"Beta | | missing status row | Go"

	w := doJSON(t, r, http.MethodPost, "/projects/import/csv", importReq{Content: doc})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["imported"])
	assert.Equal(t, float64(2), body["failed"])
	errs := body["errors"].([]any)
	require.Len(t, errs, 2)
	assert.Equal(t, `Row 2: project "Gamma" already exists`, errs[0])
	assert.Equal(t, "Row 3: missing required fields (Project_Name, Status)", errs[1])

	stored, err := repo.GetByID(context.Background(), "alpha")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, []string{"Go", "SQLite"}, stored.Technology)

	t.Run("empty content", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/projects/import/csv", importReq{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("header only", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/projects/import/csv", importReq{Content: "Project_Name | Status"})
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "document must contain a header row and at least one data row", body["error"])
	})

	t.Run("row limit", func(t *testing.T) {
		h := NewHandler(repo, nil, 1)
		limited := gin.New()
		h.RegisterRoutes(limited.Group("/projects"))

		w := doJSON(t, limited, http.MethodPost, "/projects/import/csv", importReq{Content: doc})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestImportTemplateEndpoint(t *testing.T) {
	r, repo := newTestRouter(t)

	doc := "# TaskFlow Pro\n\n## 📋 QUICK_SUMMARY\nA kanban tool for freelancers and studios.\n\n## 🚀 PROJECT_METADATA\n- **STATUS**: In Development\n- **TECHNOLOGY**: [\"Go\", \"React\"]\n- **TEAM_SIZE**: 2\n"

	w := doJSON(t, r, http.MethodPost, "/projects/import/template", importReq{Content: doc})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "taskflow-pro", created.ID)
	assert.Equal(t, models.StatusDevelopment, created.Status)
	assert.Equal(t, 2, created.TeamSize)

	stored, err := repo.GetByID(context.Background(), "taskflow-pro")
	require.NoError(t, err)
	require.NotNil(t, stored)

	t.Run("reimport conflicts", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/projects/import/template", importReq{Content: doc})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unparseable document", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/projects/import/template", importReq{Content: "Just A Title"})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "failed to parse template", body["error"])
	})

	t.Run("parsed but invalid record", func(t *testing.T) {
		doc := "Side Project\n\nA little weekend build that might grow up someday.\n"
		w := doJSON(t, r, http.MethodPost, "/projects/import/template", importReq{Content: doc})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, []any{"At least one technology is required"}, body["errors"])
	})
}
