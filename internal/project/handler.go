package project

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"projectdeck/internal/events"
	"projectdeck/internal/ingest"
	"projectdeck/pkg/models"
)

type Handler struct {
	Repo          *Repo
	Hub           *events.Hub
	MaxImportRows int
}

func NewHandler(repo *Repo, hub *events.Hub, maxImportRows int) *Handler {
	return &Handler{Repo: repo, Hub: hub, MaxImportRows: maxImportRows}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)          // GET /projects
	rg.GET("/:id", h.getByID)   // GET /projects/:id
	rg.POST("", h.create)       // POST /projects
	rg.DELETE("/:id", h.remove) // DELETE /projects/:id

	rg.POST("/import/csv", h.importCSV)           // bulk pipe-delimited table
	rg.POST("/import/template", h.importTemplate) // one AI-template document
}

func (h *Handler) list(c *gin.Context) {
	q := ListQuery{
		Q:      c.Query("q"),
		Status: c.Query("status"),
		Limit:  parseInt(c.Query("limit"), 20),
		Offset: parseInt(c.Query("offset"), 0),
	}

	total, err := h.Repo.Count(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "count failed"})
		return
	}

	items, err := h.Repo.List(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"limit":  q.Limit,
		"offset": q.Offset,
		"items":  items,
	})
}

func (h *Handler) getByID(c *gin.Context) {
	id := c.Param("id")
	p, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) create(c *gin.Context) {
	var p models.Project
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	ingest.Finalize(&p)
	if errs := ingest.Validate(&p); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	taken, err := h.takenNames(c)
	if err != nil {
		return
	}
	if taken[p.Name] {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("project %q already exists", p.Name)})
		return
	}

	if p.ID == "" {
		p.ID = ingest.NewProjectID(p.Name, map[string]bool{})
	}
	if err := h.Repo.Create(c.Request.Context(), &p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	h.broadcastCreated(&p)
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) remove(c *gin.Context) {
	id := c.Param("id")
	ok, err := h.Repo.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if h.Hub != nil {
		go h.Hub.BroadcastJSON(events.ProjectEvent{
			Type:      "project.deleted",
			ProjectID: id,
			At:        time.Now().UTC(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

type importReq struct {
	Content string `json:"content"`
}

// importCSV runs the batch orchestrator over a raw pipe-delimited document
// and stores every row that survived it. Row errors come back in the
// response body; they never fail the request.
func (h *Handler) importCSV(c *gin.Context) {
	var req importReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content required"})
		return
	}

	rows, err := ingest.ParseDocument(req.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if h.MaxImportRows > 0 && len(rows) > h.MaxImportRows {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("too many rows: %d (limit %d)", len(rows), h.MaxImportRows),
		})
		return
	}

	names, err := h.Repo.Names(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load existing names failed"})
		return
	}

	res := ingest.ImportBatch(rows, names)

	stored := make([]models.Project, 0, len(res.Imported))
	for i := range res.Imported {
		p := &res.Imported[i]
		if err := h.Repo.Create(c.Request.Context(), p); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("project %q: save failed", p.Name))
			res.FailedCount++
			continue
		}
		stored = append(stored, *p)
		h.broadcastCreated(p)
	}

	if h.Hub != nil {
		go h.Hub.BroadcastJSON(events.ImportEvent{
			Type:     "import.completed",
			Imported: len(stored),
			Failed:   res.FailedCount,
			At:       time.Now().UTC(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"imported": len(stored),
		"failed":   res.FailedCount,
		"errors":   res.Errors,
		"projects": stored,
	})
}

// importTemplate parses one free-form template document into a single
// record. A document with no recoverable name or description is the one
// blocking failure of this channel.
func (h *Handler) importTemplate(c *gin.Context) {
	var req importReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	p := ingest.ParseTemplate(req.Content)
	if p == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "failed to parse template"})
		return
	}

	if errs := ingest.Validate(p); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	taken, err := h.takenNames(c)
	if err != nil {
		return
	}
	if taken[p.Name] {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("project %q already exists", p.Name)})
		return
	}

	p.ID = ingest.NewProjectID(p.Name, map[string]bool{})
	if err := h.Repo.Create(c.Request.Context(), p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	h.broadcastCreated(p)
	c.JSON(http.StatusCreated, p)
}

// takenNames loads the stored name set, writing the error response itself.
func (h *Handler) takenNames(c *gin.Context) (map[string]bool, error) {
	names, err := h.Repo.Names(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load existing names failed"})
		return nil, err
	}
	taken := make(map[string]bool, len(names))
	for _, n := range names {
		taken[strings.TrimSpace(n)] = true
	}
	return taken, nil
}

func (h *Handler) broadcastCreated(p *models.Project) {
	if h.Hub == nil {
		return
	}
	go h.Hub.BroadcastJSON(events.ProjectEvent{
		Type:      "project.created",
		ProjectID: p.ID,
		Name:      p.Name,
		At:        time.Now().UTC(),
	})
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
