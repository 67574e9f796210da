package events

import "time"

type ProjectEvent struct {
	Type      string    `json:"type"` // "project.created" or "project.deleted"
	ProjectID string    `json:"project_id"`
	Name      string    `json:"name,omitempty"`
	At        time.Time `json:"at"`
}

type ImportEvent struct {
	Type     string    `json:"type"` // "import.completed"
	Imported int       `json:"imported"`
	Failed   int       `json:"failed"`
	At       time.Time `json:"at"`
}
