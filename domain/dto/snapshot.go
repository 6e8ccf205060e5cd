package dto

import "time"

// CatalogSnapshot is the archived document written by the snapshot job
type CatalogSnapshot struct {
	TakenAt    time.Time          `json:"takenAt"`
	Categories []CategoryResponse `json:"categories"`
	Items      []MenuItemResponse `json:"items"`
}

type SnapshotResponse struct {
	Path       string    `json:"path"`
	URL        string    `json:"url"`
	Provider   string    `json:"provider"`
	Categories int       `json:"categories"`
	Items      int       `json:"items"`
	TakenAt    time.Time `json:"takenAt"`
}
