package dto

import "time"

type JobResponse struct {
	ID       string     `json:"id"`
	CronExpr string     `json:"cronExpr"`
	LastRun  *time.Time `json:"lastRun,omitempty"`
	NextRun  *time.Time `json:"nextRun,omitempty"`
}
