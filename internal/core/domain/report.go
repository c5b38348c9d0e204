package domain

import "time"

// ReportType selects how much detail a collection report carries.
type ReportType string

const (
	ReportSummary  ReportType = "summary"
	ReportDetailed ReportType = "detailed"
)

// AccessFilter narrows the access report.
type AccessFilter struct {
	From     *time.Time
	To       *time.Time
	Resource ResourceTag
	Action   Action
	User     string
}

// ActionCount is one bucket of the per-resource statistics.
type ActionCount struct {
	Action Action `json:"action" bson:"action"`
	Count  int64  `json:"count" bson:"count"`
}

// ResourceStats groups access counts by resource tag.
type ResourceStats struct {
	Resource ResourceTag   `json:"_id" bson:"_id"`
	Actions  []ActionCount `json:"actions" bson:"actions"`
	Total    int64         `json:"total" bson:"total"`
}

// AccessEntry is an AccessRecord with its references resolved.
type AccessEntry struct {
	ID         string         `json:"_id"`
	User       *UserSummary   `json:"user"`
	Resource   ResourceTag    `json:"resource"`
	ResourceID map[string]any `json:"resourceId"`
	Action     Action         `json:"action"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// CollectionReport is the response body of a collection report.
type CollectionReport struct {
	Collection  ResourceTag `json:"collection"`
	ReportType  ReportType  `json:"reportType"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Data        any         `json:"data"`
}
