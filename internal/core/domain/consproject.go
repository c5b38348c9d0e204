package domain

import "time"

// ConsProjectStatus is the progress state of a construction project.
type ConsProjectStatus string

const (
	ConsProjectPending    ConsProjectStatus = "Pending"
	ConsProjectInProgress ConsProjectStatus = "In Progress"
	ConsProjectCompleted  ConsProjectStatus = "Completed"
)

var ConsProjectStatuses = []ConsProjectStatus{ConsProjectPending, ConsProjectInProgress, ConsProjectCompleted}

// ConsProject is a construction project vehicles can be assigned to.
type ConsProject struct {
	ID        string            `json:"_id" bson:"_id,omitempty"`
	Name      string            `json:"name" bson:"name"`
	Place     string            `json:"place" bson:"place"`
	Status    ConsProjectStatus `json:"status" bson:"status"`
	StartDate time.Time         `json:"startDate" bson:"startDate"`
	Client    string            `json:"client" bson:"client"`
	CreatedAt time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt" bson:"updatedAt"`
}
