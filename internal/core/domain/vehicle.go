package domain

import "time"

type VehicleState string

const (
	VehicleActive        VehicleState = "active"
	VehicleInactive      VehicleState = "inactive"
	VehicleInMaintenance VehicleState = "in maintenance"
)

var VehicleStates = []VehicleState{VehicleActive, VehicleInactive, VehicleInMaintenance}

// ProjectRef is the populated view of the project a vehicle belongs to.
type ProjectRef struct {
	ID     string            `json:"_id"`
	Name   string            `json:"name"`
	Place  string            `json:"place"`
	Client string            `json:"client"`
	Status ConsProjectStatus `json:"status"`
}

// Vehicle is a machine optionally assigned to a ConsProject.
type Vehicle struct {
	ID        string       `json:"_id" bson:"_id,omitempty"`
	Plate     string       `json:"plate" bson:"plate"`
	Type      string       `json:"type" bson:"type"`
	ProjectID string       `json:"-" bson:"project,omitempty"`
	Project   *ProjectRef  `json:"project" bson:"-"`
	State     VehicleState `json:"state" bson:"state"`
	CreatedAt time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt" bson:"updatedAt"`
}
