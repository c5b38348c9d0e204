package domain

import "time"

// Task is an item of work inside a Project.
type Task struct {
	TaskName  string `json:"taskName" bson:"taskName"`
	Completed bool   `json:"completed" bson:"completed"`
}

// Project is a generic tracked project with a task list. Its status values
// are shared with ConsProject.
type Project struct {
	ID          string            `json:"_id" bson:"_id,omitempty"`
	Title       string            `json:"title" bson:"title"`
	Description string            `json:"description" bson:"description"`
	StartDate   *time.Time        `json:"startDate,omitempty" bson:"startDate,omitempty"`
	DueDate     *time.Time        `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	Status      ConsProjectStatus `json:"status" bson:"status"`
	Tasks       []Task            `json:"tasks" bson:"tasks"`
	CreatedAt   time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt" bson:"updatedAt"`
}
