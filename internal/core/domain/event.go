package domain

import "time"

// Event is addressed by a sequential numeric id, stored as its _id.
type Event struct {
	ID        int64     `json:"_id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Date      time.Time `json:"date" bson:"date"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
