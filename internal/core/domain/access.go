package domain

import (
	"strings"
	"time"
)

// Action is what an identity did to a resource.
type Action string

const (
	ActionCreate   Action = "create"
	ActionRetrieve Action = "retrieve"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
)

func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionRetrieve, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// ListPlaceholderID marks a collection-level access rather than a single document.
const ListPlaceholderID = "000000000000000000000000"

// ResourceTag names the kind of document an AccessRecord points at.
type ResourceTag string

const (
	ResourceConsProject ResourceTag = "ConsProject"
	ResourceVehicle     ResourceTag = "Vehicle"
	ResourceUser        ResourceTag = "User"
	ResourceEvent       ResourceTag = "Event"
	ResourceProduct     ResourceTag = "Product"
	ResourceProject     ResourceTag = "Project"
	ResourcePatient     ResourceTag = "Patient"
)

// ResourceLocation tells a resolver where documents of a tag live.
type ResourceLocation struct {
	Collection string
	// Key is the field resourceId is matched against.
	Key string
	// Numeric keys hold integers instead of ObjectIDs.
	Numeric bool
}

var resourceLocations = map[ResourceTag]ResourceLocation{
	ResourceConsProject: {Collection: "consprojects", Key: "_id"},
	ResourceVehicle:     {Collection: "vehicles", Key: "_id"},
	ResourceUser:        {Collection: "users", Key: "_id"},
	ResourceEvent:       {Collection: "events", Key: "_id", Numeric: true},
	ResourceProduct:     {Collection: "products", Key: "_id"},
	ResourceProject:     {Collection: "projects", Key: "_id"},
	ResourcePatient:     {Collection: "patients", Key: "_id"},
}

// Location returns where documents tagged t are stored.
func (t ResourceTag) Location() (ResourceLocation, bool) {
	loc, ok := resourceLocations[t]
	return loc, ok
}

// Collection is a shorthand for Location().Collection.
func (t ResourceTag) Collection() string {
	return resourceLocations[t].Collection
}

// ParseResourceTag accepts canonical tags and the hyphenated "Cons-Project" spelling.
func ParseResourceTag(s string) (ResourceTag, bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "Cons-Project") {
		return ResourceConsProject, true
	}
	for tag := range resourceLocations {
		if strings.EqualFold(string(tag), s) {
			return tag, true
		}
	}
	return "", false
}

// AccessRecord is an append-only audit entry.
type AccessRecord struct {
	ID         string      `json:"_id" bson:"_id,omitempty"`
	User       string      `json:"user" bson:"user"`
	Resource   ResourceTag `json:"resource" bson:"resource"`
	ResourceID string      `json:"resourceId" bson:"resourceId"`
	Action     Action      `json:"action" bson:"action"`
	CreatedAt  time.Time   `json:"createdAt" bson:"createdAt"`
}

// Validate checks the invariants every persisted record must satisfy.
func (r AccessRecord) Validate() error {
	var msgs []string
	if r.User == "" {
		msgs = append(msgs, "user is required")
	}
	if _, ok := r.Resource.Location(); !ok {
		msgs = append(msgs, "resource is not a known resource type")
	}
	if r.ResourceID == "" {
		msgs = append(msgs, "resourceId is required")
	}
	if !r.Action.Valid() {
		msgs = append(msgs, "action must be one of: create retrieve update delete")
	}
	if len(msgs) > 0 {
		return NewValidationError(msgs...)
	}
	return nil
}
