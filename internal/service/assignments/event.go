package assignments

import "time"

// Actions carried by assignment events.
const (
	ActionAssigned   = "assigned"
	ActionUnassigned = "unassigned"
)

// Event is a single package assignment event.
// Lat and Lng are optional and must be given together.
type Event struct {
	Action       string
	TrackingCode string
	Address      string
	Lat          *float64
	Lng          *float64
	AgentID      int64
	AssignedAt   time.Time
}
