package kafka

import (
	"strings"
	"time"

	"paquexpress-service/internal/service/assignments"
)

// EventDTO is the wire form of an assignment event.
type EventDTO struct {
	Action       string    `json:"action,omitempty"`
	TrackingCode string    `json:"tracking_code"`
	Address      string    `json:"address"`
	Lat          *float64  `json:"lat,omitempty"`
	Lng          *float64  `json:"lng,omitempty"`
	AgentID      int64     `json:"agent_id"`
	AssignedAt   time.Time `json:"assigned_at,omitempty"`
}

// ToDomain converts EventDTO to assignments.Event
func ToDomain(dto EventDTO) assignments.Event {
	return assignments.Event{
		Action:       strings.TrimSpace(dto.Action),
		TrackingCode: strings.TrimSpace(dto.TrackingCode),
		Address:      strings.TrimSpace(dto.Address),
		Lat:          dto.Lat,
		Lng:          dto.Lng,
		AgentID:      dto.AgentID,
		AssignedAt:   dto.AssignedAt,
	}
}
