package domain

import (
	"io"
	"time"
)

// Delivery is the immutable evidence record of a drop-off.
// Notes is nil when the agent left no notes.
type Delivery struct {
	ID          int64
	PackageID   int64
	UserID      int64
	DeliveredAt time.Time
	Location    Coordinates
	PhotoURL    string
	Notes       *string
}

// Photo is an uploaded evidence payload.
type Photo struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// DeliverySubmission is what an agent sends to register a delivery.
type DeliverySubmission struct {
	UserID    int64
	PackageID int64
	Lat       float64
	Lng       float64
	Notes     string
	Photo     Photo
}

// DeliveryResult is returned after a delivery was registered.
type DeliveryResult struct {
	DeliveryID int64
	PhotoURL   string
}
