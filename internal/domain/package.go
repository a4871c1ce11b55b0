package domain

import "time"

// PackageState represents the lifecycle state of a package.
type PackageState string

// List of package states
const (
	StatePending   PackageState = "pendiente"
	StateDelivered PackageState = "entregado"
)

var allowedStates = [...]PackageState{StatePending, StateDelivered}

// Valid checks if the PackageState is known.
func (s PackageState) Valid() bool {
	for _, v := range allowedStates {
		if s == v {
			return true
		}
	}
	return false
}

// Package is a trackable shipment.
// Destination is nil when the package was registered without coordinates.
type Package struct {
	ID           int64
	TrackingCode string
	Address      string
	Destination  *Coordinates
	State        PackageState
	CreatedAt    time.Time
}

// Assignment links an agent to a package.
type Assignment struct {
	ID         int64
	PackageID  int64
	UserID     int64
	AssignedAt time.Time
}
