package handlers

import (
	"encoding/json"
	"time"
)

type messageResponse struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

type hashResponse struct {
	Password string `json:"password"`
	Hash     string `json:"hash"`
}

// Coordinates are rendered as JSON numbers with their stored precision.
type packageDTO struct {
	ID           int64        `json:"id"`
	TrackingCode string       `json:"tracking_code"`
	Address      string       `json:"address"`
	State        string       `json:"state"`
	Lat          *json.Number `json:"lat"`
	Lng          *json.Number `json:"lng"`
}

type deliveryResponse struct {
	Message    string `json:"message"`
	DeliveryID int64  `json:"deliveryId"`
	PhotoURL   string `json:"photoUrl"`
}
