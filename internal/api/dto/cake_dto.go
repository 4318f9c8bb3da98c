package dto

import "time"

// PublishCakeRequest payload.
type PublishCakeRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Brand       string  `json:"brand"`
	Price       float64 `json:"price"`
}

// CakeResponse represents a published cake.
type CakeResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Brand       string    `json:"brand"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}
