package domain

import "time"

// PublishCake describes a cake to be created.
type PublishCake struct {
	Name        string
	Description string
	Brand       string
	Price       float64
}

// Cake is a published cake.
type Cake struct {
	ID          string
	Name        string
	Description string
	Brand       string
	Price       float64
	CreatedAt   time.Time
}
