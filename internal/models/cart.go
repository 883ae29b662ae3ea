package models

import (
	"time"
)

// CartSelection is a set of services and addons a visitor put in the cart.
// Carts are anonymous and expire; a background task purges stale rows.
type CartSelection struct {
	ID        string    `json:"id"`
	Services  []string  `json:"services"`
	Addons    []string  `json:"addons"`
	CreatedAt time.Time `json:"createdAt"`
}
