package models

import "time"

// Place is a point of interest shown on the map.
type Place struct {
	ID          string     `json:"id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	Address     string     `json:"address,omitempty"`
	City        string     `json:"city,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Active      bool       `json:"active"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// PlaceList is the paginated response of the place listing endpoint.
type PlaceList struct {
	Places     []Place    `json:"places"`
	Pagination Pagination `json:"pagination"`
}

// PlaceStats summarizes the point-of-interest catalog.
type PlaceStats struct {
	Total      int            `json:"total"`
	Active     int            `json:"active"`
	ByCategory map[string]int `json:"byCategory,omitempty"`
}
