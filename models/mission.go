package models

import "time"

// Mission is a gamified task users complete around the city for points.
type Mission struct {
	ID          string     `json:"id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Points      int        `json:"points"`
	PlaceID     string     `json:"placeId,omitempty"`
	StartsAt    *time.Time `json:"startsAt,omitempty"`
	EndsAt      *time.Time `json:"endsAt,omitempty"`
	Active      bool       `json:"active"`
	Highlighted bool       `json:"highlighted,omitempty"`
	Completions int        `json:"completions,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// MissionList is the paginated response of the mission listing endpoint.
type MissionList struct {
	Missions   []Mission  `json:"missions"`
	Pagination Pagination `json:"pagination"`
}

// MissionStats summarizes mission activity.
type MissionStats struct {
	Total            int `json:"total"`
	Active           int `json:"active"`
	Highlighted      int `json:"highlighted"`
	TotalCompletions int `json:"totalCompletions"`
}
