package models

import "time"

// Business is a local partner that publishes coupons.
type Business struct {
	ID              string     `json:"id,omitempty"`
	Name            string     `json:"name"`
	Category        string     `json:"category,omitempty"`
	Description     string     `json:"description,omitempty"`
	LogoURL         string     `json:"logoUrl,omitempty"`
	City            string     `json:"city,omitempty"`
	Address         string     `json:"address,omitempty"`
	Latitude        float64    `json:"latitude,omitempty"`
	Longitude       float64    `json:"longitude,omitempty"`
	Approval        string     `json:"approval,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	Subscribed      bool       `json:"subscribed,omitempty"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

// BusinessList is the paginated response of the business listing endpoint.
type BusinessList struct {
	Businesses []Business `json:"businesses"`
	Pagination Pagination `json:"pagination"`
}

// BusinessStats summarizes registered businesses.
type BusinessStats struct {
	Total      int            `json:"total"`
	Approved   int            `json:"approved"`
	Pending    int            `json:"pending"`
	ByCategory map[string]int `json:"byCategory,omitempty"`
}
