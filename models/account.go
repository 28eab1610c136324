package models

import "time"

// Account is a consumer account as seen from the back-office management
// screens. Distinct from Profile, which is the caller's own identity.
type Account struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	City      string     `json:"city,omitempty"`
	Country   string     `json:"country,omitempty"`
	Points    int        `json:"points,omitempty"`
	Banned    bool       `json:"banned,omitempty"`
	BanReason string     `json:"banReason,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// AccountList is the paginated response of the account listing endpoint.
type AccountList struct {
	Accounts   []Account  `json:"accounts"`
	Pagination Pagination `json:"pagination"`
}

// AccountStats summarizes the consumer user base.
type AccountStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
	Banned int `json:"banned"`
}
