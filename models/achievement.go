package models

import "time"

// Achievement tiers, from lowest to highest.
const (
	TierBronze   = "bronze"
	TierSilver   = "silver"
	TierGold     = "gold"
	TierPlatinum = "platinum"
	TierDiamond  = "diamond"
)

// UnlockCondition describes what earns an achievement or a sticker.
type UnlockCondition struct {
	Type        string `json:"type"`
	Target      int    `json:"target,omitempty"`
	Description string `json:"description,omitempty"`
}

// AchievementReward is what completing an achievement grants.
type AchievementReward struct {
	Points int    `json:"points"`
	Bonus  string `json:"bonus,omitempty"`
}

// Achievement is a badge users earn by completing in-app activities.
type Achievement struct {
	ID          string            `json:"id,omitempty"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Icon        string            `json:"icon,omitempty"`
	Tier        string            `json:"tier"`
	Category    string            `json:"category,omitempty"`
	Condition   UnlockCondition   `json:"condition"`
	Reward      AchievementReward `json:"reward"`
	ImageURL    string            `json:"imageUrl,omitempty"`
	Active      bool              `json:"active"`
	Order       int               `json:"order,omitempty"`
	CreatedAt   *time.Time        `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time        `json:"updatedAt,omitempty"`
}

// AchievementList is the paginated response of the achievement listing
// endpoint.
type AchievementList struct {
	Achievements []Achievement `json:"achievements"`
	Pagination   Pagination    `json:"pagination"`
}

// AchievementStats summarizes the achievement catalog.
type AchievementStats struct {
	Total      int            `json:"total"`
	Active     int            `json:"active"`
	Inactive   int            `json:"inactive"`
	ByTier     map[string]int `json:"byTier,omitempty"`
	ByCategory map[string]int `json:"byCategory,omitempty"`
}
