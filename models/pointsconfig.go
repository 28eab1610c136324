package models

import "time"

// LimitedAction is a point-earning action capped per day. A zero DailyLimit
// means unlimited.
type LimitedAction struct {
	Points     int `json:"points"`
	DailyLimit int `json:"dailyLimit,omitempty"`
}

// StreakBonus rewards consecutive daily check-ins.
type StreakBonus struct {
	Active bool `json:"active"`
	Days   int  `json:"days,omitempty"`
	Points int  `json:"points,omitempty"`
}

// CheckInAction extends the daily-capped action with a streak bonus.
type CheckInAction struct {
	LimitedAction
	StreakBonus StreakBonus `json:"streakBonus"`
}

// MissionPoints awards points per mission cadence.
type MissionPoints struct {
	Daily   int `json:"daily"`
	Weekly  int `json:"weekly"`
	Monthly int `json:"monthly"`
}

// PointActions holds the per-action award rules.
type PointActions struct {
	CheckIn          CheckInAction  `json:"checkin"`
	Review           LimitedAction  `json:"review"`
	CouponRedemption LimitedAction  `json:"couponRedemption"`
	Share            LimitedAction  `json:"share"`
	FirstVisit       LimitedAction  `json:"firstVisit"`
	StickerReward    map[string]int `json:"stickerReward,omitempty"`
	MissionComplete  MissionPoints  `json:"missionComplete"`
}

// LevelRules controls how accumulated points translate into levels.
type LevelRules struct {
	Progression     string  `json:"progression"`
	LinearBase      int     `json:"linearBase,omitempty"`
	ExponentialBase float64 `json:"exponentialBase,omitempty"`
}

// PointsConfig is the active gamification ruleset. Only one version is
// active at a time; updates create a new version server-side.
type PointsConfig struct {
	ID        string       `json:"id,omitempty"`
	Active    bool         `json:"active"`
	Actions   PointActions `json:"actions"`
	Levels    LevelRules   `json:"levels"`
	Version   int          `json:"version,omitempty"`
	CreatedAt *time.Time   `json:"createdAt,omitempty"`
	UpdatedAt *time.Time   `json:"updatedAt,omitempty"`
}

// PointsSimulation is the outcome of a what-if run against the active
// ruleset.
type PointsSimulation struct {
	Action            string `json:"action"`
	Quantity          int    `json:"quantity"`
	EffectiveQuantity int    `json:"effectiveQuantity"`
	PointsPerAction   int    `json:"pointsPerAction"`
	TotalPoints       int    `json:"totalPoints"`
	DailyLimit        *int   `json:"dailyLimit,omitempty"`
	LimitReached      bool   `json:"limitReached"`
}

// LevelProgress reports how far the given level is from the next one.
type LevelProgress struct {
	CurrentLevel int `json:"currentLevel"`
	NextLevel    int `json:"nextLevel"`
	PointsNeeded int `json:"pointsNeeded"`
}

// ConfigVersion is one entry of the ruleset version history.
type ConfigVersion struct {
	Version   int        `json:"version"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}
