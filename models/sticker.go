package models

import "time"

// Sticker rarities, from most to least common.
const (
	RarityCommon    = "common"
	RarityUncommon  = "uncommon"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// Sticker is a collectible card tied to a place, earned by visiting it.
type Sticker struct {
	ID           string          `json:"id,omitempty"`
	Number       int             `json:"number"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	PlaceID      string          `json:"placeId"`
	Rarity       string          `json:"rarity"`
	Series       string          `json:"series,omitempty"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	ThumbnailURL string          `json:"thumbnailUrl,omitempty"`
	Condition    UnlockCondition `json:"condition"`
	Points       int             `json:"points,omitempty"`
	Active       bool            `json:"active"`
	ReleasedAt   *time.Time      `json:"releasedAt,omitempty"`
	TimesEarned  int             `json:"timesEarned,omitempty"`
	CreatedAt    *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time      `json:"updatedAt,omitempty"`
}

// StickerList is the paginated response of the sticker listing endpoint.
type StickerList struct {
	Stickers   []Sticker  `json:"stickers"`
	Pagination Pagination `json:"pagination"`
}

// StickerStats summarizes the sticker album.
type StickerStats struct {
	Total    int            `json:"total"`
	Active   int            `json:"active"`
	ByRarity map[string]int `json:"byRarity,omitempty"`
	BySeries map[string]int `json:"bySeries,omitempty"`
}
