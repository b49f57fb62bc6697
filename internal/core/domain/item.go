package domain

import "time"

// ItemStatus represents where a reported item is in its lifecycle.
type ItemStatus string

const (
	ItemLost     ItemStatus = "lost"
	ItemFound    ItemStatus = "found"
	ItemClaimed  ItemStatus = "claimed"
	ItemResolved ItemStatus = "resolved"
)

// Valid reports whether s is a known item status.
func (s ItemStatus) Valid() bool {
	switch s {
	case ItemLost, ItemFound, ItemClaimed, ItemResolved:
		return true
	}
	return false
}

// AccountRef is the denormalized owner reference stored on each item.
type AccountRef struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// Item is a lost or found report. PostedBy is the ownership relation consulted
// by access control.
type Item struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Category    string     `json:"category"`
	Status      ItemStatus `json:"status"`
	Reward      float64    `json:"reward"`
	ImageURL    string     `json:"image_url,omitempty"`
	PostedBy    AccountRef `json:"posted_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
