package entity

import "time"

const (
	TopicStatusActive   = "active"
	TopicStatusArchived = "archived"
)

// Topic groups research entries. The entry counters are computed on read.
type Topic struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Name             string    `json:"name"`
	Description      *string   `json:"description"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	TotalEntries     int64     `json:"total_entries"`
	ProcessedEntries int64     `json:"processed_entries"`
}

// TopicPatch carries optional topic fields; nil keeps the stored value.
type TopicPatch struct {
	Name        *string
	Description *string
	Status      *string
}
