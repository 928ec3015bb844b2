package entity

import "time"

const EntryTypeManual = "manual"

// ResearchEntry is a research note owned by a topic.
type ResearchEntry struct {
	ID            string    `json:"id"`
	TopicID       string    `json:"topic_id"`
	UserID        string    `json:"user_id"`
	OriginalText  string    `json:"original_text"`
	RewrittenText *string   `json:"rewritten_text"`
	Source        *string   `json:"source"`
	Notes         *string   `json:"notes"`
	EntryType     string    `json:"entry_type"`
	IsProcessed   bool      `json:"is_processed"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type EntryPatch struct {
	OriginalText  *string
	RewrittenText *string
	Source        *string
	Notes         *string
	IsProcessed   *bool
}
