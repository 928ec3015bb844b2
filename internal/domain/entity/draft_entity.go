package entity

import (
	"time"

	"github.com/oksasatya/heart-api/pkg/citation"
)

const DraftStatusDraft = "draft"

// ArticleDraft is a two-pane editor document. Citations and Metadata are
// persisted as JSONB.
type ArticleDraft struct {
	ID               string              `json:"id"`
	UserID           string              `json:"userId"`
	Title            *string             `json:"title"`
	OriginalContent  string              `json:"originalContent"`
	RewrittenContent *string             `json:"rewrittenContent"`
	Citations        []citation.Citation `json:"citations"`
	Metadata         map[string]any      `json:"metadata"`
	Status           string              `json:"status"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

// DraftPatch carries optional draft fields; nil keeps the stored value.
type DraftPatch struct {
	Title            *string
	OriginalContent  *string
	RewrittenContent *string
	Citations        []citation.Citation
	Metadata         map[string]any
	Status           *string
}
