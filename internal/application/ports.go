// Package application holds the use cases behind the HTTP handlers.
// Collaborators are consumed through the small interfaces in this file;
// optional ones (notifier, indexer, uploader, cache, recorder) may be nil.
package application

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Generate(userID, email string) (string, time.Time, error)
}

// WelcomeNotifier sends the post-signup welcome message.
type WelcomeNotifier interface {
	Welcome(ctx context.Context, email string) error
}

// Rewriter rewrites text in a given style.
type Rewriter interface {
	Rewrite(ctx context.Context, text, style string) (*RewriteResult, error)
}

// GrammarChecker reports grammar and style issues.
type GrammarChecker interface {
	Check(ctx context.Context, text, language string) (*GrammarResult, error)
}

// AIDetector classifies text as human- or machine-written.
type AIDetector interface {
	Detect(ctx context.Context, text string) (*DetectionResult, error)
}

// ResearchProvider suggests related literature.
type ResearchProvider interface {
	Suggest(ctx context.Context, query string) (*ResearchResult, error)
}

// ResultCache stores JSON-serializable tool results.
type ResultCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// ToolRecorder counts tool invocations by outcome.
type ToolRecorder interface {
	ObserveTool(tool, outcome string)
}

// Uploader stores an exported file and returns its URL.
type Uploader interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

const (
	DocumentDraft = "draft"
	DocumentEntry = "entry"
)

// SearchDocument is the searchable projection of a draft or entry.
type SearchDocument struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	UserID    string    `json:"user_id"`
	TopicID   string    `json:"topic_id,omitempty"`
	Title     string    `json:"title,omitempty"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContentIndexer keeps the search index in step with the store.
type ContentIndexer interface {
	Index(ctx context.Context, doc SearchDocument) error
	Remove(ctx context.Context, kind, id string) error
	Search(ctx context.Context, userID, query string, size int) ([]SearchDocument, error)
}

// validID reports whether id is a UUID. Malformed ids never match a row,
// so callers answer them with NotFound without touching the store.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
