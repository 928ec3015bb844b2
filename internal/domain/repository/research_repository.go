package repository

import (
	"context"

	"github.com/oksasatya/heart-api/internal/domain/entity"
)

// Every method is scoped by the owning user; rows of other users behave as
// absent.

type TopicRepository interface {
	Create(ctx context.Context, t *entity.Topic) error
	ListByUser(ctx context.Context, userID string) ([]entity.Topic, error)
	GetByID(ctx context.Context, id, userID string) (*entity.Topic, error)
	Update(ctx context.Context, id, userID string, patch entity.TopicPatch) (*entity.Topic, error)
	Delete(ctx context.Context, id, userID string) error
}

// EntryRepository writes an entry and bumps its topic's updated_at in one
// transaction.
type EntryRepository interface {
	Create(ctx context.Context, e *entity.ResearchEntry) error
	ListByTopic(ctx context.Context, topicID, userID string) ([]entity.ResearchEntry, error)
	GetByID(ctx context.Context, id, userID string) (*entity.ResearchEntry, error)
	Update(ctx context.Context, id, userID string, patch entity.EntryPatch) (*entity.ResearchEntry, error)
	Delete(ctx context.Context, id, userID string) (topicID string, err error)
}

type DraftRepository interface {
	Create(ctx context.Context, d *entity.ArticleDraft) error
	ListByUser(ctx context.Context, userID string) ([]entity.ArticleDraft, error)
	GetByID(ctx context.Context, id, userID string) (*entity.ArticleDraft, error)
	Update(ctx context.Context, id, userID string, patch entity.DraftPatch) (*entity.ArticleDraft, error)
	Delete(ctx context.Context, id, userID string) error
}
