package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/heart-api/internal/domain"
	"github.com/oksasatya/heart-api/internal/domain/entity"
	repo "github.com/oksasatya/heart-api/internal/domain/repository"
	"github.com/oksasatya/heart-api/pkg/citation"
	"github.com/oksasatya/heart-api/pkg/helpers"
)

type DraftService struct {
	Drafts repo.DraftRepository
	Index  ContentIndexer
	Logger *logrus.Logger
}

func NewDraftService(drafts repo.DraftRepository, index ContentIndexer, logger *logrus.Logger) *DraftService {
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return &DraftService{Drafts: drafts, Index: index, Logger: logger}
}

// CreateDraftInput is validated by the transport layer (title <= 500,
// content required and <= 50,000 characters).
type CreateDraftInput struct {
	Title            *string
	OriginalContent  string
	RewrittenContent *string
	Citations        []citation.Citation
	Metadata         map[string]any
	Status           *string
}

func (s *DraftService) Create(ctx context.Context, userID string, in CreateDraftInput) (*entity.ArticleDraft, error) {
	d := &entity.ArticleDraft{
		UserID:           userID,
		Title:            in.Title,
		OriginalContent:  in.OriginalContent,
		RewrittenContent: in.RewrittenContent,
		Citations:        in.Citations,
		Metadata:         in.Metadata,
		Status:           entity.DraftStatusDraft,
	}
	if in.Status != nil && *in.Status != "" {
		d.Status = *in.Status
	}
	if err := s.Drafts.Create(ctx, d); err != nil {
		return nil, err
	}
	s.index(ctx, d)
	return d, nil
}

// List returns the user's drafts, newest first.
func (s *DraftService) List(ctx context.Context, userID string) ([]entity.ArticleDraft, error) {
	return s.Drafts.ListByUser(ctx, userID)
}

func (s *DraftService) Get(ctx context.Context, userID, id string) (*entity.ArticleDraft, error) {
	if !validID(id) {
		return nil, domain.ErrDraftNotFound
	}
	return s.Drafts.GetByID(ctx, id, userID)
}

// Update merges present fields into the stored draft.
func (s *DraftService) Update(ctx context.Context, userID, id string, patch entity.DraftPatch) (*entity.ArticleDraft, error) {
	if !validID(id) {
		return nil, domain.ErrDraftNotFound
	}
	d, err := s.Drafts.Update(ctx, id, userID, patch)
	if err != nil {
		return nil, err
	}
	s.index(ctx, d)
	return d, nil
}

func (s *DraftService) Delete(ctx context.Context, userID, id string) error {
	if !validID(id) {
		return domain.ErrDraftNotFound
	}
	if err := s.Drafts.Delete(ctx, id, userID); err != nil {
		return err
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, DocumentDraft, id); err != nil {
			s.Logger.WithError(err).WithField("draft_id", id).Warn("search remove failed")
		}
	}
	return nil
}

func (s *DraftService) index(ctx context.Context, d *entity.ArticleDraft) {
	if s.Index == nil {
		return
	}
	doc := SearchDocument{
		ID:        d.ID,
		Kind:      DocumentDraft,
		UserID:    d.UserID,
		Content:   d.OriginalContent,
		UpdatedAt: d.UpdatedAt,
	}
	if d.Title != nil {
		doc.Title = *d.Title
	}
	if d.RewrittenContent != nil && *d.RewrittenContent != "" {
		doc.Content += "\n\n" + *d.RewrittenContent
	}
	if err := s.Index.Index(ctx, doc); err != nil {
		s.Logger.WithError(err).WithField("draft_id", d.ID).Warn("search index failed")
	}
}
