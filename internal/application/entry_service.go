package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/heart-api/internal/domain"
	"github.com/oksasatya/heart-api/internal/domain/entity"
	repo "github.com/oksasatya/heart-api/internal/domain/repository"
	"github.com/oksasatya/heart-api/pkg/helpers"
)

const msgResearchTextRequired = "Research text is required"

type EntryService struct {
	Entries repo.EntryRepository
	Index   ContentIndexer
	Logger  *logrus.Logger
}

func NewEntryService(entries repo.EntryRepository, index ContentIndexer, logger *logrus.Logger) *EntryService {
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return &EntryService{Entries: entries, Index: index, Logger: logger}
}

type AddEntryInput struct {
	OriginalText string
	Source       *string
	Notes        *string
}

// Add stores a manual, unprocessed entry under a topic the user owns.
func (s *EntryService) Add(ctx context.Context, userID, topicID string, in AddEntryInput) (*entity.ResearchEntry, error) {
	if strings.TrimSpace(in.OriginalText) == "" {
		return nil, domain.NewValidationError("originalText", msgResearchTextRequired)
	}
	if !validID(topicID) {
		return nil, domain.ErrTopicAccess
	}

	e := &entity.ResearchEntry{
		TopicID:      topicID,
		UserID:       userID,
		OriginalText: in.OriginalText,
		Source:       in.Source,
		Notes:        in.Notes,
		EntryType:    entity.EntryTypeManual,
		IsProcessed:  false,
	}
	if err := s.Entries.Create(ctx, e); err != nil {
		return nil, err
	}
	s.index(ctx, e)
	return e, nil
}

func (s *EntryService) List(ctx context.Context, userID, topicID string) ([]entity.ResearchEntry, error) {
	if !validID(topicID) {
		return nil, domain.ErrTopicAccess
	}
	return s.Entries.ListByTopic(ctx, topicID, userID)
}

func (s *EntryService) Get(ctx context.Context, userID, id string) (*entity.ResearchEntry, error) {
	if !validID(id) {
		return nil, domain.ErrEntryNotFound
	}
	return s.Entries.GetByID(ctx, id, userID)
}

func (s *EntryService) Update(ctx context.Context, userID, id string, patch entity.EntryPatch) (*entity.ResearchEntry, error) {
	if patch.OriginalText != nil && strings.TrimSpace(*patch.OriginalText) == "" {
		return nil, domain.NewValidationError("originalText", msgResearchTextRequired)
	}
	if !validID(id) {
		return nil, domain.ErrEntryNotFound
	}
	e, err := s.Entries.Update(ctx, id, userID, patch)
	if err != nil {
		return nil, err
	}
	s.index(ctx, e)
	return e, nil
}

func (s *EntryService) Delete(ctx context.Context, userID, id string) error {
	if !validID(id) {
		return domain.ErrEntryNotFound
	}
	if _, err := s.Entries.Delete(ctx, id, userID); err != nil {
		return err
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, DocumentEntry, id); err != nil {
			s.Logger.WithError(err).WithField("entry_id", id).Warn("search remove failed")
		}
	}
	return nil
}

func (s *EntryService) index(ctx context.Context, e *entity.ResearchEntry) {
	if s.Index == nil {
		return
	}
	content := e.OriginalText
	if e.RewrittenText != nil && *e.RewrittenText != "" {
		content += "\n\n" + *e.RewrittenText
	}
	doc := SearchDocument{
		ID:        e.ID,
		Kind:      DocumentEntry,
		UserID:    e.UserID,
		TopicID:   e.TopicID,
		Content:   content,
		UpdatedAt: e.UpdatedAt,
	}
	if e.Source != nil {
		doc.Title = *e.Source
	}
	if err := s.Index.Index(ctx, doc); err != nil {
		s.Logger.WithError(err).WithField("entry_id", e.ID).Warn("search index failed")
	}
}
