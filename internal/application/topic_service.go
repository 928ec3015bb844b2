package application

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/heart-api/internal/domain"
	"github.com/oksasatya/heart-api/internal/domain/entity"
	repo "github.com/oksasatya/heart-api/internal/domain/repository"
	"github.com/oksasatya/heart-api/pkg/helpers"
)

const maxTopicName = 255

type TopicService struct {
	Topics repo.TopicRepository
	Logger *logrus.Logger
}

func NewTopicService(topics repo.TopicRepository, logger *logrus.Logger) *TopicService {
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return &TopicService{Topics: topics, Logger: logger}
}

type CreateTopicInput struct {
	Name        string
	Description *string
}

// checkTopicName trims name and enforces 1..255 characters.
func checkTopicName(name string, ve *domain.ValidationError) string {
	name = strings.TrimSpace(name)
	switch n := utf8.RuneCountInString(name); {
	case n == 0:
		ve.Add("name", "Topic name is required")
	case n > maxTopicName:
		ve.Add("name", "Topic name must be between 1 and 255 characters")
	}
	return name
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func (s *TopicService) Create(ctx context.Context, userID string, in CreateTopicInput) (*entity.Topic, error) {
	ve := &domain.ValidationError{}
	name := checkTopicName(in.Name, ve)
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	t := &entity.Topic{
		UserID:      userID,
		Name:        name,
		Description: trimPtr(in.Description),
		Status:      entity.TopicStatusActive,
	}
	if err := s.Topics.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// List returns the user's topics, most recently touched first.
func (s *TopicService) List(ctx context.Context, userID string) ([]entity.Topic, error) {
	return s.Topics.ListByUser(ctx, userID)
}

func (s *TopicService) Get(ctx context.Context, userID, id string) (*entity.Topic, error) {
	if !validID(id) {
		return nil, domain.ErrTopicNotFound
	}
	return s.Topics.GetByID(ctx, id, userID)
}

func (s *TopicService) Update(ctx context.Context, userID, id string, patch entity.TopicPatch) (*entity.Topic, error) {
	if patch.Name != nil {
		ve := &domain.ValidationError{}
		name := checkTopicName(*patch.Name, ve)
		if err := ve.OrNil(); err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	patch.Description = trimPtr(patch.Description)
	if patch.Status != nil {
		st := strings.TrimSpace(*patch.Status)
		if st == "" {
			return nil, domain.NewValidationError("status", "Status must not be empty")
		}
		patch.Status = &st
	}
	if !validID(id) {
		return nil, domain.ErrTopicNotFound
	}
	return s.Topics.Update(ctx, id, userID, patch)
}

func (s *TopicService) Delete(ctx context.Context, userID, id string) error {
	if !validID(id) {
		return domain.ErrTopicNotFound
	}
	return s.Topics.Delete(ctx, id, userID)
}
