package client

import (
	"context"
	"net/http"

	"github.com/oksasatya/heart-api/internal/domain/entity"
)

// TopicInput carries topic fields; nil fields are left unchanged on update.
type TopicInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

type EntryInput struct {
	OriginalText  *string `json:"originalText,omitempty"`
	RewrittenText *string `json:"rewrittenText,omitempty"`
	Source        *string `json:"source,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	IsProcessed   *bool   `json:"isProcessed,omitempty"`
}

func (c *Client) ListTopics(ctx context.Context) ([]entity.Topic, error) {
	var data struct {
		Topics []entity.Topic `json:"topics"`
	}
	_, err := c.do(ctx, http.MethodGet, "/api/topics", nil, &data)
	return data.Topics, err
}

func (c *Client) GetTopic(ctx context.Context, id string) (*entity.Topic, error) {
	return c.topic(ctx, http.MethodGet, "/api/topics/"+escape(id), nil)
}

func (c *Client) CreateTopic(ctx context.Context, in TopicInput) (*entity.Topic, error) {
	return c.topic(ctx, http.MethodPost, "/api/topics", in)
}

func (c *Client) UpdateTopic(ctx context.Context, id string, in TopicInput) (*entity.Topic, error) {
	return c.topic(ctx, http.MethodPut, "/api/topics/"+escape(id), in)
}

func (c *Client) DeleteTopic(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/topics/"+escape(id), nil, nil)
	return err
}

func (c *Client) topic(ctx context.Context, method, path string, body any) (*entity.Topic, error) {
	var data struct {
		Topic entity.Topic `json:"topic"`
	}
	if _, err := c.do(ctx, method, path, body, &data); err != nil {
		return nil, err
	}
	return &data.Topic, nil
}

func (c *Client) ListEntries(ctx context.Context, topicID string) ([]entity.ResearchEntry, error) {
	var data struct {
		Entries []entity.ResearchEntry `json:"entries"`
	}
	_, err := c.do(ctx, http.MethodGet, "/api/topics/"+escape(topicID)+"/entries", nil, &data)
	return data.Entries, err
}

func (c *Client) GetEntry(ctx context.Context, id string) (*entity.ResearchEntry, error) {
	return c.entry(ctx, http.MethodGet, "/api/topics/entries/"+escape(id), nil)
}

func (c *Client) AddEntry(ctx context.Context, topicID string, in EntryInput) (*entity.ResearchEntry, error) {
	return c.entry(ctx, http.MethodPost, "/api/topics/"+escape(topicID)+"/entries", in)
}

func (c *Client) UpdateEntry(ctx context.Context, id string, in EntryInput) (*entity.ResearchEntry, error) {
	return c.entry(ctx, http.MethodPut, "/api/topics/entries/"+escape(id), in)
}

func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/topics/entries/"+escape(id), nil, nil)
	return err
}

func (c *Client) entry(ctx context.Context, method, path string, body any) (*entity.ResearchEntry, error) {
	var data struct {
		Entry entity.ResearchEntry `json:"entry"`
	}
	if _, err := c.do(ctx, method, path, body, &data); err != nil {
		return nil, err
	}
	return &data.Entry, nil
}
