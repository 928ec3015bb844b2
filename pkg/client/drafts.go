package client

import (
	"context"
	"net/http"

	"github.com/oksasatya/heart-api/internal/application"
	"github.com/oksasatya/heart-api/internal/domain/entity"
	"github.com/oksasatya/heart-api/pkg/citation"
)

// DraftInput is the body of draft create and update calls.
type DraftInput struct {
	Title            *string             `json:"title,omitempty"`
	OriginalContent  *string             `json:"originalContent,omitempty"`
	RewrittenContent *string             `json:"rewrittenContent,omitempty"`
	Citations        []citation.Citation `json:"citations,omitempty"`
	Metadata         map[string]any      `json:"metadata,omitempty"`
	Status           *string             `json:"status,omitempty"`
}

func (c *Client) ListDrafts(ctx context.Context) ([]entity.ArticleDraft, error) {
	var data struct {
		Drafts []entity.ArticleDraft `json:"drafts"`
	}
	_, err := c.do(ctx, http.MethodGet, "/api/drafts", nil, &data)
	return data.Drafts, err
}

func (c *Client) GetDraft(ctx context.Context, id string) (*entity.ArticleDraft, error) {
	return c.draft(ctx, http.MethodGet, "/api/drafts/"+escape(id), nil)
}

func (c *Client) CreateDraft(ctx context.Context, in DraftInput) (*entity.ArticleDraft, error) {
	return c.draft(ctx, http.MethodPost, "/api/drafts", in)
}

func (c *Client) UpdateDraft(ctx context.Context, id string, in DraftInput) (*entity.ArticleDraft, error) {
	return c.draft(ctx, http.MethodPut, "/api/drafts/"+escape(id), in)
}

func (c *Client) DeleteDraft(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/drafts/"+escape(id), nil, nil)
	return err
}

// ExportDraft renders the draft as "txt" or "md".
func (c *Client) ExportDraft(ctx context.Context, id, format string) (*application.ExportResult, error) {
	var data struct {
		Export application.ExportResult `json:"export"`
	}
	body := map[string]string{"format": format}
	if _, err := c.do(ctx, http.MethodPost, "/api/drafts/"+escape(id)+"/export", body, &data); err != nil {
		return nil, err
	}
	return &data.Export, nil
}

func (c *Client) draft(ctx context.Context, method, path string, body any) (*entity.ArticleDraft, error) {
	var data struct {
		Draft entity.ArticleDraft `json:"draft"`
	}
	if _, err := c.do(ctx, method, path, body, &data); err != nil {
		return nil, err
	}
	return &data.Draft, nil
}
