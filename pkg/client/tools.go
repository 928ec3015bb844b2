package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/oksasatya/heart-api/internal/application"
	"github.com/oksasatya/heart-api/pkg/citation"
)

func (c *Client) Rewrite(ctx context.Context, text, style string) (*application.RewriteResult, error) {
	var out application.RewriteResult
	if _, err := c.do(ctx, http.MethodPost, "/api/tools/rewrite", map[string]string{"text": text, "style": style}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CheckGrammar(ctx context.Context, text, language string) (*application.GrammarResult, error) {
	var out application.GrammarResult
	if _, err := c.do(ctx, http.MethodPost, "/api/tools/grammar", map[string]string{"text": text, "language": language}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DetectAI(ctx context.Context, text string) (*application.DetectionResult, error) {
	var out application.DetectionResult
	if _, err := c.do(ctx, http.MethodPost, "/api/tools/ai-detect", map[string]string{"text": text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FormatCitations(ctx context.Context, refs []citation.Reference) ([]citation.Citation, error) {
	var data struct {
		Citations []citation.Citation `json:"citations"`
	}
	body := map[string]any{"references": refs}
	if _, err := c.do(ctx, http.MethodPost, "/api/tools/citations", body, &data); err != nil {
		return nil, err
	}
	return data.Citations, nil
}

func (c *Client) Research(ctx context.Context, query string) (*application.ResearchResult, error) {
	var out application.ResearchResult
	if _, err := c.do(ctx, http.MethodPost, "/api/tools/research", map[string]string{"query": query}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search queries the caller's drafts and entries. size <= 0 uses the
// server default.
func (c *Client) Search(ctx context.Context, query string, size int) ([]application.SearchDocument, error) {
	q := url.Values{"q": {query}}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	var data struct {
		Results []application.SearchDocument `json:"results"`
	}
	_, err := c.do(ctx, http.MethodGet, "/api/search?"+q.Encode(), nil, &data)
	return data.Results, err
}
