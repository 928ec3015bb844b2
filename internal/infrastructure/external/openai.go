package external

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/oksasatya/heart-api/internal/application"
	"github.com/oksasatya/heart-api/internal/domain"
)

const (
	DefaultOpenAIURL   = "https://api.openai.com/v1"
	DefaultOpenAIModel = "gpt-4-turbo-preview"

	rewriteTemperature = 0.7
	rewriteMaxTokens   = 2000
)

const rewritePrompt = "You are an expert academic writer. Rewrite the following research content in a natural, human-like %s style. " +
	"Maintain scientific accuracy while making it flow naturally. Do not use robotic or AI-sounding language."

// OpenAI rewrites text through the chat completions API.
type OpenAI struct {
	BaseURL string
	APIKey  string
	Model   string
	HTTP    *http.Client
}

// NewRewriter returns an OpenAI rewriter, or UnconfiguredRewriter when
// apiKey is empty.
func NewRewriter(baseURL, apiKey, model string, timeout time.Duration) application.Rewriter {
	if strings.TrimSpace(apiKey) == "" {
		return UnconfiguredRewriter{}
	}
	if baseURL == "" {
		baseURL = DefaultOpenAIURL
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAI{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Model:   model,
		HTTP:    newHTTPClient(timeout),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (o *OpenAI) Rewrite(ctx context.Context, text, style string) (*application.RewriteResult, error) {
	payload := chatRequest{
		Model: o.Model,
		Messages: []chatMessage{
			{Role: "system", Content: fmt.Sprintf(rewritePrompt, style)},
			{Role: "user", Content: text},
		},
		Temperature: rewriteTemperature,
		MaxTokens:   rewriteMaxTokens,
	}
	req, err := postJSON(ctx, o.BaseURL+"/chat/completions", payload)
	if err != nil {
		return nil, fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+o.APIKey)

	var out chatResponse
	if err := do(o.HTTP, req, "openai", "Error rewriting text", &out); err != nil {
		return nil, err
	}
	rewritten := ""
	if len(out.Choices) > 0 {
		rewritten = out.Choices[0].Message.Content
	}
	return &application.RewriteResult{OriginalText: text, RewrittenText: rewritten, Model: o.Model}, nil
}

// UnconfiguredRewriter is used when no OpenAI key is set.
type UnconfiguredRewriter struct{}

func (UnconfiguredRewriter) Rewrite(context.Context, string, string) (*application.RewriteResult, error) {
	return nil, domain.ErrRewriteUnavailable
}
