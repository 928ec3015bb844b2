package external

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oksasatya/heart-api/internal/application"
)

const DefaultLanguageToolURL = "https://api.languagetool.org/v2"

// LanguageTool checks grammar with the public or a self-hosted
// LanguageTool server. APIKey is optional and only sent when set.
type LanguageTool struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewLanguageTool(baseURL, apiKey string, timeout time.Duration) *LanguageTool {
	if baseURL == "" {
		baseURL = DefaultLanguageToolURL
	}
	return &LanguageTool{BaseURL: strings.TrimRight(baseURL, "/"), APIKey: apiKey, HTTP: newHTTPClient(timeout)}
}

type ltResponse struct {
	Matches []struct {
		Message      string `json:"message"`
		ShortMessage string `json:"shortMessage"`
		Offset       int    `json:"offset"`
		Length       int    `json:"length"`
		Replacements []struct {
			Value string `json:"value"`
		} `json:"replacements"`
		Sentence string `json:"sentence"`
		Rule     struct {
			ID          string `json:"id"`
			Description string `json:"description"`
			IssueType   string `json:"issueType"`
		} `json:"rule"`
	} `json:"matches"`
	Language struct {
		Name string `json:"name"`
		Code string `json:"code"`
	} `json:"language"`
}

func (l *LanguageTool) Check(ctx context.Context, text, language string) (*application.GrammarResult, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("language", language)
	if l.APIKey != "" {
		form.Set("apiKey", l.APIKey)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.BaseURL+"/check", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("languagetool: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	var out ltResponse
	if err := do(l.HTTP, req, "languagetool", "Error checking grammar", &out); err != nil {
		return nil, err
	}

	res := &application.GrammarResult{
		Matches:  make([]application.GrammarMatch, 0, len(out.Matches)),
		Language: application.GrammarLanguage{Name: out.Language.Name, Code: out.Language.Code},
	}
	for _, m := range out.Matches {
		gm := application.GrammarMatch{
			Message:      m.Message,
			ShortMessage: m.ShortMessage,
			Offset:       m.Offset,
			Length:       m.Length,
			Replacements: make([]application.GrammarReplacement, 0, len(m.Replacements)),
			Sentence:     m.Sentence,
			Rule:         application.GrammarRule{ID: m.Rule.ID, Description: m.Rule.Description, IssueType: m.Rule.IssueType},
		}
		for _, r := range m.Replacements {
			gm.Replacements = append(gm.Replacements, application.GrammarReplacement{Value: r.Value})
		}
		res.Matches = append(res.Matches, gm)
	}
	res.TotalErrors = len(res.Matches)
	return res, nil
}
