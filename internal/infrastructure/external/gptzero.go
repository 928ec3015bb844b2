package external

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/oksasatya/heart-api/internal/application"
)

const DefaultGPTZeroURL = "https://api.gptzero.me/v2"

const unconfiguredDetectorMessage = "GPTZero API not configured - showing mock data"

// GPTZero classifies text through the GPTZero prediction API.
type GPTZero struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

// NewDetector returns a GPTZero detector, or UnconfiguredDetector when
// apiKey is empty.
func NewDetector(baseURL, apiKey string, timeout time.Duration) application.AIDetector {
	if strings.TrimSpace(apiKey) == "" {
		return UnconfiguredDetector{}
	}
	if baseURL == "" {
		baseURL = DefaultGPTZeroURL
	}
	return &GPTZero{BaseURL: strings.TrimRight(baseURL, "/"), APIKey: apiKey, HTTP: newHTTPClient(timeout)}
}

type gptzeroResponse struct {
	Documents []struct {
		CompletelyGeneratedProb float64 `json:"completely_generated_prob"`
		AverageGeneratedProb    float64 `json:"average_generated_prob"`
		Class                   string  `json:"class"`
	} `json:"documents"`
}

// Detect maps the first document's completely_generated_prob to AIScore
// and reports HumanScore as its complement.
// This departs from reading humanScore from completely_generated_prob and
// aiScore from average_generated_prob, which would invert the scores.
func (g *GPTZero) Detect(ctx context.Context, text string) (*application.DetectionResult, error) {
	req, err := postJSON(ctx, g.BaseURL+"/predict/text", map[string]string{"document": text})
	if err != nil {
		return nil, fmt.Errorf("gptzero: build request: %w", err)
	}
	req.Header.Set("X-API-KEY", g.APIKey)

	var out gptzeroResponse
	if err := do(g.HTTP, req, "gptzero", "Error detecting AI content", &out); err != nil {
		return nil, err
	}
	res := &application.DetectionResult{Classification: "unknown", Provider: "gptzero"}
	if len(out.Documents) > 0 {
		doc := out.Documents[0]
		res.AIScore = doc.CompletelyGeneratedProb
		res.HumanScore = 1 - doc.CompletelyGeneratedProb
		if doc.Class != "" {
			res.Classification = doc.Class
		}
	}
	return res, nil
}

// UnconfiguredDetector answers with a fixed sample verdict, tagged so
// callers can tell it from a real one.
type UnconfiguredDetector struct{}

func (UnconfiguredDetector) Detect(context.Context, string) (*application.DetectionResult, error) {
	return &application.DetectionResult{
		HumanScore:     0.85,
		AIScore:        0.15,
		Classification: "human",
		Confidence:     "high",
		Provider:       "unconfigured",
		Mock:           true,
		Message:        unconfiguredDetectorMessage,
	}, nil
}
