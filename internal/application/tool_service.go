package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/heart-api/internal/domain"
	"github.com/oksasatya/heart-api/pkg/citation"
	"github.com/oksasatya/heart-api/pkg/helpers"
)

const (
	DefaultRewriteStyle    = "academic"
	DefaultGrammarLanguage = "en-US"
)

// Tool names used for metrics and logs.
const (
	ToolRewrite   = "rewrite"
	ToolGrammar   = "grammar"
	ToolAIDetect  = "ai_detect"
	ToolCitations = "citations"
	ToolResearch  = "research"
)

// Result types. Field names follow the public JSON contract.

type RewriteResult struct {
	OriginalText  string `json:"originalText"`
	RewrittenText string `json:"rewrittenText"`
	Model         string `json:"model"`
}

type GrammarReplacement struct {
	Value string `json:"value"`
}

type GrammarRule struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	IssueType   string `json:"issueType,omitempty"`
}

type GrammarMatch struct {
	Message      string               `json:"message"`
	ShortMessage string               `json:"shortMessage,omitempty"`
	Offset       int                  `json:"offset"`
	Length       int                  `json:"length"`
	Replacements []GrammarReplacement `json:"replacements"`
	Sentence     string               `json:"sentence,omitempty"`
	Rule         GrammarRule          `json:"rule"`
}

type GrammarLanguage struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type GrammarResult struct {
	Matches     []GrammarMatch  `json:"matches"`
	TotalErrors int             `json:"totalErrors"`
	Language    GrammarLanguage `json:"language"`
}

// DetectionResult is an AI-detection verdict. Mock is set, and Provider
// reads "unconfigured", when no detector credential exists.
type DetectionResult struct {
	HumanScore     float64 `json:"humanScore"`
	AIScore        float64 `json:"aiScore"`
	Classification string  `json:"classification"`
	Confidence     string  `json:"confidence,omitempty"`
	Provider       string  `json:"provider"`
	Mock           bool    `json:"mock"`
	Message        string  `json:"message,omitempty"`
}

type Suggestion struct {
	Title    string `json:"title"`
	Authors  string `json:"authors"`
	Year     int    `json:"year"`
	Source   string `json:"source"`
	Abstract string `json:"abstract"`
}

type ResearchResult struct {
	Query       string       `json:"query"`
	Suggestions []Suggestion `json:"suggestions"`
	Provider    string       `json:"provider"`
	Mock        bool         `json:"mock"`
}

// ToolService fronts the external text tools. Calls are not retried.
type ToolService struct {
	Rewriter Rewriter
	Grammar  GrammarChecker
	Detector AIDetector
	Research ResearchProvider
	Cache    ResultCache
	Recorder ToolRecorder
	Logger   *logrus.Logger
}

func NewToolService(rw Rewriter, gc GrammarChecker, det AIDetector, rp ResearchProvider, logger *logrus.Logger) *ToolService {
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return &ToolService{Rewriter: rw, Grammar: gc, Detector: det, Research: rp, Logger: logger}
}

func (s *ToolService) Rewrite(ctx context.Context, text, style string) (*RewriteResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrTextRequired
	}
	if strings.TrimSpace(style) == "" {
		style = DefaultRewriteStyle
	}
	res, err := s.Rewriter.Rewrite(ctx, text, style)
	s.observe(ToolRewrite, err, false)
	return res, err
}

// CheckGrammar checks text, serving repeated requests from the cache when one
// is configured. Cache failures never fail the check.
func (s *ToolService) CheckGrammar(ctx context.Context, text, language string) (*GrammarResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrTextRequired
	}
	if strings.TrimSpace(language) == "" {
		language = DefaultGrammarLanguage
	}

	key := grammarCacheKey(text, language)
	if s.Cache != nil {
		var cached GrammarResult
		found, err := s.Cache.Get(ctx, key, &cached)
		if err != nil {
			s.Logger.WithError(err).Warn("grammar cache read failed")
		} else if found {
			s.observeOutcome(ToolGrammar, "cached")
			return &cached, nil
		}
	}

	res, err := s.Grammar.Check(ctx, text, language)
	s.observe(ToolGrammar, err, false)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, res); err != nil {
			s.Logger.WithError(err).Warn("grammar cache write failed")
		}
	}
	return res, nil
}

func (s *ToolService) DetectAI(ctx context.Context, text string) (*DetectionResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrTextRequired
	}
	res, err := s.Detector.Detect(ctx, text)
	s.observe(ToolAIDetect, err, res != nil && res.Mock)
	return res, err
}

// FormatCitations is local and pure. A nil slice means the references
// field was absent.
func (s *ToolService) FormatCitations(refs []citation.Reference) ([]citation.Citation, error) {
	if refs == nil {
		return nil, domain.ErrReferencesRequired
	}
	out := citation.FormatVancouver(refs)
	s.observeOutcome(ToolCitations, "ok")
	return out, nil
}

func (s *ToolService) Suggest(ctx context.Context, query string) (*ResearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrQueryRequired
	}
	res, err := s.Research.Suggest(ctx, query)
	s.observe(ToolResearch, err, res != nil && res.Mock)
	return res, err
}

func (s *ToolService) observe(tool string, err error, mock bool) {
	switch {
	case err == nil && mock:
		s.observeOutcome(tool, "mock")
	case err == nil:
		s.observeOutcome(tool, "ok")
	case errors.Is(err, domain.ErrUnavailable):
		s.observeOutcome(tool, "unavailable")
	default:
		s.Logger.WithError(err).WithField("tool", tool).Warn("tool call failed")
		s.observeOutcome(tool, "error")
	}
}

func (s *ToolService) observeOutcome(tool, outcome string) {
	if s.Recorder != nil {
		s.Recorder.ObserveTool(tool, outcome)
	}
}

func grammarCacheKey(text, language string) string {
	sum := sha256.Sum256([]byte(language + "\x00" + text))
	return hex.EncodeToString(sum[:])
}
