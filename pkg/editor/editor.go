// Package editor drives the two-pane writing flow: source text on the left,
// tool output on the right, with the result saved as a draft.
package editor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oksasatya/heart-api/internal/application"
	"github.com/oksasatya/heart-api/internal/domain/entity"
	"github.com/oksasatya/heart-api/pkg/citation"
	"github.com/oksasatya/heart-api/pkg/client"
	"github.com/oksasatya/heart-api/pkg/client/store"
)

type Action string

const (
	ActionRewrite   Action = "rewrite"
	ActionGrammar   Action = "grammar"
	ActionAIDetect  Action = "aidetect"
	ActionCitations Action = "citations"
)

const (
	DefaultCooldown = 2 * time.Second
	DefaultTitle    = "Untitled Draft"
)

var (
	ErrCooldown   = errors.New("Please wait a moment before trying again")
	ErrBusy       = errors.New("Already processing a request. Please wait.")
	ErrEmptyInput = errors.New("no text to process")
	// ErrSaveDraft wraps auto-save failures after a successful rewrite.
	ErrSaveDraft = errors.New("Failed to save draft")
)

type inputError string

func (e inputError) Error() string        { return string(e) }
func (e inputError) Is(target error) bool { return target == ErrEmptyInput }

const (
	errNothingToRewrite = inputError("Please enter some text to rewrite")
	errNothingToCheck   = inputError("No content to check")
	errNothingToAnalyze = inputError("No content to analyze")
)

// API is the part of the client the editor calls.
type API interface {
	Rewrite(ctx context.Context, text, style string) (*application.RewriteResult, error)
	CheckGrammar(ctx context.Context, text, language string) (*application.GrammarResult, error)
	DetectAI(ctx context.Context, text string) (*application.DetectionResult, error)
	FormatCitations(ctx context.Context, refs []citation.Reference) ([]citation.Citation, error)
	CreateDraft(ctx context.Context, in client.DraftInput) (*entity.ArticleDraft, error)
	UpdateDraft(ctx context.Context, id string, in client.DraftInput) (*entity.ArticleDraft, error)
}

var _ API = (*client.Client)(nil)

// State is a snapshot of the editor panes and tool results.
type State struct {
	Title     string
	Left      string
	Right     string
	Citations []citation.Citation
	Grammar   []application.GrammarMatch
	Detection *application.DetectionResult
}

// Editor guards tool calls with a per-action cooldown and a single
// in-flight slot. The guard is advisory and local to one process.
type Editor struct {
	API      API
	Drafts   *store.Drafts
	Cooldown time.Duration
	Now      func() time.Time

	mu    sync.Mutex
	state State
	busy  bool
	last  map[Action]time.Time
}

func New(api API, drafts *store.Drafts) *Editor {
	if drafts == nil {
		drafts = store.NewDrafts()
	}
	return &Editor{API: api, Drafts: drafts, Cooldown: DefaultCooldown, Now: time.Now, last: map[Action]time.Time{}}
}

func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.state
	s.Citations = append([]citation.Citation(nil), s.Citations...)
	s.Grammar = append([]application.GrammarMatch(nil), s.Grammar...)
	return s
}

func (e *Editor) SetTitle(title string) { e.update(func(s *State) { s.Title = title }) }
func (e *Editor) SetLeft(text string)   { e.update(func(s *State) { s.Left = text }) }
func (e *Editor) SetRight(text string)  { e.update(func(s *State) { s.Right = text }) }

func (e *Editor) update(fn func(*State)) {
	e.mu.Lock()
	fn(&e.state)
	e.mu.Unlock()
}

// Open loads draft into the panes and makes it current.
func (e *Editor) Open(d *entity.ArticleDraft) {
	e.Drafts.SetCurrent(d)
	if d == nil {
		return
	}
	e.update(func(s *State) {
		s.Title = deref(d.Title)
		s.Left = d.OriginalContent
		s.Right = deref(d.RewrittenContent)
		s.Citations = append([]citation.Citation(nil), d.Citations...)
	})
}

// NewDraft clears the panes and closes the current draft.
func (e *Editor) NewDraft() {
	e.Drafts.SetCurrent(nil)
	e.update(func(s *State) { *s = State{} })
}

// begin claims the in-flight slot for a. Checks run in order: cooldown,
// input, busy. The cooldown clock only starts once the call is admitted.
func (e *Editor) begin(a Action, input string, empty error) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	if t, ok := e.last[a]; ok && now.Sub(t) < e.Cooldown {
		return "", ErrCooldown
	}
	var text string
	switch input {
	case "left":
		text = e.state.Left
	case "right":
		text = e.state.Right
	}
	if empty != nil && strings.TrimSpace(text) == "" {
		return "", empty
	}
	if e.busy {
		return "", ErrBusy
	}
	e.last[a] = now
	e.busy = true
	return text, nil
}

func (e *Editor) end() {
	e.mu.Lock()
	e.busy = false
	e.mu.Unlock()
}

func (e *Editor) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// Rewrite rewrites the left pane into the right one and auto-saves the
// draft. A save failure is reported as ErrSaveDraft alongside the result.
func (e *Editor) Rewrite(ctx context.Context) (*application.RewriteResult, error) {
	text, err := e.begin(ActionRewrite, "left", errNothingToRewrite)
	if err != nil {
		return nil, err
	}
	defer e.end()

	res, err := e.API.Rewrite(ctx, text, application.DefaultRewriteStyle)
	if err != nil {
		return nil, err
	}
	e.SetRight(res.RewrittenText)
	if _, err := e.save(ctx); err != nil {
		return res, errors.Join(ErrSaveDraft, err)
	}
	return res, nil
}

func (e *Editor) CheckGrammar(ctx context.Context) (*application.GrammarResult, error) {
	text, err := e.begin(ActionGrammar, "right", errNothingToCheck)
	if err != nil {
		return nil, err
	}
	defer e.end()

	res, err := e.API.CheckGrammar(ctx, text, application.DefaultGrammarLanguage)
	if err != nil {
		return nil, err
	}
	e.update(func(s *State) { s.Grammar = res.Matches })
	return res, nil
}

func (e *Editor) DetectAI(ctx context.Context) (*application.DetectionResult, error) {
	text, err := e.begin(ActionAIDetect, "right", errNothingToAnalyze)
	if err != nil {
		return nil, err
	}
	defer e.end()

	res, err := e.API.DetectAI(ctx, text)
	if err != nil {
		return nil, err
	}
	e.update(func(s *State) { s.Detection = res })
	return res, nil
}

func (e *Editor) GenerateCitations(ctx context.Context, refs []citation.Reference) ([]citation.Citation, error) {
	if _, err := e.begin(ActionCitations, "", nil); err != nil {
		return nil, err
	}
	defer e.end()

	cites, err := e.API.FormatCitations(ctx, refs)
	if err != nil {
		return nil, err
	}
	e.update(func(s *State) { s.Citations = cites })
	return cites, nil
}

// Save writes the panes to the current draft, creating one when none is
// open.
func (e *Editor) Save(ctx context.Context) (*entity.ArticleDraft, error) {
	return e.save(ctx)
}

func (e *Editor) save(ctx context.Context) (*entity.ArticleDraft, error) {
	in := e.draftInput()
	if cur := e.Drafts.Current(); cur != nil && cur.ID != "" {
		d, err := e.API.UpdateDraft(ctx, cur.ID, in)
		if err != nil {
			return nil, err
		}
		e.Drafts.Update(cur.ID, *d)
		return d, nil
	}
	d, err := e.API.CreateDraft(ctx, in)
	if err != nil {
		return nil, err
	}
	e.Drafts.Add(*d)
	e.Drafts.SetCurrent(d)
	return d, nil
}

func (e *Editor) draftInput() client.DraftInput {
	s := e.State()
	title := s.Title
	if title == "" {
		title = DefaultTitle
	}
	status := entity.DraftStatusDraft
	in := client.DraftInput{
		Title:           &title,
		OriginalContent: &s.Left,
		Status:          &status,
		Metadata: map[string]any{
			"grammarErrors":    len(s.Grammar),
			"aiDetectionScore": s.Detection,
		},
	}
	if s.Right != "" {
		in.RewrittenContent = &s.Right
	}
	if len(s.Citations) > 0 {
		in.Citations = s.Citations
	}
	return in
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
