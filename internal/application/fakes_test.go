package application

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/heart-api/internal/domain"
	"github.com/oksasatya/heart-api/internal/domain/entity"
)

type memUsers struct {
	mu    sync.Mutex
	byID  map[string]*entity.User
	fail  error
	calls int
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]*entity.User{}} }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.byID {
		if x.Email == u.Email {
			return domain.ErrUserExists
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.fail != nil {
		return nil, m.fail
	}
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type memTopics struct {
	mu   sync.Mutex
	rows map[string]*entity.Topic
}

func newMemTopics() *memTopics { return &memTopics{rows: map[string]*entity.Topic{}} }

func (m *memTopics) Create(_ context.Context, t *entity.Topic) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	m.rows[t.ID] = &cp
	return nil
}

func (m *memTopics) ListByUser(_ context.Context, userID string) ([]entity.Topic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.Topic{}
	for _, t := range m.rows {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *memTopics) GetByID(_ context.Context, id, userID string) (*entity.Topic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.rows[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrTopicNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTopics) Update(ctx context.Context, id, userID string, p entity.TopicPatch) (*entity.Topic, error) {
	m.mu.Lock()
	t, ok := m.rows[id]
	if !ok || t.UserID != userID {
		m.mu.Unlock()
		return nil, domain.ErrTopicNotFound
	}
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	t.UpdatedAt = time.Now()
	m.mu.Unlock()
	return m.GetByID(ctx, id, userID)
}

func (m *memTopics) Delete(_ context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.rows[id]
	if !ok || t.UserID != userID {
		return domain.ErrTopicNotFound
	}
	delete(m.rows, id)
	return nil
}

type memEntries struct {
	topics *memTopics
	mu     sync.Mutex
	rows   map[string]*entity.ResearchEntry
}

func newMemEntries(topics *memTopics) *memEntries {
	return &memEntries{topics: topics, rows: map[string]*entity.ResearchEntry{}}
}

func (m *memEntries) Create(ctx context.Context, e *entity.ResearchEntry) error {
	if _, err := m.topics.GetByID(ctx, e.TopicID, e.UserID); err != nil {
		return domain.ErrTopicAccess
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	cp := *e
	m.rows[e.ID] = &cp
	return nil
}

func (m *memEntries) ListByTopic(ctx context.Context, topicID, userID string) ([]entity.ResearchEntry, error) {
	if _, err := m.topics.GetByID(ctx, topicID, userID); err != nil {
		return nil, domain.ErrTopicAccess
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.ResearchEntry{}
	for _, e := range m.rows {
		if e.TopicID == topicID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *memEntries) GetByID(_ context.Context, id, userID string) (*entity.ResearchEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rows[id]
	if !ok || e.UserID != userID {
		return nil, domain.ErrEntryNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *memEntries) Update(ctx context.Context, id, userID string, p entity.EntryPatch) (*entity.ResearchEntry, error) {
	m.mu.Lock()
	e, ok := m.rows[id]
	if !ok || e.UserID != userID {
		m.mu.Unlock()
		return nil, domain.ErrEntryNotFound
	}
	if p.OriginalText != nil {
		e.OriginalText = *p.OriginalText
	}
	if p.RewrittenText != nil {
		e.RewrittenText = p.RewrittenText
	}
	if p.IsProcessed != nil {
		e.IsProcessed = *p.IsProcessed
	}
	m.mu.Unlock()
	return m.GetByID(ctx, id, userID)
}

func (m *memEntries) Delete(_ context.Context, id, userID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rows[id]
	if !ok || e.UserID != userID {
		return "", domain.ErrEntryNotFound
	}
	delete(m.rows, id)
	return e.TopicID, nil
}

type memDrafts struct {
	mu   sync.Mutex
	rows map[string]*entity.ArticleDraft
}

func newMemDrafts() *memDrafts { return &memDrafts{rows: map[string]*entity.ArticleDraft{}} }

func (m *memDrafts) Create(_ context.Context, d *entity.ArticleDraft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = uuid.NewString()
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	cp := *d
	m.rows[d.ID] = &cp
	return nil
}

func (m *memDrafts) ListByUser(_ context.Context, userID string) ([]entity.ArticleDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.ArticleDraft{}
	for _, d := range m.rows {
		if d.UserID == userID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *memDrafts) GetByID(_ context.Context, id, userID string) (*entity.ArticleDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[id]
	if !ok || d.UserID != userID {
		return nil, domain.ErrDraftNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *memDrafts) Update(ctx context.Context, id, userID string, p entity.DraftPatch) (*entity.ArticleDraft, error) {
	m.mu.Lock()
	d, ok := m.rows[id]
	if !ok || d.UserID != userID {
		m.mu.Unlock()
		return nil, domain.ErrDraftNotFound
	}
	if p.Title != nil {
		d.Title = p.Title
	}
	if p.OriginalContent != nil {
		d.OriginalContent = *p.OriginalContent
	}
	if p.RewrittenContent != nil {
		d.RewrittenContent = p.RewrittenContent
	}
	if p.Citations != nil {
		d.Citations = p.Citations
	}
	if p.Metadata != nil {
		d.Metadata = p.Metadata
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	d.UpdatedAt = time.Now()
	m.mu.Unlock()
	return m.GetByID(ctx, id, userID)
}

func (m *memDrafts) Delete(_ context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[id]
	if !ok || d.UserID != userID {
		return domain.ErrDraftNotFound
	}
	delete(m.rows, id)
	return nil
}

type stubTokens struct{ err error }

func (s stubTokens) Generate(userID, email string) (string, time.Time, error) {
	if s.err != nil {
		return "", time.Time{}, s.err
	}
	return "tok-" + userID, time.Now().Add(time.Hour), nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	emails []string
	err    error
}

func (r *recordingNotifier) Welcome(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emails = append(r.emails, email)
	return r.err
}

type memIndex struct {
	mu      sync.Mutex
	docs    map[string]SearchDocument
	removed []string
	err     error
	lastReq struct {
		userID, query string
		size          int
	}
}

func newMemIndex() *memIndex { return &memIndex{docs: map[string]SearchDocument{}} }

func (m *memIndex) Index(_ context.Context, doc SearchDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.docs[doc.Kind+":"+doc.ID] = doc
	return nil
}

func (m *memIndex) Remove(_ context.Context, kind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.docs, kind+":"+id)
	m.removed = append(m.removed, kind+":"+id)
	return nil
}

func (m *memIndex) Search(_ context.Context, userID, query string, size int) ([]SearchDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastReq.userID, m.lastReq.query, m.lastReq.size = userID, query, size
	out := []SearchDocument{}
	for _, d := range m.docs {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

type memUploader struct {
	object      string
	contentType string
	body        string
	err         error
}

func (u *memUploader) Upload(_ context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	b, _ := io.ReadAll(r)
	u.object, u.contentType, u.body = objectPath, contentType, string(b)
	return "https://storage.example/" + objectPath, nil
}

type memCache struct {
	mu   sync.Mutex
	data map[string]any
	gets int
}

func newMemCache() *memCache { return &memCache{data: map[string]any{}} }

func (c *memCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	res, ok := v.(*GrammarResult)
	if !ok {
		return false, errors.New("unexpected cache value")
	}
	*(dest.(*GrammarResult)) = *res
	return true, nil
}

func (c *memCache) Set(_ context.Context, key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

type countingRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func newCountingRecorder() *countingRecorder { return &countingRecorder{counts: map[string]int{}} }

func (r *countingRecorder) ObserveTool(tool, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[tool+"/"+outcome]++
}

type stubRewriter struct {
	style string
	err   error
}

func (s *stubRewriter) Rewrite(_ context.Context, text, style string) (*RewriteResult, error) {
	s.style = style
	if s.err != nil {
		return nil, s.err
	}
	return &RewriteResult{OriginalText: text, RewrittenText: "rewritten: " + text, Model: "test-model"}, nil
}

type stubGrammar struct {
	calls    int
	language string
}

func (s *stubGrammar) Check(_ context.Context, text, language string) (*GrammarResult, error) {
	s.calls++
	s.language = language
	return &GrammarResult{
		Matches:     []GrammarMatch{{Message: "Possible typo", Offset: 0, Length: 3}},
		TotalErrors: 1,
		Language:    GrammarLanguage{Name: "English (US)", Code: language},
	}, nil
}

type stubDetector struct{ res *DetectionResult }

func (s stubDetector) Detect(context.Context, string) (*DetectionResult, error) { return s.res, nil }

type stubResearch struct{}

func (stubResearch) Suggest(_ context.Context, q string) (*ResearchResult, error) {
	return &ResearchResult{Query: q, Suggestions: []Suggestion{{Title: "Paper"}}, Provider: "placeholder", Mock: true}, nil
}
