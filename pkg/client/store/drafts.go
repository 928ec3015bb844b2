package store

import (
	"sync"

	"github.com/oksasatya/heart-api/internal/domain/entity"
)

// Drafts is the list of the user's drafts plus the one open in the editor.
type Drafts struct {
	mu      sync.RWMutex
	items   []entity.ArticleDraft
	current *entity.ArticleDraft
}

func NewDrafts() *Drafts { return &Drafts{} }

func (d *Drafts) Set(items []entity.ArticleDraft) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.items = append([]entity.ArticleDraft(nil), items...)
}

// Add puts draft at the front of the list.
func (d *Drafts) Add(draft entity.ArticleDraft) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.items = append([]entity.ArticleDraft{draft}, d.items...)
}

// Update replaces the draft with the given id in the list and, when it is
// the current one, the current draft too.
func (d *Drafts) Update(id string, draft entity.ArticleDraft) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.items {
		if d.items[i].ID == id {
			d.items[i] = draft
		}
	}
	if d.current != nil && d.current.ID == id {
		cp := draft
		d.current = &cp
	}
}

// Remove drops the draft; the current draft is cleared when it matches.
func (d *Drafts) Remove(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := d.items[:0]
	for _, it := range d.items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	d.items = out
	if d.current != nil && d.current.ID == id {
		d.current = nil
	}
}

func (d *Drafts) List() []entity.ArticleDraft {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]entity.ArticleDraft(nil), d.items...)
}

// Current returns a copy of the open draft, or nil.
func (d *Drafts) Current() *entity.ArticleDraft {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.current == nil {
		return nil
	}
	cp := *d.current
	return &cp
}

// SetCurrent opens draft; nil closes the current one.
func (d *Drafts) SetCurrent(draft *entity.ArticleDraft) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if draft == nil {
		d.current = nil
		return
	}
	cp := *draft
	d.current = &cp
}
