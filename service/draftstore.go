package service

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Ilhamsafeek/panvel-final-sub001/model"
	"github.com/google/uuid"
)

// DraftStore holds in-progress contract drafts between wizard steps. Drafts
// live only for the page lifetime; the store caps entries and evicts the
// oldest when the cap is exceeded.
type DraftStore struct {
	mu        sync.RWMutex
	drafts    map[string]*model.Draft
	maxDrafts int // 0 = unlimited
}

func NewDraftStore(maxDrafts int) *DraftStore {
	if maxDrafts < 0 {
		maxDrafts = 0
	}
	return &DraftStore{
		drafts:    make(map[string]*model.Draft),
		maxDrafts: maxDrafts,
	}
}

// Create registers a fresh empty draft and returns it.
func (s *DraftStore) Create(profileType string) *model.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	draft := &model.Draft{
		ID:          uuid.New().String(),
		ProfileType: profileType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.drafts[draft.ID] = draft
	s.evictIfNeeded()
	return draft
}

// Get returns the draft with the given id, or nil.
func (s *DraftStore) Get(id string) *model.Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drafts[id]
}

// SetBody stores the generated body on a draft. Returns false when the draft
// no longer exists.
func (s *DraftStore) SetBody(id, title, body string, clauses []model.SelectedClause) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, ok := s.drafts[id]
	if !ok {
		return false
	}
	draft.Title = title
	draft.GeneratedBody = body
	draft.SelectedClauses = clauses
	draft.Method = model.MethodAI
	draft.UpdatedAt = time.Now()
	return true
}

// SetProfile records a profile change, which invalidates any selected
// template from the previous catalog.
func (s *DraftStore) SetProfile(id, profileType string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, ok := s.drafts[id]
	if !ok {
		return false
	}
	draft.ProfileType = profileType
	draft.TemplateID = ""
	draft.UpdatedAt = time.Now()
	return true
}

// Delete drops a draft, typically after a successful save.
func (s *DraftStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
}

// Count returns the number of live drafts.
func (s *DraftStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.drafts)
}

// evictIfNeeded removes the oldest drafts when the cap is exceeded.
// Must be called with the lock held.
func (s *DraftStore) evictIfNeeded() {
	if s.maxDrafts <= 0 || len(s.drafts) <= s.maxDrafts {
		return
	}

	drafts := make([]*model.Draft, 0, len(s.drafts))
	for _, d := range s.drafts {
		drafts = append(drafts, d)
	}
	sort.Slice(drafts, func(i, j int) bool {
		return drafts[i].CreatedAt.Before(drafts[j].CreatedAt)
	})

	removeCount := len(drafts) - s.maxDrafts
	for i := 0; i < removeCount; i++ {
		slog.Info("evicting abandoned draft",
			"draft_id", drafts[i].ID,
			"created_at", drafts[i].CreatedAt,
		)
		delete(s.drafts, drafts[i].ID)
	}
}
