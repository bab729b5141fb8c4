// Package state owns the client's view of the article resource. Each
// slice (the list and the current article) moves through
// idle -> pending -> fulfilled/rejected; every mutation goes through
// the operations on Store, which is the single writer. The rendering
// layer reads snapshots and never touches the slices directly.
package state

import (
	"sync"

	"inkpress/pkg/models"
	"inkpress/pkg/transport"
)

// Phase is the request lifecycle position of a resource slice.
type Phase int

const (
	Idle Phase = iota
	Pending
	Fulfilled
	Rejected
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

// SessionClearer is the hook used to force a logout when the server
// rejects the bearer credential.
type SessionClearer interface {
	Clear() error
}

// Store is the article resource state machine.
type Store struct {
	api     transport.Articles
	session SessionClearer // may be nil

	mu         sync.Mutex
	items      []models.Article
	current    *models.Article
	pagination models.Pagination
	phase      Phase
	lastErr    *transport.Error

	// fetchWant is the article id the current-article slice is waiting
	// for; completions for any other id are stale and dropped.
	fetchWant string
}

// New builds a Store over the given transport. session may be nil when
// no forced-logout behavior is wanted (e.g. public browsing).
func New(api transport.Articles, session SessionClearer) *Store {
	return &Store{api: api, session: session}
}

// Snapshot is a consistent copy of the slice state for rendering.
type Snapshot struct {
	Items      []models.Article
	Current    *models.Article
	Pagination models.Pagination
	Phase      Phase
	LastError  *transport.Error
}

// Snapshot returns a copy of the current state. The returned slices
// and records are owned by the caller.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Items:      append([]models.Article(nil), s.items...),
		Pagination: s.pagination,
		Phase:      s.phase,
		LastError:  s.lastErr,
	}
	if s.current != nil {
		cur := *s.current
		snap.Current = &cur
	}
	return snap
}

// Items returns a copy of the loaded collection.
func (s *Store) Items() []models.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Article(nil), s.items...)
}

// Current returns a copy of the current article, or nil.
func (s *Store) Current() *models.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	cur := *s.current
	return &cur
}

// Pagination returns the last server-provided pager.
func (s *Store) Pagination() models.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

// Phase returns the slice phase.
func (s *Store) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// LastError returns the stored failure, or nil.
func (s *Store) LastError() *transport.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ClearError drops the stored failure so it is surfaced exactly once.
// No other field is touched.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
}

// ClearCurrent resets the current article, for navigation away from a
// single-article view.
func (s *Store) ClearCurrent() {
	s.mu.Lock()
	s.current = nil
	s.fetchWant = ""
	s.mu.Unlock()
}
