package state

import (
	"context"
	"errors"

	"inkpress/pkg/logger"
	"inkpress/pkg/models"
	"inkpress/pkg/store"
	"inkpress/pkg/transport"
	"inkpress/pkg/validation"
)

// begin moves the slice to pending. Entering pending always clears the
// stored error; the new request owns the outcome now.
func (s *Store) begin() {
	s.mu.Lock()
	s.phase = Pending
	s.lastErr = nil
	s.mu.Unlock()
}

// failLocked records a failure, forcing a session clear when the
// credential was rejected. Callers hold s.mu.
func (s *Store) failLocked(err error) *transport.Error {
	var te *transport.Error
	if !errors.As(err, &te) {
		te = &transport.Error{Kind: transport.KindUnknown, Message: err.Error(), Err: err}
	}
	if te.Kind == transport.KindUnauthorized && s.session != nil {
		if cerr := s.session.Clear(); cerr != nil {
			logger.Warn("forced_logout_failed", "error", cerr)
		}
	}
	s.lastErr = te
	s.phase = Rejected
	return te
}

// applyList applies a list completion. Completions are applied in
// arrival order, so with overlapping loads the last arrival wins. On
// failure the visible set is cleared but the pager keeps its last
// successful value, which stays meaningful for a retry.
func (s *Store) applyList(res transport.ListResult, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.items = nil
		return s.failLocked(err)
	}
	s.items = res.Items
	s.pagination = res.Pagination
	s.phase = Fulfilled
	s.lastErr = nil
	return nil
}

// List loads one page of the authenticated article collection,
// replacing the visible set wholesale.
func (s *Store) List(ctx context.Context, page, limit int, f transport.Filters) error {
	s.begin()
	res, err := s.api.ListArticles(ctx, page, limit, f)
	return s.applyList(res, err)
}

// ListPublic loads one page of the public collection into the same
// slice. The public and authenticated listings are mutually exclusive
// views; callers pick one per screen.
func (s *Store) ListPublic(ctx context.Context, page, limit int) error {
	s.begin()
	res, err := s.api.ListPublicArticles(ctx, page, limit)
	return s.applyList(res, err)
}

// ListMine loads one page of the actor's own articles.
func (s *Store) ListMine(ctx context.Context, page, limit int) error {
	s.begin()
	res, err := s.api.ListMyArticles(ctx, page, limit)
	return s.applyList(res, err)
}

// FetchOne loads a single article into the current slot. When a newer
// FetchOne for a different id is issued before this one resolves, the
// stale completion is dropped entirely, success or failure, so rapid
// navigation never shows the wrong article.
func (s *Store) FetchOne(ctx context.Context, id string) error {
	s.mu.Lock()
	s.phase = Pending
	s.lastErr = nil
	s.fetchWant = id
	s.mu.Unlock()

	a, err := s.api.GetArticle(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetchWant != id {
		// superseded by a newer fetch
		return nil
	}
	if err != nil {
		s.current = nil
		return s.failLocked(err)
	}
	s.current = &a
	s.phase = Fulfilled
	s.lastErr = nil
	if store.Ready() {
		if cerr := store.CacheArticle(a); cerr != nil {
			logger.Debug("cache_write_failed", "id", a.ID, "error", cerr)
		}
	}
	return nil
}

// Create validates the draft and, when valid, creates it on the server
// and prepends the result to the visible set without re-fetching. The
// inserted entry stays until the next server-backed list load.
// Validation failures are returned synchronously and issue no request.
func (s *Store) Create(ctx context.Context, fields models.ArticleFields) (models.Article, error) {
	if errs := validation.ValidateFields(fields); errs != nil {
		return models.Article{}, errs
	}
	s.begin()
	a, err := s.api.CreateArticle(ctx, fields)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		return models.Article{}, s.failLocked(err)
	}
	s.items = append([]models.Article{a}, s.items...)
	s.phase = Fulfilled
	s.lastErr = nil
	if store.Ready() {
		_ = store.CacheArticle(a)
	}
	return a, nil
}

// Update validates the draft and, when valid, updates the article on
// the server, replacing the matching list entry and the current
// article when its id matches. A failed update leaves both untouched.
func (s *Store) Update(ctx context.Context, id string, fields models.ArticleFields) (models.Article, error) {
	if errs := validation.ValidateFields(fields); errs != nil {
		return models.Article{}, errs
	}
	s.begin()
	a, err := s.api.UpdateArticle(ctx, id, fields)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		return models.Article{}, s.failLocked(err)
	}
	for i := range s.items {
		if s.items[i].ID == a.ID {
			s.items[i] = a
			break
		}
	}
	if s.current != nil && s.current.ID == a.ID {
		cur := a
		s.current = &cur
	}
	s.phase = Fulfilled
	s.lastErr = nil
	if store.Ready() {
		_ = store.CacheArticle(a)
	}
	return a, nil
}

// Delete removes the article on the server, then from the visible set,
// clearing the current slot when it matches. The pager is not
// corrected; callers reload when totals matter.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.begin()
	err := s.api.DeleteArticle(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		return s.failLocked(err)
	}
	kept := s.items[:0]
	for _, a := range s.items {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	s.items = kept
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	s.phase = Fulfilled
	s.lastErr = nil
	if store.Ready() {
		_ = store.DeleteCachedArticle(id)
	}
	return nil
}
