// Package store keeps the client's durable local data in a Pebble
// database: the session record (so logins survive restarts) and an
// offline cache of fetched articles. It is plumbing only; policy about
// what to persist lives with the callers.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"

	"inkpress/pkg/logger"
	"inkpress/pkg/models"
)

var (
	db     *pebble.DB
	dbPath string
)

const (
	sessionKey  = "session:current"
	cachePrefix = "cache:article:"
)

// Open opens (or creates) the local database at path and keeps a
// package handle for simple usage.
func Open(path string) error {
	var err error
	db, err = pebble.Open(path, &pebble.Options{})
	if err != nil {
		logger.Error("local_store_open_failed", "path", path, "error", err)
		return fmt.Errorf("open local store: %w", err)
	}
	dbPath = path
	logger.Debug("local_store_opened", "path", path)
	return nil
}

// Close closes the opened database if present.
func Close() error {
	if db == nil {
		return nil
	}
	if err := db.Close(); err != nil {
		return err
	}
	db = nil
	dbPath = ""
	return nil
}

// Ready reports whether the store is opened.
func Ready() bool {
	return db != nil
}

func notOpened() error {
	return errors.New("local store not opened; call store.Open first")
}

// SaveSession persists the serialized session record.
func SaveSession(data []byte) error {
	if db == nil {
		return notOpened()
	}
	return db.Set([]byte(sessionKey), data, pebble.Sync)
}

// GetSession returns the persisted session record, or nil when no
// session is stored.
func GetSession() ([]byte, error) {
	if db == nil {
		return nil, notOpened()
	}
	v, closer, err := db.Get([]byte(sessionKey))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	out := append([]byte(nil), v...)
	_ = closer.Close()
	return out, nil
}

// DeleteSession removes the persisted session record.
func DeleteSession() error {
	if db == nil {
		return notOpened()
	}
	return db.Delete([]byte(sessionKey), pebble.Sync)
}

// CachedArticle wraps a cached article with its fetch time so the
// retention runner can expire stale entries.
type CachedArticle struct {
	FetchedAt time.Time      `json:"fetchedAt"`
	Article   models.Article `json:"article"`
}

// CacheArticle stores one fetched article for offline reading.
func CacheArticle(a models.Article) error {
	if db == nil {
		return notOpened()
	}
	entry := CachedArticle{FetchedAt: time.Now().UTC(), Article: a}
	b, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal cached article: %w", err)
	}
	return db.Set([]byte(cachePrefix+a.ID), b, pebble.NoSync)
}

// GetCachedArticle returns the cached entry for id, and whether one
// exists.
func GetCachedArticle(id string) (CachedArticle, bool, error) {
	var entry CachedArticle
	if db == nil {
		return entry, false, notOpened()
	}
	v, closer, err := db.Get([]byte(cachePrefix + id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return entry, false, nil
		}
		return entry, false, err
	}
	uerr := json.Unmarshal(v, &entry)
	_ = closer.Close()
	if uerr != nil {
		return entry, false, fmt.Errorf("decode cached article: %w", uerr)
	}
	return entry, true, nil
}

// DeleteCachedArticle drops one cache entry; missing entries are not
// an error.
func DeleteCachedArticle(id string) error {
	if db == nil {
		return notOpened()
	}
	return db.Delete([]byte(cachePrefix+id), pebble.NoSync)
}

// ListCachedArticles returns every cached entry, in key order.
func ListCachedArticles() ([]CachedArticle, error) {
	if db == nil {
		return nil, notOpened()
	}
	iter, err := db.NewIter(prefixBounds(cachePrefix))
	if err != nil {
		return nil, err
	}
	defer iter.Close()
	var out []CachedArticle
	for iter.First(); iter.Valid(); iter.Next() {
		var entry CachedArticle
		if err := json.Unmarshal(iter.Value(), &entry); err != nil {
			// skip undecodable entries rather than failing the listing
			logger.Warn("cache_entry_undecodable", "key", string(iter.Key()))
			continue
		}
		out = append(out, entry)
	}
	return out, iter.Error()
}

// PruneCache deletes cache entries fetched before cutoff and returns
// how many were removed.
func PruneCache(cutoff time.Time) (int, error) {
	if db == nil {
		return 0, notOpened()
	}
	iter, err := db.NewIter(prefixBounds(cachePrefix))
	if err != nil {
		return 0, err
	}
	var stale [][]byte
	for iter.First(); iter.Valid(); iter.Next() {
		var entry CachedArticle
		if err := json.Unmarshal(iter.Value(), &entry); err != nil || entry.FetchedAt.Before(cutoff) {
			stale = append(stale, append([]byte(nil), iter.Key()...))
		}
	}
	ierr := iter.Error()
	_ = iter.Close()
	if ierr != nil {
		return 0, ierr
	}
	for _, k := range stale {
		if err := db.Delete(k, pebble.NoSync); err != nil {
			return 0, err
		}
	}
	if len(stale) > 0 {
		logger.Info("cache_pruned", "removed", len(stale))
	}
	return len(stale), nil
}

func prefixBounds(prefix string) *pebble.IterOptions {
	lower := []byte(prefix)
	upper := append([]byte(nil), lower...)
	upper[len(upper)-1]++
	return &pebble.IterOptions{LowerBound: lower, UpperBound: upper}
}
