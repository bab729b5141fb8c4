// Package session owns the current actor and bearer token. The record
// is replaced wholesale on login and removed on logout or when the
// server rejects the credential; when the local store is open it is
// persisted there so a restart resumes the session.
package session

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"inkpress/pkg/logger"
	"inkpress/pkg/models"
	"inkpress/pkg/store"
)

// Record is the persisted session shape.
type Record struct {
	Token      string       `json:"token"`
	Actor      models.Actor `json:"actor"`
	LoggedInAt time.Time    `json:"loggedInAt"`
}

// Manager is the single owner of session state. It satisfies
// transport.TokenSource.
type Manager struct {
	mu    sync.RWMutex
	actor *models.Actor
	token string
}

func NewManager() *Manager {
	return &Manager{}
}

// Restore loads a persisted session from the local store, if any.
// Missing or undecodable records leave the manager unauthenticated.
func (m *Manager) Restore() error {
	if !store.Ready() {
		return nil
	}
	data, err := store.GetSession()
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if data == nil {
		return nil
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		logger.Warn("session_record_undecodable", "error", err)
		_ = store.DeleteSession()
		return nil
	}
	m.mu.Lock()
	actor := rec.Actor
	m.actor = &actor
	m.token = rec.Token
	m.mu.Unlock()
	logger.Debug("session_restored", "actor", rec.Actor.ID, "role", rec.Actor.Role)
	return nil
}

// Set replaces the session after a successful login or register.
func (m *Manager) Set(actor models.Actor, token string) error {
	m.mu.Lock()
	a := actor
	m.actor = &a
	m.token = token
	m.mu.Unlock()

	if !store.Ready() {
		return nil
	}
	rec := Record{Token: token, Actor: actor, LoggedInAt: time.Now().UTC()}
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := store.SaveSession(b); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Clear removes the session from memory and the local store. Used on
// logout and forced by any Unauthorized transport outcome.
func (m *Manager) Clear() error {
	m.mu.Lock()
	m.actor = nil
	m.token = ""
	m.mu.Unlock()

	if !store.Ready() {
		return nil
	}
	return store.DeleteSession()
}

// Actor returns a copy of the current actor, or nil when
// unauthenticated.
func (m *Manager) Actor() *models.Actor {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.actor == nil {
		return nil
	}
	a := *m.actor
	return &a
}

// Token returns the bearer credential; empty when unauthenticated.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Authenticated reports whether an actor is present.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.actor != nil
}
