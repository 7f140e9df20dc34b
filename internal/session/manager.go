// Package session owns the guest cart identifier: an opaque token issued by
// the remote platform on the first add-to-cart of an unauthenticated session.
// It is read once on start, written once when first issued, and attached
// explicitly to every cart request by the caller.
package session

import (
	"context"
	"errors"
	"log"
	"sync"

	"storefront-engine/internal/domain"
)

// Repository persists the identifier across process restarts.
type Repository interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, id string) error
	Delete(ctx context.Context) error
}

// Manager holds the process-wide identifier.
type Manager struct {
	mu     sync.RWMutex
	repo   Repository
	logger *log.Logger
	id     string
}

func NewManager(repo Repository, logger *log.Logger) *Manager {
	return &Manager{repo: repo, logger: logger}
}

// Load reads the persisted identifier on start. A missing row is not an
// error: the identifier simply has not been issued yet.
func (m *Manager) Load(ctx context.Context) error {
	id, err := m.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	m.mu.Lock()
	m.id = id
	m.mu.Unlock()
	return nil
}

// Current returns the identifier, or "" when none has been issued.
func (m *Manager) Current() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.id
}

// Persist records a newly issued identifier. Set once: later issues for an
// already-correlated session are ignored.
func (m *Manager) Persist(ctx context.Context, id string) {
	if id == "" {
		return
	}
	m.mu.Lock()
	if m.id != "" {
		m.mu.Unlock()
		return
	}
	m.id = id
	m.mu.Unlock()

	if err := m.repo.Save(ctx, id); err != nil && m.logger != nil {
		// The in-memory identifier stays valid for this process either way.
		m.logger.Printf("persist guest identifier: %v", err)
	}
}

// Reset drops the identifier. This is the hook for the session-upgrade
// integration point (guest-to-customer); whether the platform merges or
// replaces the guest cart on upgrade is decided remotely, not here.
func (m *Manager) Reset(ctx context.Context) error {
	m.mu.Lock()
	m.id = ""
	m.mu.Unlock()
	return m.repo.Delete(ctx)
}
