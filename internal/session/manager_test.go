package session

import (
	"context"
	"errors"
	"testing"

	"storefront-engine/internal/domain"
)

type stubRepo struct {
	stored    string
	loadErr   error
	saveErr   error
	saveCalls int
	deleted   bool
}

func (r *stubRepo) Load(_ context.Context) (string, error) {
	if r.loadErr != nil {
		return "", r.loadErr
	}
	if r.stored == "" {
		return "", domain.ErrNotFound
	}
	return r.stored, nil
}

func (r *stubRepo) Save(_ context.Context, id string) error {
	r.saveCalls++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.stored = id
	return nil
}

func (r *stubRepo) Delete(_ context.Context) error {
	r.deleted = true
	r.stored = ""
	return nil
}

func TestLoadMissingIdentifierIsNotAnError(t *testing.T) {
	m := NewManager(&stubRepo{}, nil)
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Current() != "" {
		t.Fatalf("unexpected identifier: %q", m.Current())
	}
}

func TestLoadRestoresPersistedIdentifier(t *testing.T) {
	m := NewManager(&stubRepo{stored: "g-restored"}, nil)
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Current() != "g-restored" {
		t.Fatalf("unexpected identifier: %q", m.Current())
	}
}

func TestLoadSurfacesRepositoryFailure(t *testing.T) {
	m := NewManager(&stubRepo{loadErr: errors.New("db down")}, nil)
	if err := m.Load(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestPersistIsWriteOnce(t *testing.T) {
	repo := &stubRepo{}
	m := NewManager(repo, nil)

	m.Persist(context.Background(), "g-first")
	m.Persist(context.Background(), "g-second")

	if m.Current() != "g-first" {
		t.Fatalf("a correlated session must keep its identifier, got %q", m.Current())
	}
	if repo.saveCalls != 1 {
		t.Fatalf("expected a single save, got %d", repo.saveCalls)
	}
}

func TestPersistIgnoresEmptyIdentifier(t *testing.T) {
	repo := &stubRepo{}
	m := NewManager(repo, nil)
	m.Persist(context.Background(), "")
	if repo.saveCalls != 0 {
		t.Fatal("empty identifier must not be persisted")
	}
}

func TestPersistKeepsIdentifierWhenSaveFails(t *testing.T) {
	repo := &stubRepo{saveErr: errors.New("db down")}
	m := NewManager(repo, nil)
	m.Persist(context.Background(), "g-1")
	if m.Current() != "g-1" {
		t.Fatal("the in-memory identifier must survive a failed save")
	}
}

func TestResetClearsIdentifier(t *testing.T) {
	repo := &stubRepo{stored: "g-1"}
	m := NewManager(repo, nil)
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	if err := m.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if m.Current() != "" || !repo.deleted {
		t.Fatal("reset must clear memory and storage")
	}

	// A fresh identifier may be issued after the reset.
	m.Persist(context.Background(), "g-2")
	if m.Current() != "g-2" {
		t.Fatalf("unexpected identifier: %q", m.Current())
	}
}
