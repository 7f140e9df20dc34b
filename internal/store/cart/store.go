// Package cart holds the cart line collection as the last-write-wins
// projection of settled platform responses. The platform is the sole source
// of truth for stock and pricing, so nothing here is written optimistically:
// a line only ever carries server-confirmed values.
package cart

import (
	"context"
	"sync"

	"storefront-engine/internal/domain"
)

// Op names one logical operation family. Each family tracks its own status so
// a failed update does not mask an in-flight fetch.
type Op string

const (
	OpFetch  Op = "fetch"
	OpAdd    Op = "add"
	OpRemove Op = "remove"
	OpUpdate Op = "update"
)

type gatewayAPI interface {
	FetchCart(ctx context.Context, guestID string) ([]domain.CartLine, error)
	AddToCart(ctx context.Context, guestID, variantID string, quantity int) (domain.CartLine, string, error)
	RemoveLine(ctx context.Context, guestID, lineID string) (string, error)
	UpdateQuantity(ctx context.Context, guestID, lineID string, quantity int) (string, int, error)
}

type guestSession interface {
	Current() string
	Persist(ctx context.Context, id string)
}

// Store is the cart state store.
type Store struct {
	mu       sync.Mutex
	gw       gatewayAPI
	session  guestSession
	lines    []domain.CartLine
	status   map[Op]domain.Status
	errs     map[Op]*domain.RemoteError
	onChange func([]domain.CartLine)
}

func New(gw gatewayAPI, session guestSession) *Store {
	s := &Store{
		gw:      gw,
		session: session,
		status:  make(map[Op]domain.Status, 4),
		errs:    make(map[Op]*domain.RemoteError, 4),
	}
	for _, op := range []Op{OpFetch, OpAdd, OpRemove, OpUpdate} {
		s.status[op] = domain.StatusIdle
	}
	return s
}

// OnChange registers a listener invoked with a snapshot of the collection
// after any settled change. Set once at wiring time, before first use.
func (s *Store) OnChange(fn func([]domain.CartLine)) {
	s.onChange = fn
}

// Lines returns a snapshot of the collection.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Status returns the state and error of one operation family.
func (s *Store) Status(op Op) (domain.Status, *domain.RemoteError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status[op], s.errs[op]
}

// Fetch replaces the collection with the platform's authoritative list. It is
// idempotent and safe to call after any mutation to reconcile local state;
// lines dropped server-side (stock depletion, concurrent removal) disappear
// here.
func (s *Store) Fetch(ctx context.Context) error {
	s.begin(OpFetch)
	lines, err := s.gw.FetchCart(ctx, s.session.Current())
	if err != nil {
		return s.fail(OpFetch, err)
	}

	s.mu.Lock()
	s.lines = append([]domain.CartLine(nil), lines...)
	s.settle(OpFetch)
	snap := s.snapshot()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// AddLine creates a line for the resolved variant. Pre-checks short-circuit
// before any request: quantity below 1 and apparently-zero stock settle into
// the add channel exactly like a server rejection would. There is no
// optimistic insert; stock is too volatile to guess.
func (s *Store) AddLine(ctx context.Context, v domain.Variant, quantity int) error {
	if quantity < 1 {
		return s.reject(OpAdd, domain.FieldError("quantity", "quantity must be at least 1"))
	}
	if v.Stock <= 0 {
		return s.reject(OpAdd, domain.GeneralError("out of stock"))
	}

	s.begin(OpAdd)
	line, issuedGuestID, err := s.gw.AddToCart(ctx, s.session.Current(), v.ID, quantity)
	if err != nil {
		return s.fail(OpAdd, err)
	}
	s.session.Persist(ctx, issuedGuestID)

	s.mu.Lock()
	s.upsert(line)
	s.settle(OpAdd)
	snap := s.snapshot()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// RemoveLine deletes a line. On confirmation the drop is irreversible; on
// rejection the collection is untouched. A confirmed id no longer present
// locally is absorbed as a no-op.
func (s *Store) RemoveLine(ctx context.Context, lineID string) error {
	s.begin(OpRemove)
	removedID, err := s.gw.RemoveLine(ctx, s.session.Current(), lineID)
	if err != nil {
		return s.fail(OpRemove, err)
	}

	s.mu.Lock()
	s.drop(removedID)
	s.settle(OpRemove)
	snap := s.snapshot()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// UpdateQuantity sets a line's quantity. The visible quantity is not touched
// before confirmation: the legal range depends on server stock, so an
// optimistic write could briefly show an impossible value. A confirmation for
// a line removed by a concurrent operation is absorbed silently.
func (s *Store) UpdateQuantity(ctx context.Context, lineID string, quantity int) error {
	if quantity < 1 {
		return s.reject(OpUpdate, domain.FieldError("quantity", "quantity must be at least 1"))
	}

	s.begin(OpUpdate)
	confirmedID, confirmedQty, err := s.gw.UpdateQuantity(ctx, s.session.Current(), lineID, quantity)
	if err != nil {
		return s.fail(OpUpdate, err)
	}

	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].ID == confirmedID {
			s.lines[i].Quantity = confirmedQty
			break
		}
	}
	s.settle(OpUpdate)
	snap := s.snapshot()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

func (s *Store) begin(op Op) {
	s.mu.Lock()
	s.status[op] = domain.StatusLoading
	s.errs[op] = nil
	s.mu.Unlock()
}

func (s *Store) settle(op Op) {
	s.status[op] = domain.StatusSucceeded
	s.errs[op] = nil
}

func (s *Store) fail(op Op, err error) error {
	rerr := domain.AsRemote(err)
	s.mu.Lock()
	s.status[op] = domain.StatusFailed
	s.errs[op] = rerr
	s.mu.Unlock()
	return rerr
}

// reject settles a local pre-check failure without a loading transition, but
// through the same channel a server rejection would use.
func (s *Store) reject(op Op, rerr *domain.RemoteError) error {
	s.mu.Lock()
	s.status[op] = domain.StatusFailed
	s.errs[op] = rerr
	s.mu.Unlock()
	return rerr
}

// upsert appends the line, replacing any existing line with the same id so a
// duplicate confirmation cannot double a line.
func (s *Store) upsert(line domain.CartLine) {
	for i := range s.lines {
		if s.lines[i].ID == line.ID {
			s.lines[i] = line
			return
		}
	}
	s.lines = append(s.lines, line)
}

func (s *Store) drop(lineID string) {
	for i := range s.lines {
		if s.lines[i].ID == lineID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

func (s *Store) snapshot() []domain.CartLine {
	return append([]domain.CartLine(nil), s.lines...)
}

func (s *Store) notify(lines []domain.CartLine) {
	if s.onChange != nil {
		s.onChange(lines)
	}
}
